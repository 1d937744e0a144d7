package report_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/hesh/pkg/collision"
	"github.com/Sumatoshi-tech/hesh/pkg/corpus"
	"github.com/Sumatoshi-tech/hesh/pkg/plotpage"
	"github.com/Sumatoshi-tech/hesh/pkg/report"
)

func sampleTable() collision.FrequencyTable {
	return collision.FrequencyTable{"260": 3, "130": 1}
}

func TestTextReporter_HashLines(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	r := report.NewTextReporter(&buf, report.TextOptions{NoColor: true})
	r.Banner()
	r.Selection("0", "AAAA")
	r.Hash("260")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "hesh:"))
	assert.True(t, strings.HasPrefix(lines[1], "usage:"))
	assert.Equal(t, "using hesh_0", lines[2])
	assert.Equal(t, "input: AAAA", lines[3])
	assert.Equal(t, "260", lines[4])
}

func TestTextReporter_Summary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	r := report.NewTextReporter(&buf, report.TextOptions{NoColor: true})
	r.Summary(collision.Summarize(sampleTable()))

	out := buf.String()
	assert.Contains(t, out, "tested 4 strings, and got 2 unique hashes\n")
	assert.Contains(t, out, "collision rate")
	assert.Contains(t, out, "50%")
	assert.Contains(t, out, "260 × 3")
}

func TestTextReporter_FrequencyTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	r := report.NewTextReporter(&buf, report.TextOptions{NoColor: true})
	r.FrequencyTable(sampleTable())

	out := buf.String()
	assert.Less(t, strings.Index(out, "260"), strings.Index(out, "130"), "largest bucket first")
	assert.Contains(t, out, "75%")
	assert.Contains(t, out, "2 distinct")
}

func TestTextReporter_Items(t *testing.T) {
	t.Parallel()

	c := corpus.Corpus{"AAAA", "BBBB"}
	labels := []string{"260", "264"}

	var buf bytes.Buffer

	report.NewTextReporter(&buf, report.TextOptions{ShowCorpus: true, ShowHashes: true, NoColor: true}).Items(c, labels)
	assert.Contains(t, buf.String(), "AAAA")
	assert.Contains(t, buf.String(), "264")

	buf.Reset()
	report.NewTextReporter(&buf, report.TextOptions{ShowHashes: true, NoColor: true}).Items(c, labels)
	assert.NotContains(t, buf.String(), "AAAA")
	assert.Contains(t, buf.String(), "264")

	buf.Reset()
	report.NewTextReporter(&buf, report.TextOptions{NoColor: true}).Items(c, labels)
	assert.Empty(t, buf.String())
}

func TestTextReporter_Comparison(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	rows := []collision.Comparison{
		{Hasher: "additive", Summary: collision.Summarize(collision.FrequencyTable{"1": 10})},
		{Hasher: "rotating-xor", Summary: collision.Summarize(collision.FrequencyTable{"1": 1, "2": 1})},
	}

	report.NewTextReporter(&buf, report.TextOptions{NoColor: true}).Comparison(7, rows)

	out := buf.String()
	assert.Contains(t, out, "comparing hashers with key 7")
	assert.Contains(t, out, "additive")
	assert.Contains(t, out, "rotating-xor")
	assert.Contains(t, out, "90%")
}

func TestTerminalChart(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	chart := report.NewTerminalChart(&buf, 2, true)
	require.NoError(t, chart.RenderBarChart("distribution", map[string]int{"a": 4, "b": 2, "c": 1}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "distribution", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "a "))
	assert.Equal(t, 40, strings.Count(lines[1], "█"))
	assert.True(t, strings.HasPrefix(lines[2], "b "))
	assert.Equal(t, 20, strings.Count(lines[2], "█"))
	assert.Equal(t, "... 1 more buckets", lines[3])
}

func TestTerminalChart_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, report.NewTerminalChart(&buf, 10, true).RenderBarChart("t", nil))
	assert.Contains(t, buf.String(), "(no data)")
}

func TestHTMLChart_WritesFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "chart.html")
	chart := &report.HTMLChart{Path: path, Description: "xor, key 3", Theme: plotpage.ThemeLight}

	require.NoError(t, chart.RenderBarChart("hesh_1 distribution", map[string]int{"0": 990, "1": 10}))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "hesh_1 distribution")
	assert.Contains(t, string(content), "xor, key 3")
	assert.Contains(t, string(content), "2 distinct values")
}

func TestHTMLChart_BadPath(t *testing.T) {
	t.Parallel()

	chart := &report.HTMLChart{Path: filepath.Join(t.TempDir(), "missing", "chart.html")}
	require.Error(t, chart.RenderBarChart("t", map[string]int{"1": 1}))
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	doc := report.Document{
		Variant: "additive", HashID: "0", Key: 1, Input: "AAAA", Hash: "260",
		Analysis: &report.Analysis{
			Summary: collision.Summarize(sampleTable()),
			Table:   sampleTable().Buckets(),
		},
	}

	var buf bytes.Buffer

	require.NoError(t, report.WriteJSON(&buf, doc))

	var decoded map[string]any

	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "260", decoded["hash"])

	analysis, ok := decoded["analysis"].(map[string]any)
	require.True(t, ok)

	summary, ok := analysis["summary"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 2, summary["unique"], 0)
	assert.NotContains(t, analysis, "corpus")
}

func TestWriteYAML(t *testing.T) {
	t.Parallel()

	doc := report.Document{Variant: "xor", HashID: "1", Key: 2, Input: "-t", Hash: "0"}

	var buf bytes.Buffer

	require.NoError(t, report.WriteYAML(&buf, doc))

	var decoded report.Document

	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, doc, decoded)
	assert.NotContains(t, buf.String(), "analysis")
}
