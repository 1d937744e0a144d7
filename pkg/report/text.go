// Package report renders hashing and collision-analysis results for people
// (text tables, bar charts) and machines (JSON, YAML).
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/Sumatoshi-tech/hesh/pkg/collision"
	"github.com/Sumatoshi-tech/hesh/pkg/corpus"
)

const (
	bannerLine = "hesh: a suite of hash functions"
	usageLine  = "usage: hesh [hash number] [key] [text to hash, or -t to test the hash]"

	percentMultiplier = 100
	percentDigits     = 2
)

// TextOptions selects which parts of a test run are printed.
type TextOptions struct {
	ShowCorpus bool
	ShowHashes bool
	NoColor    bool
}

// TextReporter writes human-readable output.
type TextReporter struct {
	out     io.Writer
	opts    TextOptions
	heading *color.Color
	good    *color.Color
	bad     *color.Color
}

// NewTextReporter creates a TextReporter writing to out.
func NewTextReporter(out io.Writer, opts TextOptions) *TextReporter {
	r := &TextReporter{
		out:     out,
		opts:    opts,
		heading: color.New(color.FgCyan, color.Bold),
		good:    color.New(color.FgGreen),
		bad:     color.New(color.FgRed),
	}

	if opts.NoColor {
		r.heading.DisableColor()
		r.good.DisableColor()
		r.bad.DisableColor()
	}

	return r
}

// Banner prints the program banner and usage line.
func (r *TextReporter) Banner() {
	fmt.Fprintln(r.out, bannerLine)
	fmt.Fprintln(r.out, usageLine)
}

// Selection prints the requested selector and input. It runs before the
// selector is resolved, so it also appears for an unrecognized id.
func (r *TextReporter) Selection(id, input string) {
	fmt.Fprintf(r.out, "using hesh_%s\n", id)
	fmt.Fprintf(r.out, "input: %s\n", input)
}

// Hash prints the hash value of the selected input.
func (r *TextReporter) Hash(value string) {
	fmt.Fprintln(r.out, value)
}

// TestHeader announces a test run.
func (r *TextReporter) TestHeader(id string) {
	r.heading.Fprintf(r.out, "testing and plotting distribution of hesh_%s\n", id)
}

// Items prints the corpus and the per-item hashes, as enabled by TextOptions.
func (r *TextReporter) Items(c corpus.Corpus, labels []string) {
	if !r.opts.ShowCorpus && !r.opts.ShowHashes {
		return
	}

	tbl := newTable()

	header := table.Row{"#"}
	if r.opts.ShowCorpus {
		header = append(header, "Input")
	}

	if r.opts.ShowHashes {
		header = append(header, "Hash")
	}

	tbl.AppendHeader(header)

	for i := range c {
		row := table.Row{i}
		if r.opts.ShowCorpus {
			row = append(row, c[i])
		}

		if r.opts.ShowHashes && i < len(labels) {
			row = append(row, labels[i])
		}

		tbl.AppendRow(row)
	}

	fmt.Fprintln(r.out, tbl.Render())
}

// FrequencyTable prints every distinct hash value with its count, largest first.
func (r *TextReporter) FrequencyTable(ft collision.FrequencyTable) {
	total := ft.Total()

	tbl := newTable()
	tbl.AppendHeader(table.Row{"Hash", "Count", "Share"})
	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})

	for _, b := range ft.Buckets() {
		tbl.AppendRow(table.Row{b.Label, humanize.Comma(int64(b.Count)), percent(b.Count, total)})
	}

	tbl.AppendFooter(table.Row{fmt.Sprintf("%d distinct", len(ft)), humanize.Comma(int64(total)), ""})

	fmt.Fprintln(r.out, tbl.Render())
}

// Summary prints the tested/unique line followed by derived statistics.
func (r *TextReporter) Summary(s collision.Summary) {
	fmt.Fprintf(r.out, "tested %d strings, and got %d unique hashes\n", s.Total, s.Unique)

	tbl := newTable()
	tbl.AppendRows([]table.Row{
		{"collisions", humanize.Comma(int64(s.Collisions))},
		{"collision rate", r.rate(s.CollisionRate)},
		{"mean bucket size", humanize.FtoaWithDigits(s.MeanBucketSize, percentDigits)},
		{"largest bucket", largest(s.LargestBucket)},
	})

	fmt.Fprintln(r.out, tbl.Render())
}

// Comparison prints one row per hasher analyzed over a shared corpus.
func (r *TextReporter) Comparison(key uint64, rows []collision.Comparison) {
	r.heading.Fprintf(r.out, "comparing hashers with key %d\n", key)

	tbl := newTable()
	tbl.AppendHeader(table.Row{"Hasher", "Tested", "Unique", "Collisions", "Collision rate", "Largest bucket"})

	for _, row := range rows {
		s := row.Summary
		tbl.AppendRow(table.Row{
			row.Hasher,
			humanize.Comma(int64(s.Total)),
			humanize.Comma(int64(s.Unique)),
			humanize.Comma(int64(s.Collisions)),
			r.rate(s.CollisionRate),
			largest(s.LargestBucket),
		})
	}

	fmt.Fprintln(r.out, tbl.Render())
}

func (r *TextReporter) rate(v float64) string {
	s := humanize.FtoaWithDigits(v*percentMultiplier, percentDigits) + "%"
	if v == 0 {
		return r.good.Sprint(s)
	}

	return r.bad.Sprint(s)
}

func percent(n, total int) string {
	if total == 0 {
		return "0%"
	}

	return humanize.FtoaWithDigits(float64(n)*percentMultiplier/float64(total), percentDigits) + "%"
}

func largest(b collision.Bucket) string {
	if b.Count == 0 {
		return "-"
	}

	return b.Label + " × " + strconv.Itoa(b.Count)
}

// newTable returns a light-style table whose footer keeps its case.
func newTable() table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Format.Footer = text.FormatDefault

	return tbl
}
