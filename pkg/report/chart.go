package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/Sumatoshi-tech/hesh/pkg/collision"
	"github.com/Sumatoshi-tech/hesh/pkg/plotpage"
)

// Bar characters.
const (
	barFilled = "█"
	barEmpty  = "░"
)

const (
	defaultBarWidth = 40
	chartFilePerm   = 0o644
)

// ChartRenderer draws a bar chart from labelled counts.
type ChartRenderer interface {
	RenderBarChart(title string, counts map[string]int) error
}

// TerminalChart draws horizontal bars, largest buckets first.
type TerminalChart struct {
	out      io.Writer
	maxBars  int
	barWidth int
	bar      *color.Color
}

// NewTerminalChart creates a TerminalChart showing at most maxBars buckets.
func NewTerminalChart(out io.Writer, maxBars int, noColor bool) *TerminalChart {
	bar := color.New(color.FgYellow)
	if noColor {
		bar.DisableColor()
	}

	return &TerminalChart{out: out, maxBars: maxBars, barWidth: defaultBarWidth, bar: bar}
}

// RenderBarChart implements ChartRenderer.
func (tc *TerminalChart) RenderBarChart(title string, counts map[string]int) error {
	buckets := collision.FrequencyTable(counts).Buckets()

	fmt.Fprintln(tc.out, title)

	if len(buckets) == 0 {
		fmt.Fprintln(tc.out, "(no data)")

		return nil
	}

	shown := buckets
	if tc.maxBars > 0 && len(shown) > tc.maxBars {
		shown = shown[:tc.maxBars]
	}

	labelWidth := 0
	for _, b := range shown {
		labelWidth = max(labelWidth, len(b.Label))
	}

	peak := buckets[0].Count

	for _, b := range shown {
		filled := max(1, b.Count*tc.barWidth/peak)
		bar := strings.Repeat(barFilled, filled) + strings.Repeat(barEmpty, tc.barWidth-filled)

		fmt.Fprintf(tc.out, "%*s %s %s\n", labelWidth, b.Label, tc.bar.Sprint(bar), humanize.Comma(int64(b.Count)))
	}

	if hidden := len(buckets) - len(shown); hidden > 0 {
		fmt.Fprintf(tc.out, "... %s more buckets\n", humanize.Comma(int64(hidden)))
	}

	return nil
}

// HTMLChart writes a go-echarts bar chart page to a file.
type HTMLChart struct {
	Path        string
	Description string
	Theme       plotpage.Theme
}

// RenderBarChart implements ChartRenderer.
func (hc *HTMLChart) RenderBarChart(title string, counts map[string]int) error {
	f, err := os.OpenFile(hc.Path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, chartFilePerm)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}

	renderErr := WriteBarChartPage(f, title, hc.Description, hc.Theme, counts)

	closeErr := f.Close()
	if renderErr != nil {
		return renderErr
	}

	if closeErr != nil {
		return fmt.Errorf("close chart file: %w", closeErr)
	}

	return nil
}

// WriteBarChartPage writes a standalone HTML page with one bar chart of counts,
// largest buckets first.
func WriteBarChartPage(w io.Writer, title, description string, theme plotpage.Theme, counts map[string]int) error {
	buckets := collision.FrequencyTable(counts).Buckets()

	labels := make([]string, len(buckets))
	data := make([]int, len(buckets))

	for i, b := range buckets {
		labels[i] = b.Label
		data[i] = b.Count
	}

	if theme == "" {
		theme = plotpage.ThemeDark
	}

	chart := plotpage.BuildBarChart(plotpage.NewChartOpts(theme), labels,
		[]plotpage.BarSeries{{Name: "count", Data: data}}, "hash value", "occurrences")

	page := plotpage.NewPage(title, description).WithTheme(theme)
	page.Add(plotpage.Section{
		Title:    title,
		Subtitle: fmt.Sprintf("%s distinct values", humanize.Comma(int64(len(buckets)))),
		Hints: []string{
			"Each bar is one distinct hash value; its height is how many inputs produced it.",
			"A well-mixed hash shows many bars of height one.",
		},
		Chart: chart,
	})

	err := page.Render(w)
	if err != nil {
		return fmt.Errorf("render chart page: %w", err)
	}

	return nil
}
