package plotpage

import (
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// denseLabelThreshold is the label count above which x-axis labels are rotated.
const denseLabelThreshold = 12

// BarSeries defines the properties and data for a single bar chart series.
type BarSeries struct {
	Name  string
	Data  []int
	Color string // Optional, uses the theme accent if empty.
}

// BuildBarChart constructs a fully configured go-echarts Bar chart.
// If cOpts is nil, DefaultChartOpts() is used.
func BuildBarChart(cOpts *ChartOpts, labels []string, series []BarSeries, xAxisLabel, yAxisLabel string) *charts.Bar {
	if cOpts == nil {
		cOpts = DefaultChartOpts()
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(cOpts.Init("100%", "500px")),
		charts.WithTooltipOpts(cOpts.Tooltip("axis")),
		charts.WithDataZoomOpts(cOpts.DataZoom()...),
		charts.WithXAxisOpts(cOpts.XAxis(xAxisLabel, len(labels) > denseLabelThreshold)),
		charts.WithYAxisOpts(cOpts.YAxis(yAxisLabel)),
	)

	bar.SetXAxis(labels)

	for _, s := range series {
		barData := make([]opts.BarData, len(s.Data))
		for i, v := range s.Data {
			barData[i] = opts.BarData{Value: v}
		}

		color := s.Color
		if color == "" {
			color = cOpts.AccentColor()
		}

		bar.AddSeries(s.Name, barData, charts.WithItemStyleOpts(opts.ItemStyle{Color: color}))
	}

	return bar
}
