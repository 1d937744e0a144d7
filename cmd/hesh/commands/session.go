package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/hesh/pkg/config"
	"github.com/Sumatoshi-tech/hesh/pkg/corpus"
	"github.com/Sumatoshi-tech/hesh/pkg/observability"
	"github.com/Sumatoshi-tech/hesh/pkg/plotpage"
	"github.com/Sumatoshi-tech/hesh/pkg/report"
)

// corpusGenerator produces a corpus of count strings of the given length.
type corpusGenerator func(count, length int) (corpus.Corpus, error)

// Env carries the collaborators of one command invocation.
type Env struct {
	Config   *config.Config
	Out      io.Writer
	Logger   *slog.Logger
	Metrics  *observability.AnalysisMetrics
	Generate corpusGenerator
}

// Chart returns the configured chart renderer, or nil when charts are disabled.
// Terminal charts are suppressed for structured formats to keep stdout parseable.
func (e Env) Chart(description string) report.ChartRenderer {
	switch e.Config.Report.Chart {
	case config.ChartHTML:
		return &report.HTMLChart{
			Path:        e.Config.Report.ChartOutput,
			Description: description,
			Theme:       plotpage.ThemeDark,
		}
	case config.ChartTerminal:
		if e.Config.Report.Format == config.FormatText {
			return report.NewTerminalChart(e.Out, e.Config.Report.MaxBars, e.Config.Report.NoColor)
		}
	}

	return nil
}

func (e Env) textReporter() *report.TextReporter {
	return report.NewTextReporter(e.Out, report.TextOptions{
		ShowCorpus: e.Config.Report.ShowCorpus,
		ShowHashes: e.Config.Report.ShowHashes,
		NoColor:    e.Config.Report.NoColor,
	})
}

func (e Env) renderChart(ctx context.Context, title, description string, counts map[string]int) error {
	chart := e.Chart(description)
	if chart == nil {
		return nil
	}

	err := chart.RenderBarChart(title, counts)
	if err != nil {
		return fmt.Errorf("render chart: %w", err)
	}

	if html, ok := chart.(*report.HTMLChart); ok {
		e.Logger.InfoContext(ctx, "chart written", "path", html.Path)
	}

	return nil
}

func (e Env) writeDocument(doc any) error {
	switch e.Config.Report.Format {
	case config.FormatJSON:
		return report.WriteJSON(e.Out, doc)
	case config.FormatYAML:
		return report.WriteYAML(e.Out, doc)
	default:
		return nil
	}
}

// newEnv wires logging and metrics for a command. The returned shutdown must
// run before exit so the metrics textfile gets written.
func newEnv(
	cmd *cobra.Command, cfg *config.Config, mode observability.AppMode, generate corpusGenerator,
) (Env, func(context.Context) error, error) {
	level, err := observability.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return Env{}, nil, err
	}

	obsCfg := observability.DefaultConfig()
	obsCfg.Mode = mode
	obsCfg.LogLevel = level
	obsCfg.LogJSON = cfg.Logging.Format == observability.LogFormatJSON
	obsCfg.MetricsTextfile = cfg.Metrics.Textfile

	providers, err := observability.Init(cmd.ErrOrStderr(), obsCfg)
	if err != nil {
		return Env{}, nil, fmt.Errorf("init observability: %w", err)
	}

	metrics, err := observability.NewAnalysisMetrics(providers.Meter)
	if err != nil {
		return Env{}, nil, fmt.Errorf("init metrics: %w", err)
	}

	env := Env{
		Config:   cfg,
		Out:      cmd.OutOrStdout(),
		Logger:   providers.Logger,
		Metrics:  metrics,
		Generate: generate,
	}

	return env, providers.Shutdown, nil
}
