package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/hesh/pkg/config"
)

const (
	flagConfig      = "config"
	flagCount       = "count"
	flagLength      = "length"
	flagWorkers     = "workers"
	flagFormat      = "format"
	flagChart       = "chart"
	flagChartOutput = "chart-output"
	flagNoColor     = "no-color"
	flagNoCorpus    = "no-corpus"
	flagNoHashes    = "no-hashes"
	flagMetricsFile = "metrics-file"
	flagVerbose     = "verbose"
	flagTest        = "test"
)

// commonFlags are the persistent flags shared by every command. Each one
// overrides the matching configuration key only when set explicitly.
type commonFlags struct {
	configPath  string
	count       int
	length      int
	workers     int
	format      string
	chart       string
	chartOutput string
	metricsFile string
	noColor     bool
	noCorpus    bool
	noHashes    bool
	verbose     bool
}

func (f *commonFlags) register(cmd *cobra.Command) {
	fs := cmd.PersistentFlags()

	fs.StringVar(&f.configPath, flagConfig, "", "config file (default: .hesh.yaml in . or $HOME)")
	fs.IntVar(&f.count, flagCount, config.DefaultCount, "number of corpus strings")
	fs.IntVar(&f.length, flagLength, config.DefaultLength, "length of each corpus string")
	fs.IntVar(&f.workers, flagWorkers, config.DefaultWorkers, "hashing goroutines (0 = GOMAXPROCS)")
	fs.StringVar(&f.format, flagFormat, config.FormatText, "output format: text, json, yaml")
	fs.StringVar(&f.chart, flagChart, config.ChartTerminal, "bar chart: terminal, html, none")
	fs.StringVar(&f.chartOutput, flagChartOutput, config.DefaultChartOutput, "HTML chart file for --chart html")
	fs.StringVar(&f.metricsFile, flagMetricsFile, "", "write analysis metrics to this Prometheus textfile")
	fs.BoolVar(&f.noColor, flagNoColor, false, "disable colored output")
	fs.BoolVar(&f.noCorpus, flagNoCorpus, false, "do not print the generated corpus")
	fs.BoolVar(&f.noHashes, flagNoHashes, false, "do not print per-item hashes")
	fs.BoolVarP(&f.verbose, flagVerbose, "v", false, "debug logging")
}

// resolveConfig loads the configuration and applies explicitly set flags on top.
func (f *commonFlags) resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(f.configPath)
	if err != nil {
		return nil, err
	}

	fs := cmd.Flags()

	if fs.Changed(flagCount) {
		cfg.Analysis.Count = f.count
	}

	if fs.Changed(flagLength) {
		cfg.Analysis.Length = f.length
	}

	if fs.Changed(flagWorkers) {
		cfg.Analysis.Workers = f.workers
	}

	if fs.Changed(flagFormat) {
		cfg.Report.Format = f.format
	}

	if fs.Changed(flagChart) {
		cfg.Report.Chart = f.chart
	}

	if fs.Changed(flagChartOutput) {
		cfg.Report.ChartOutput = f.chartOutput
	}

	if fs.Changed(flagMetricsFile) {
		cfg.Metrics.Textfile = f.metricsFile
	}

	if f.noColor {
		cfg.Report.NoColor = true
	}

	if f.noCorpus {
		cfg.Report.ShowCorpus = false
	}

	if f.noHashes {
		cfg.Report.ShowHashes = false
	}

	if f.verbose {
		cfg.Logging.Level = "debug"
	}

	err = cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}

	return cfg, nil
}
