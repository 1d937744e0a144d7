// Package config provides configuration loading and validation for hesh.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidCount    = errors.New("analysis count must not be negative")
	ErrInvalidLength   = errors.New("analysis length must not be negative")
	ErrInvalidWorkers  = errors.New("analysis workers must not be negative")
	ErrInvalidFormat   = errors.New("unknown report format")
	ErrInvalidChart    = errors.New("unknown chart kind")
	ErrInvalidMaxBars  = errors.New("report max bars must be positive")
	ErrInvalidLogLevel = errors.New("unknown log level")
	ErrInvalidLogFmt   = errors.New("unknown log format")
)

// Report formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Chart kinds.
const (
	ChartTerminal = "terminal"
	ChartHTML     = "html"
	ChartNone     = "none"
)

const (
	envPrefix      = "HESH"
	configFileName = ".hesh"
)

var (
	validFormats   = []string{FormatText, FormatJSON, FormatYAML}
	validCharts    = []string{ChartTerminal, ChartHTML, ChartNone}
	validLogLevels = []string{"debug", "info", "warn", "error"}
	validLogFmts   = []string{"text", "json"}
)

// Config holds all configuration for hesh.
type Config struct {
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Report   ReportConfig   `mapstructure:"report"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// AnalysisConfig holds corpus and analyzer settings.
type AnalysisConfig struct {
	Count   int `mapstructure:"count"`
	Length  int `mapstructure:"length"`
	Workers int `mapstructure:"workers"`
}

// ReportConfig holds output settings.
type ReportConfig struct {
	Format      string `mapstructure:"format"`
	Chart       string `mapstructure:"chart"`
	ChartOutput string `mapstructure:"chart_output"`
	MaxBars     int    `mapstructure:"max_bars"`
	ShowCorpus  bool   `mapstructure:"show_corpus"`
	ShowHashes  bool   `mapstructure:"show_hashes"`
	NoColor     bool   `mapstructure:"no_color"`
}

// LoggingConfig holds diagnostic logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MetricsConfig holds metrics export settings.
type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

// LoadConfig loads configuration from defaults, an optional YAML file and
// HESH_* environment variables, in increasing precedence.
//
// With an empty configPath, .hesh.yaml is looked up in the working directory
// and then in $HOME; a missing file is not an error.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configFileName)
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("$HOME")
	}

	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viperCfg.AutomaticEnv()

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := config.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

// Default returns the configuration used when no file or environment is present.
func Default() *Config {
	viperCfg := viper.New()
	setDefaults(viperCfg)

	var config Config

	// Defaults always unmarshal.
	_ = viperCfg.Unmarshal(&config)

	return &config
}

func setDefaults(viperCfg *viper.Viper) {
	// Analysis defaults.
	viperCfg.SetDefault("analysis.count", DefaultCount)
	viperCfg.SetDefault("analysis.length", DefaultLength)
	viperCfg.SetDefault("analysis.workers", DefaultWorkers)

	// Report defaults.
	viperCfg.SetDefault("report.format", FormatText)
	viperCfg.SetDefault("report.chart", ChartTerminal)
	viperCfg.SetDefault("report.chart_output", DefaultChartOutput)
	viperCfg.SetDefault("report.max_bars", DefaultMaxBars)
	viperCfg.SetDefault("report.show_corpus", true)
	viperCfg.SetDefault("report.show_hashes", true)
	viperCfg.SetDefault("report.no_color", false)

	// Logging defaults.
	viperCfg.SetDefault("logging.level", "info")
	viperCfg.SetDefault("logging.format", "text")

	// Metrics defaults.
	viperCfg.SetDefault("metrics.textfile", "")
}

// Validate checks every field against its allowed range.
func (c *Config) Validate() error {
	if c.Analysis.Count < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCount, c.Analysis.Count)
	}

	if c.Analysis.Length < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidLength, c.Analysis.Length)
	}

	if c.Analysis.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, c.Analysis.Workers)
	}

	if !slices.Contains(validFormats, c.Report.Format) {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Report.Format)
	}

	if !slices.Contains(validCharts, c.Report.Chart) {
		return fmt.Errorf("%w: %q", ErrInvalidChart, c.Report.Chart)
	}

	if c.Report.MaxBars <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxBars, c.Report.MaxBars)
	}

	if !slices.Contains(validLogLevels, strings.ToLower(c.Logging.Level)) {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}

	if !slices.Contains(validLogFmts, c.Logging.Format) {
		return fmt.Errorf("%w: %q", ErrInvalidLogFmt, c.Logging.Format)
	}

	return nil
}
