// Package observability provides structured logging and OpenTelemetry
// analysis metrics for hesh.
package observability

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

const (
	// defaultServiceName is the service attribute attached to every log record.
	defaultServiceName = "hesh"

	// LogFormatText selects slog's key=value handler.
	LogFormatText = "text"
	// LogFormatJSON selects slog's JSON handler.
	LogFormatJSON = "json"
)

// ErrInvalidLogLevel is returned for an unknown log level name.
var ErrInvalidLogLevel = errors.New("invalid log level")

// AppMode identifies how the binary was launched.
type AppMode string

const (
	// ModeHash is a single hash, optionally followed by a test run.
	ModeHash AppMode = "hash"
	// ModeCompare is the multi-variant comparison.
	ModeCompare AppMode = "compare"
)

// Config holds logging and metrics settings.
type Config struct {
	// ServiceName is attached to every log record.
	ServiceName string

	// Mode identifies the running command.
	Mode AppMode

	// LogLevel controls the minimum slog severity.
	LogLevel slog.Level

	// LogJSON enables JSON-formatted log output.
	LogJSON bool

	// MetricsTextfile, when set, is where collected metrics are written in
	// Prometheus text format at shutdown.
	MetricsTextfile string
}

// DefaultConfig returns a Config for zero-config startup.
func DefaultConfig() Config {
	return Config{
		ServiceName: defaultServiceName,
		Mode:        ModeHash,
		LogLevel:    slog.LevelInfo,
	}
}

// ParseLevel converts a level name (debug, info, warn, error) to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level

	err := level.UnmarshalText([]byte(strings.TrimSpace(name)))
	if err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLogLevel, name)
	}

	return level, nil
}
