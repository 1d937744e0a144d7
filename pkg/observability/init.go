package observability

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	noopmetric "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const meterName = "hesh"

// Providers holds the initialized observability providers.
type Providers struct {
	// Meter is the named meter for creating instruments.
	Meter metric.Meter

	// Logger is the structured diagnostic logger.
	Logger *slog.Logger

	// Shutdown flushes collected metrics (writing the textfile, if configured)
	// and releases resources. Must be called before process exit.
	Shutdown func(ctx context.Context) error
}

// Init builds the logger and, when cfg.MetricsTextfile is set, a MeterProvider
// backed by a private Prometheus registry. Otherwise the meter is a no-op.
func Init(logOut io.Writer, cfg Config) (Providers, error) {
	logger := NewLogger(logOut, cfg)

	if cfg.MetricsTextfile == "" {
		return Providers{
			Meter:    noopmetric.NewMeterProvider().Meter(meterName),
			Logger:   logger,
			Shutdown: func(context.Context) error { return nil },
		}, nil
	}

	registry := prometheus.NewRegistry()

	exporter, err := promexporter.New(promexporter.WithRegisterer(registry))
	if err != nil {
		return Providers{}, fmt.Errorf("create prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	path := cfg.MetricsTextfile

	shutdown := func(ctx context.Context) error {
		var writeErr error

		err := prometheus.WriteToTextfile(path, registry)
		if err != nil {
			writeErr = fmt.Errorf("write metrics textfile: %w", err)
		}

		return errors.Join(writeErr, mp.Shutdown(ctx))
	}

	logger.Debug("metrics textfile enabled", "path", path)

	return Providers{
		Meter:    mp.Meter(meterName),
		Logger:   logger,
		Shutdown: shutdown,
	}, nil
}
