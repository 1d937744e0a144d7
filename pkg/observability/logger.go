package observability

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

const (
	attrService = "service"
	attrMode    = "mode"
)

// ServiceHandler is an [slog.Handler] that pre-attaches service metadata
// (service, mode) so it stays at the top level even when groups are used.
type ServiceHandler struct {
	inner slog.Handler
}

// NewServiceHandler wraps an [slog.Handler] with service metadata.
func NewServiceHandler(inner slog.Handler, service string, mode AppMode) *ServiceHandler {
	return &ServiceHandler{
		inner: inner.WithAttrs([]slog.Attr{
			slog.String(attrService, service),
			slog.String(attrMode, string(mode)),
		}),
	}
}

// Enabled delegates to the inner handler.
func (sh *ServiceHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return sh.inner.Enabled(ctx, level)
}

// Handle delegates to the inner handler.
func (sh *ServiceHandler) Handle(ctx context.Context, record slog.Record) error {
	err := sh.inner.Handle(ctx, record)
	if err != nil {
		return fmt.Errorf("service handler: %w", err)
	}

	return nil
}

// WithAttrs returns a new ServiceHandler with additional attributes on the inner handler.
func (sh *ServiceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ServiceHandler{inner: sh.inner.WithAttrs(attrs)}
}

// WithGroup returns a new ServiceHandler with a group prefix on the inner handler.
func (sh *ServiceHandler) WithGroup(name string) slog.Handler {
	return &ServiceHandler{inner: sh.inner.WithGroup(name)}
}

// NewLogger builds the diagnostic logger writing to w (normally stderr).
func NewLogger(w io.Writer, cfg Config) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: cfg.LogLevel}

	var inner slog.Handler
	if cfg.LogJSON {
		inner = slog.NewJSONHandler(w, handlerOpts)
	} else {
		inner = slog.NewTextHandler(w, handlerOpts)
	}

	service := cfg.ServiceName
	if service == "" {
		service = defaultServiceName
	}

	return slog.New(NewServiceHandler(inner, service, cfg.Mode))
}
