package observability_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/Sumatoshi-tech/hesh/pkg/observability"
)

func setupTestMeter(t *testing.T) (*observability.AnalysisMetrics, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	am, err := observability.NewAnalysisMetrics(mp.Meter("test"))
	require.NoError(t, err)

	return am, reader
}

func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()

	var rm metricdata.ResourceMetrics

	require.NoError(t, reader.Collect(context.Background(), &rm))

	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for idx := range rm.ScopeMetrics {
		for midx := range rm.ScopeMetrics[idx].Metrics {
			if rm.ScopeMetrics[idx].Metrics[midx].Name == name {
				return &rm.ScopeMetrics[idx].Metrics[midx]
			}
		}
	}

	return nil
}

func TestAnalysisMetrics_RecordRun(t *testing.T) {
	t.Parallel()

	am, reader := setupTestMeter(t)

	am.RecordRun(context.Background(), observability.AnalysisStats{
		Variant:    "additive",
		Items:      1000,
		Unique:     12,
		Collisions: 988,
		Duration:   5 * time.Millisecond,
	})

	rm := collectMetrics(t, reader)

	items := findMetric(rm, "hesh.analysis.items")
	require.NotNil(t, items)

	sum, ok := items.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(1000), sum.DataPoints[0].Value)

	variant, found := sum.DataPoints[0].Attributes.Value("variant")
	require.True(t, found)
	assert.Equal(t, "additive", variant.AsString())

	collisions := findMetric(rm, "hesh.analysis.collisions")
	require.NotNil(t, collisions)

	collSum, ok := collisions.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	assert.Equal(t, int64(988), collSum.DataPoints[0].Value)

	duration := findMetric(rm, "hesh.analysis.duration")
	require.NotNil(t, duration)

	hist, ok := duration.Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, uint64(1), hist.DataPoints[0].Count)
}

func TestAnalysisMetrics_NilReceiver(t *testing.T) {
	t.Parallel()

	var am *observability.AnalysisMetrics

	assert.NotPanics(t, func() {
		am.RecordRun(context.Background(), observability.AnalysisStats{Items: 1})
	})
}

func TestNewLogger_JSONIncludesServiceAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	cfg := observability.DefaultConfig()
	cfg.LogJSON = true
	cfg.Mode = observability.ModeCompare

	logger := observability.NewLogger(&buf, cfg)
	logger.WithGroup("run").Info("hello", "items", 3)

	var record map[string]any

	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "hesh", record["service"])
	assert.Equal(t, "compare", record["mode"])
	assert.Equal(t, "hello", record["msg"])

	group, ok := record["run"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 3, group["items"], 0)
}

func TestNewLogger_RespectsLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	cfg := observability.DefaultConfig()
	cfg.LogLevel = slog.LevelWarn

	logger := observability.NewLogger(&buf, cfg)
	logger.Info("dropped")
	assert.Empty(t, buf.String())

	logger.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
	assert.Contains(t, buf.String(), "service=hesh")
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	level, err := observability.ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	level, err = observability.ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	_, err = observability.ParseLevel("loud")
	require.ErrorIs(t, err, observability.ErrInvalidLogLevel)
}

func TestInit_NoTextfileIsNoop(t *testing.T) {
	t.Parallel()

	providers, err := observability.Init(&bytes.Buffer{}, observability.DefaultConfig())
	require.NoError(t, err)
	require.NotNil(t, providers.Meter)
	require.NotNil(t, providers.Logger)

	am, err := observability.NewAnalysisMetrics(providers.Meter)
	require.NoError(t, err)
	am.RecordRun(context.Background(), observability.AnalysisStats{Items: 10})

	require.NoError(t, providers.Shutdown(context.Background()))
}

func TestInit_WritesTextfile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "hesh.prom")

	cfg := observability.DefaultConfig()
	cfg.MetricsTextfile = path

	providers, err := observability.Init(&bytes.Buffer{}, cfg)
	require.NoError(t, err)

	am, err := observability.NewAnalysisMetrics(providers.Meter)
	require.NoError(t, err)

	am.RecordRun(context.Background(), observability.AnalysisStats{
		Variant: "xor", Items: 1000, Unique: 40, Collisions: 960, Duration: time.Millisecond,
	})

	require.NoError(t, providers.Shutdown(context.Background()))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "hesh_analysis_items")
	assert.Contains(t, string(content), `variant="xor"`)
}
