package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricItemsTotal      = "hesh.analysis.items"
	metricUniqueTotal     = "hesh.analysis.unique"
	metricCollisionsTotal = "hesh.analysis.collisions"
	metricRunDuration     = "hesh.analysis.duration"

	attrVariant = "variant"
)

// durationBucketBoundaries covers 100µs to 10s, from tiny corpora to large
// corpora hashed with expensive keys.
var durationBucketBoundaries = []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10}

// AnalysisMetrics holds OTel instruments for collision-analysis runs.
type AnalysisMetrics struct {
	itemsTotal      metric.Int64Counter
	uniqueTotal     metric.Int64Counter
	collisionsTotal metric.Int64Counter
	runDuration     metric.Float64Histogram
}

// AnalysisStats holds the statistics of a single analysis run,
// decoupled from analyzer types.
type AnalysisStats struct {
	Variant    string
	Items      int64
	Unique     int64
	Collisions int64
	Duration   time.Duration
}

// NewAnalysisMetrics creates analysis metric instruments from the given meter.
func NewAnalysisMetrics(mt metric.Meter) (*AnalysisMetrics, error) {
	items, err := mt.Int64Counter(metricItemsTotal,
		metric.WithDescription("Corpus items hashed"),
		metric.WithUnit("{item}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricItemsTotal, err)
	}

	unique, err := mt.Int64Counter(metricUniqueTotal,
		metric.WithDescription("Distinct hash values observed"),
		metric.WithUnit("{hash}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricUniqueTotal, err)
	}

	collisions, err := mt.Int64Counter(metricCollisionsTotal,
		metric.WithDescription("Items whose hash value was already taken"),
		metric.WithUnit("{item}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricCollisionsTotal, err)
	}

	duration, err := mt.Float64Histogram(metricRunDuration,
		metric.WithDescription("Analysis run duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricRunDuration, err)
	}

	return &AnalysisMetrics{
		itemsTotal:      items,
		uniqueTotal:     unique,
		collisionsTotal: collisions,
		runDuration:     duration,
	}, nil
}

// RecordRun records the statistics of a completed run.
// Safe to call on a nil receiver (no-op).
func (am *AnalysisMetrics) RecordRun(ctx context.Context, stats AnalysisStats) {
	if am == nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String(attrVariant, stats.Variant))

	am.itemsTotal.Add(ctx, stats.Items, attrs)
	am.uniqueTotal.Add(ctx, stats.Unique, attrs)
	am.collisionsTotal.Add(ctx, stats.Collisions, attrs)
	am.runDuration.Record(ctx, stats.Duration.Seconds(), attrs)
}
