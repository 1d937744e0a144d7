// Package collision measures how often a keyed hash maps distinct corpus items
// onto the same value.
package collision

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Sumatoshi-tech/hesh/pkg/corpus"
	"github.com/Sumatoshi-tech/hesh/pkg/hesh"
	"github.com/Sumatoshi-tech/hesh/pkg/observability"
)

// minItemsPerWorker keeps tiny corpora from being split across goroutines.
const minItemsPerWorker = 64

// Result is the outcome of one analysis run.
type Result struct {
	Hasher  string         `json:"hasher" yaml:"hasher"`
	Key     hesh.Key       `json:"key" yaml:"key"`
	Hashes  []uint64       `json:"hashes" yaml:"hashes"`
	Table   FrequencyTable `json:"table" yaml:"table"`
	Summary Summary        `json:"summary" yaml:"summary"`
}

// Labels returns the canonical string form of every per-item hash, in corpus order.
func (r *Result) Labels() []string {
	out := make([]string, len(r.Hashes))
	for i, v := range r.Hashes {
		out[i] = hesh.Format(v)
	}

	return out
}

type options struct {
	workers int
	metrics *observability.AnalysisMetrics
	logger  *slog.Logger
}

// Option configures Analyze.
type Option func(*options)

// WithWorkers bounds the number of hashing goroutines. Values below 1 select GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithMetrics records per-run metrics.
func WithMetrics(m *observability.AnalysisMetrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithLogger sets the logger for debug output. A nil logger keeps slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Analyze hashes every corpus item with h and key and tabulates the results.
//
// Items are hashed concurrently, each worker owning a contiguous index range,
// and tallied only after all workers finish. The table therefore matches a
// sequential run and its counts always sum to len(c).
func Analyze(ctx context.Context, c corpus.Corpus, h hesh.Hasher, key hesh.Key, opts ...Option) (*Result, error) {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	start := time.Now()

	hashes, err := hashAll(ctx, c, h, key, o.workers)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", h.Name(), err)
	}

	table := make(FrequencyTable)
	for _, v := range hashes {
		table[hesh.Format(v)]++
	}

	res := &Result{
		Hasher:  h.Name(),
		Key:     key,
		Hashes:  hashes,
		Table:   table,
		Summary: Summarize(table),
	}

	elapsed := time.Since(start)

	o.metrics.RecordRun(ctx, observability.AnalysisStats{
		Variant:    h.Name(),
		Items:      int64(res.Summary.Total),
		Unique:     int64(res.Summary.Unique),
		Collisions: int64(res.Summary.Collisions),
		Duration:   elapsed,
	})

	o.logger.DebugContext(ctx, "analysis complete",
		"hasher", h.Name(),
		"items", res.Summary.Total,
		"unique", res.Summary.Unique,
		"elapsed", elapsed,
	)

	return res, nil
}

func hashAll(ctx context.Context, c corpus.Corpus, h hesh.Hasher, key hesh.Key, workers int) ([]uint64, error) {
	hashes := make([]uint64, len(c))
	if len(c) == 0 {
		return hashes, nil
	}

	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	workers = max(1, min(workers, len(c)/minItemsPerWorker))
	chunk := (len(c) + workers - 1) / workers

	g, gctx := errgroup.WithContext(ctx)

	for lo := 0; lo < len(c); lo += chunk {
		hi := min(lo+chunk, len(c))

		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}

				hashes[i] = h.Sum64([]byte(c[i]), key)
			}

			return nil
		})
	}

	err := g.Wait()
	if err != nil {
		return nil, err
	}

	return hashes, nil
}

// Comparison is one row of a multi-hasher comparison over a shared corpus.
type Comparison struct {
	Hasher  string  `json:"hasher" yaml:"hasher"`
	Summary Summary `json:"summary" yaml:"summary"`
}

// Compare analyzes the same corpus with each hasher in turn.
func Compare(ctx context.Context, c corpus.Corpus, key hesh.Key, hashers []hesh.Hasher, opts ...Option) ([]Comparison, error) {
	out := make([]Comparison, 0, len(hashers))

	for _, h := range hashers {
		res, err := Analyze(ctx, c, h, key, opts...)
		if err != nil {
			return nil, err
		}

		out = append(out, Comparison{Hasher: res.Hasher, Summary: res.Summary})
	}

	return out, nil
}
