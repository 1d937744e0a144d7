package collision_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/Sumatoshi-tech/hesh/pkg/collision"
	"github.com/Sumatoshi-tech/hesh/pkg/corpus"
	"github.com/Sumatoshi-tech/hesh/pkg/hesh"
	"github.com/Sumatoshi-tech/hesh/pkg/observability"
)

func defaultCorpus(t *testing.T) corpus.Corpus {
	t.Helper()

	c, err := corpus.Generate(corpus.DefaultCount, corpus.DefaultLength)
	require.NoError(t, err)

	return c
}

func TestAnalyze_SmallCorpus(t *testing.T) {
	t.Parallel()

	c := corpus.Corpus{"AAAA", "AAAA", "BAAA", "AAAB"}

	res, err := collision.Analyze(context.Background(), c, hesh.Additive{}, 1)
	require.NoError(t, err)

	assert.Equal(t, []uint64{260, 260, 261, 261}, res.Hashes)
	assert.Equal(t, []string{"260", "260", "261", "261"}, res.Labels())
	assert.Equal(t, collision.FrequencyTable{"260": 2, "261": 2}, res.Table)
	assert.Equal(t, "additive", res.Hasher)
	assert.Equal(t, hesh.Key(1), res.Key)
	assert.Equal(t, 4, res.Summary.Total)
	assert.Equal(t, 2, res.Summary.Unique)
	assert.Equal(t, 2, res.Summary.Collisions)
}

func TestAnalyze_EmptyCorpus(t *testing.T) {
	t.Parallel()

	res, err := collision.Analyze(context.Background(), nil, hesh.RotatingXor{}, 3)
	require.NoError(t, err)

	assert.Empty(t, res.Hashes)
	assert.Empty(t, res.Table)
	assert.Equal(t, collision.Summary{}, res.Summary)
}

func TestAnalyze_TableTotalsCorpusSize(t *testing.T) {
	t.Parallel()

	c := defaultCorpus(t)

	for _, v := range hesh.Variants() {
		for _, key := range []hesh.Key{0, 1, 2, 7, 64} {
			res, err := collision.Analyze(context.Background(), c, v.Hasher, key)
			require.NoError(t, err)

			assert.Equal(t, len(c), res.Table.Total(), "%s key=%d", v.Hasher.Name(), key)
			assert.Len(t, res.Hashes, len(c))
			assert.Equal(t, len(res.Table), res.Summary.Unique)
			assert.Equal(t, len(c)-len(res.Table), res.Summary.Collisions)
		}
	}
}

func TestAnalyze_ParallelMatchesSequential(t *testing.T) {
	t.Parallel()

	c := defaultCorpus(t)

	seq, err := collision.Analyze(context.Background(), c, hesh.RotatingXor{}, 5, collision.WithWorkers(1))
	require.NoError(t, err)

	for _, workers := range []int{0, 2, 3, 8, 64} {
		par, err := collision.Analyze(context.Background(), c, hesh.RotatingXor{}, 5, collision.WithWorkers(workers))
		require.NoError(t, err)

		assert.Equal(t, seq.Hashes, par.Hashes, "workers=%d", workers)
		assert.Equal(t, seq.Table, par.Table, "workers=%d", workers)
	}
}

func TestAnalyze_HashesMatchHasher(t *testing.T) {
	t.Parallel()

	c := defaultCorpus(t)

	res, err := collision.Analyze(context.Background(), c, hesh.RotatingXor{}, 9, collision.WithWorkers(4))
	require.NoError(t, err)

	for i, s := range c {
		require.Equal(t, hesh.RotatingXor{}.Sum64([]byte(s), 9), res.Hashes[i])
	}
}

func TestAnalyze_OrderIndependentHashersCollideHeavily(t *testing.T) {
	t.Parallel()

	c := defaultCorpus(t)

	additive, err := collision.Analyze(context.Background(), c, hesh.Additive{}, 1)
	require.NoError(t, err)

	xor, err := collision.Analyze(context.Background(), c, hesh.XOR{}, 1)
	require.NoError(t, err)

	xorEven, err := collision.Analyze(context.Background(), c, hesh.XOR{}, 2)
	require.NoError(t, err)

	rotating, err := collision.Analyze(context.Background(), c, hesh.RotatingXor{}, 1)
	require.NoError(t, err)

	// XOR over the alphabet only reaches bytes below 128.
	assert.LessOrEqual(t, xor.Summary.Unique, 128)
	assert.Equal(t, 1, xorEven.Summary.Unique)
	assert.Equal(t, collision.FrequencyTable{"0": len(c)}, xorEven.Table)
	// Sums of 256 symbols cluster within a few hundred values of their mean,
	// so roughly 40% of the corpus collides.
	assert.Less(t, additive.Summary.Unique, len(c)*3/4)

	assert.Greater(t, rotating.Summary.Unique, additive.Summary.Unique)
	assert.Greater(t, rotating.Summary.Unique, xor.Summary.Unique)
	assert.Greater(t, rotating.Summary.Unique, len(c)*9/10)
}

func TestAnalyze_CancelledContext(t *testing.T) {
	t.Parallel()

	c := defaultCorpus(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := collision.Analyze(ctx, c, hesh.Additive{}, 1, collision.WithWorkers(4))
	require.ErrorIs(t, err, context.Canceled)
}

func TestAnalyze_RecordsMetrics(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	am, err := observability.NewAnalysisMetrics(mp.Meter("test"))
	require.NoError(t, err)

	c := corpus.Corpus{"AB", "BA", "CC"}

	_, err = collision.Analyze(context.Background(), c, hesh.XOR{}, 1, collision.WithMetrics(am))
	require.NoError(t, err)

	var rm metricdata.ResourceMetrics

	require.NoError(t, reader.Collect(context.Background(), &rm))

	values := map[string]int64{}

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				values[m.Name] = sum.DataPoints[0].Value
			}
		}
	}

	// "AB" and "BA" share a value; "CC" folds to 0.
	assert.Equal(t, int64(3), values["hesh.analysis.items"])
	assert.Equal(t, int64(2), values["hesh.analysis.unique"])
	assert.Equal(t, int64(1), values["hesh.analysis.collisions"])
}

func TestCompare(t *testing.T) {
	t.Parallel()

	c := defaultCorpus(t)
	hashers := []hesh.Hasher{hesh.Additive{}, hesh.XOR{}, hesh.RotatingXor{}, hesh.Baseline{}}

	rows, err := collision.Compare(context.Background(), c, 3, hashers)
	require.NoError(t, err)
	require.Len(t, rows, len(hashers))

	for i, row := range rows {
		assert.Equal(t, hashers[i].Name(), row.Hasher)
		assert.Equal(t, len(c), row.Summary.Total)
	}

	// 1000 random 256-symbol strings never collide under xxhash64.
	assert.Equal(t, len(c), rows[3].Summary.Unique)
}

func TestCompare_PropagatesError(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := collision.Compare(ctx, corpus.Corpus{"A"}, 1, []hesh.Hasher{hesh.Additive{}})
	require.ErrorIs(t, err, context.Canceled)
}

func ExampleAnalyze() {
	c := corpus.Corpus{"AB", "BA", "AC"}

	res, err := collision.Analyze(context.Background(), c, hesh.Additive{}, 1)
	if err != nil {
		panic(err)
	}

	fmt.Printf("tested %d strings, and got %d unique hashes\n", res.Summary.Total, res.Summary.Unique)
	// Output: tested 3 strings, and got 2 unique hashes
}
