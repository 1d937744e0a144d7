package commands

import (
	"context"
	"fmt"

	"github.com/Sumatoshi-tech/hesh/pkg/collision"
	"github.com/Sumatoshi-tech/hesh/pkg/config"
	"github.com/Sumatoshi-tech/hesh/pkg/hesh"
	"github.com/Sumatoshi-tech/hesh/pkg/report"
)

// Run hashes args.TextOrFlag with the selected variant and, in test mode,
// analyzes a freshly generated corpus with the same variant and key.
func Run(ctx context.Context, args Args, env Env) error {
	text := env.Config.Report.Format == config.FormatText

	var tr *report.TextReporter
	if text {
		tr = env.textReporter()
		tr.Banner()
		tr.Selection(args.HashID, args.TextOrFlag)
	}

	hasher, err := hesh.Lookup(args.HashID)
	if err != nil {
		return err
	}

	key, err := hesh.ParseKey(args.Key)
	if err != nil {
		return err
	}

	value, err := hesh.Sum(hasher, args.TextOrFlag, key)
	if err != nil {
		return err
	}

	doc := report.Document{
		Variant: hasher.Name(),
		HashID:  args.HashID,
		Key:     uint64(key),
		Input:   args.TextOrFlag,
		Hash:    hesh.Format(value),
	}

	if text {
		tr.Hash(doc.Hash)
	}

	env.Logger.DebugContext(ctx, "hashed input",
		"variant", hasher.Name(), "key", uint64(key), "bytes", len(args.TextOrFlag))

	if args.TestMode() {
		analysis, runErr := runTest(ctx, args.HashID, hasher, key, env, tr)
		if runErr != nil {
			return runErr
		}

		doc.Analysis = analysis
	}

	return env.writeDocument(doc)
}

func runTest(
	ctx context.Context, id string, hasher hesh.Hasher, key hesh.Key, env Env, tr *report.TextReporter,
) (*report.Analysis, error) {
	if tr != nil {
		tr.TestHeader(id)
	}

	cfg := env.Config.Analysis

	c, err := env.Generate(cfg.Count, cfg.Length)
	if err != nil {
		return nil, fmt.Errorf("generate corpus: %w", err)
	}

	res, err := collision.Analyze(ctx, c, hasher, key,
		collision.WithWorkers(cfg.Workers),
		collision.WithMetrics(env.Metrics),
		collision.WithLogger(env.Logger),
	)
	if err != nil {
		return nil, err
	}

	var analysis *report.Analysis

	if tr != nil {
		tr.Items(c, res.Labels())
		tr.FrequencyTable(res.Table)
		tr.Summary(res.Summary)
	} else {
		analysis = &report.Analysis{
			Summary: res.Summary,
			Table:   res.Table.Buckets(),
		}

		if env.Config.Report.ShowHashes {
			analysis.Hashes = res.Labels()
		}

		if env.Config.Report.ShowCorpus {
			analysis.Corpus = c
		}
	}

	title := fmt.Sprintf("hesh_%s distribution", id)
	description := fmt.Sprintf("%s with key %d over %d strings of length %d",
		hasher.Name(), uint64(key), len(c), cfg.Length)

	err = env.renderChart(ctx, title, description, res.Table.Counts())
	if err != nil {
		return nil, err
	}

	return analysis, nil
}

// Compare analyzes one shared corpus with every selectable variant plus the
// xxhash baseline.
func Compare(ctx context.Context, keyText string, env Env) error {
	key, err := hesh.ParseKey(keyText)
	if err != nil {
		return err
	}

	cfg := env.Config.Analysis

	c, err := env.Generate(cfg.Count, cfg.Length)
	if err != nil {
		return fmt.Errorf("generate corpus: %w", err)
	}

	variants := hesh.Variants()
	hashers := make([]hesh.Hasher, 0, len(variants)+1)

	for _, v := range variants {
		hashers = append(hashers, v.Hasher)
	}

	hashers = append(hashers, hesh.Baseline{})

	rows, err := collision.Compare(ctx, c, key, hashers,
		collision.WithWorkers(cfg.Workers),
		collision.WithMetrics(env.Metrics),
		collision.WithLogger(env.Logger),
	)
	if err != nil {
		return err
	}

	if env.Config.Report.Format == config.FormatText {
		env.textReporter().Comparison(uint64(key), rows)
	} else {
		err = env.writeDocument(report.ComparisonDocument{
			Key:    uint64(key),
			Count:  cfg.Count,
			Length: cfg.Length,
			Rows:   rows,
		})
		if err != nil {
			return err
		}
	}

	unique := make(map[string]int, len(rows))
	for _, row := range rows {
		unique[row.Hasher] = row.Summary.Unique
	}

	description := fmt.Sprintf("unique hashes with key %d over %d strings of length %d",
		uint64(key), len(c), cfg.Length)

	return env.renderChart(ctx, "unique hashes per hasher", description, unique)
}
