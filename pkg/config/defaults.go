package config

import "github.com/Sumatoshi-tech/hesh/pkg/corpus"

// Analysis defaults.
const (
	DefaultCount   = corpus.DefaultCount
	DefaultLength  = corpus.DefaultLength
	DefaultWorkers = 0
)

// Report defaults.
const (
	DefaultChartOutput = "hesh-distribution.html"
	DefaultMaxBars     = 40
)
