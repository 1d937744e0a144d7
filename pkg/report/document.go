package report

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/hesh/pkg/collision"
	"github.com/Sumatoshi-tech/hesh/pkg/corpus"
)

// Document is the machine-readable form of one invocation.
type Document struct {
	Variant  string    `json:"variant" yaml:"variant"`
	HashID   string    `json:"hash_id" yaml:"hash_id"`
	Key      uint64    `json:"key" yaml:"key"`
	Input    string    `json:"input" yaml:"input"`
	Hash     string    `json:"hash" yaml:"hash"`
	Analysis *Analysis `json:"analysis,omitempty" yaml:"analysis,omitempty"`
}

// Analysis is the test-run part of a Document.
type Analysis struct {
	Summary collision.Summary  `json:"summary" yaml:"summary"`
	Table   []collision.Bucket `json:"table" yaml:"table"`
	Hashes  []string           `json:"hashes,omitempty" yaml:"hashes,omitempty"`
	Corpus  corpus.Corpus      `json:"corpus,omitempty" yaml:"corpus,omitempty"`
}

// ComparisonDocument is the machine-readable form of a comparison.
type ComparisonDocument struct {
	Key    uint64                 `json:"key" yaml:"key"`
	Count  int                    `json:"count" yaml:"count"`
	Length int                    `json:"length" yaml:"length"`
	Rows   []collision.Comparison `json:"rows" yaml:"rows"`
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	err := enc.Encode(v)
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	return nil
}

// WriteYAML writes v as YAML.
func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	err := enc.Encode(v)
	if err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}

	err = enc.Close()
	if err != nil {
		return fmt.Errorf("flush yaml: %w", err)
	}

	return nil
}
