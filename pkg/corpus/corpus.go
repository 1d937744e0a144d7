// Package corpus generates random fixed-length alphanumeric test strings.
package corpus

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

// Alphabet is the set of symbols corpus strings are drawn from.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Harness defaults.
const (
	DefaultCount  = 1000
	DefaultLength = 256
)

// rejectAbove is the largest multiple of len(Alphabet) that fits in a byte.
// Bytes at or above it are discarded so every symbol is equally likely.
const rejectAbove = 256 - 256%len(Alphabet)

// readChunk bounds the random buffer requested from the source per read.
const readChunk = 4096

// maxRejectedReads is how many reads in a row may yield no usable byte
// before the source is considered broken.
const maxRejectedReads = 64

var (
	// ErrInvalidSize is returned for a negative count or length.
	ErrInvalidSize = errors.New("corpus size must not be negative")
	// ErrUnusableSource is returned when the random source keeps producing
	// only bytes that rejection sampling discards.
	ErrUnusableSource = errors.New("random source yields no usable bytes")
)

// Corpus is an ordered batch of generated strings.
type Corpus []string

// Generator draws corpus strings from a random source.
type Generator struct {
	source io.Reader
}

// NewGenerator creates a Generator reading from src.
// A nil src selects crypto/rand. Generation fails with ErrUnusableSource if
// src returns only bytes >= 252 for many consecutive reads.
func NewGenerator(src io.Reader) *Generator {
	if src == nil {
		src = rand.Reader
	}

	return &Generator{source: src}
}

// Generate returns count strings of exactly length symbols each, drawn from
// crypto/rand.
func Generate(count, length int) (Corpus, error) {
	return NewGenerator(nil).Generate(count, length)
}

// Generate returns count strings of exactly length symbols each.
func (g *Generator) Generate(count, length int) (Corpus, error) {
	if count < 0 || length < 0 {
		return nil, fmt.Errorf("%w: count=%d length=%d", ErrInvalidSize, count, length)
	}

	out := make(Corpus, count)
	buf := make([]byte, min(readChunk, max(length, 1)))

	for i := range out {
		s, err := g.randomString(length, buf)
		if err != nil {
			return nil, fmt.Errorf("generate item %d: %w", i, err)
		}

		out[i] = s
	}

	return out, nil
}

func (g *Generator) randomString(length int, buf []byte) (string, error) {
	symbols := make([]byte, 0, length)
	rejected := 0

	for len(symbols) < length {
		want := min(len(buf), length-len(symbols))

		_, err := io.ReadFull(g.source, buf[:want])
		if err != nil {
			return "", fmt.Errorf("read random source: %w", err)
		}

		before := len(symbols)

		for _, b := range buf[:want] {
			if int(b) >= rejectAbove {
				continue
			}

			symbols = append(symbols, Alphabet[int(b)%len(Alphabet)])
		}

		if len(symbols) > before {
			rejected = 0

			continue
		}

		rejected++
		if rejected >= maxRejectedReads {
			return "", fmt.Errorf("%w: %d reads in a row", ErrUnusableSource, rejected)
		}
	}

	return string(symbols), nil
}
