// Package hesh implements a small family of keyed, non-cryptographic hash
// functions whose weaknesses are easy to demonstrate.
//
// All arithmetic is 64-bit unsigned with wraparound. The key is overloaded:
// Additive and XOR use it as an iteration count, RotatingXor as a shift amount.
package hesh

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Sentinel errors.
var (
	// ErrInvalidKey is returned when a key is not a non-negative 64-bit integer.
	ErrInvalidKey = errors.New("invalid key")
	// ErrEncoding is returned when input text is not valid UTF-8.
	ErrEncoding = errors.New("input is not valid UTF-8 text")
	// ErrUnrecognizedHashID is returned when a selector names no known variant.
	ErrUnrecognizedHashID = errors.New("unrecognized hash id")
)

// Key is the integer parameter of a keyed hash.
type Key uint64

// Hasher maps a byte sequence and a key to a 64-bit hash value.
// Implementations are pure: they never retain or modify data.
type Hasher interface {
	Name() string
	Sum64(data []byte, key Key) uint64
}

// ParseKey parses a base-10 key. Surrounding whitespace is ignored.
func ParseKey(s string) (Key, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}

	return Key(v), nil
}

// Sum hashes the UTF-8 bytes of text.
func Sum(h Hasher, text string, key Key) (uint64, error) {
	if !utf8.ValidString(text) {
		return 0, ErrEncoding
	}

	return h.Sum64([]byte(text), key), nil
}

// Format returns the canonical string form of a hash value.
func Format(v uint64) string {
	return strconv.FormatUint(v, 10)
}
