package hesh

import "github.com/cespare/xxhash/v2"

// Baseline is xxhash64 seeded with the key. It is not selectable by id and
// serves as a well-mixed reference when comparing variants.
type Baseline struct{}

// Name implements Hasher.
func (Baseline) Name() string { return "xxhash64" }

// Sum64 implements Hasher.
func (Baseline) Sum64(data []byte, key Key) uint64 {
	d := xxhash.NewWithSeed(uint64(key))
	_, _ = d.Write(data)

	return d.Sum64()
}
