package collision

import (
	"cmp"
	"slices"
)

// FrequencyTable maps the canonical string form of a hash value to the number
// of corpus items that produced it.
type FrequencyTable map[string]int

// Bucket is one entry of a FrequencyTable.
type Bucket struct {
	Label string `json:"hash" yaml:"hash"`
	Count int    `json:"count" yaml:"count"`
}

// Total returns the sum of all counts.
func (ft FrequencyTable) Total() int {
	total := 0

	for _, n := range ft {
		total += n
	}

	return total
}

// Buckets returns the entries ordered by count descending, then label ascending.
func (ft FrequencyTable) Buckets() []Bucket {
	out := make([]Bucket, 0, len(ft))

	for label, n := range ft {
		out = append(out, Bucket{Label: label, Count: n})
	}

	slices.SortFunc(out, func(a, b Bucket) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}

		return cmp.Compare(a.Label, b.Label)
	})

	return out
}

// Counts returns a plain copy of the table for renderers.
func (ft FrequencyTable) Counts() map[string]int {
	out := make(map[string]int, len(ft))

	for label, n := range ft {
		out[label] = n
	}

	return out
}
