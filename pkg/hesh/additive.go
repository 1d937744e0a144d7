package hesh

// Additive adds every byte into the accumulator key times.
//
// Adding b key times modulo 2^64 is the same as adding key*b modulo 2^64, so the
// result is key * sum(data) and is computed in a single pass. The sum ignores
// byte order: any permutation of the input collides.
type Additive struct{}

// Name implements Hasher.
func (Additive) Name() string { return "additive" }

// Sum64 implements Hasher.
func (Additive) Sum64(data []byte, key Key) uint64 {
	var sum uint64

	for _, b := range data {
		sum += uint64(b)
	}

	return sum * uint64(key)
}
