package hesh

// rotatingRightShift is the fixed right-shift of the rotating hash.
const rotatingRightShift = 13

// RotatingXor mixes each byte with a left shift by key and a right shift by 13:
//
//	acc = (acc << key) ^ (acc >> 13) ^ b
//
// Bytes are consumed left to right, so the hash depends on byte order.
//
// A key of 64 or more clears the left-shifted term (Go shift semantics), which
// is the low 64 bits of the same shift on an unbounded integer. For such keys
// the recurrence reduces to acc = (acc >> 13) ^ b.
type RotatingXor struct{}

// Name implements Hasher.
func (RotatingXor) Name() string { return "rotating-xor" }

// Sum64 implements Hasher.
func (RotatingXor) Sum64(data []byte, key Key) uint64 {
	var acc uint64

	for _, b := range data {
		acc = (acc << uint64(key)) ^ (acc >> rotatingRightShift) ^ uint64(b)
	}

	return acc
}
