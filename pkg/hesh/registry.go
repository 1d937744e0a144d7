package hesh

import "fmt"

// Selector ids accepted on the command line.
const (
	IDAdditive    = "0"
	IDXOR         = "1"
	IDRotatingXor = "2"
)

// Variant pairs a selector id with its hasher.
type Variant struct {
	ID     string
	Hasher Hasher
}

// Variants returns the selectable hashers in id order.
func Variants() []Variant {
	return []Variant{
		{ID: IDAdditive, Hasher: Additive{}},
		{ID: IDXOR, Hasher: XOR{}},
		{ID: IDRotatingXor, Hasher: RotatingXor{}},
	}
}

// Lookup returns the hasher for id. Ids match exactly: "00" or " 0" are rejected.
func Lookup(id string) (Hasher, error) {
	for _, v := range Variants() {
		if v.ID == id {
			return v.Hasher, nil
		}
	}

	return nil, fmt.Errorf("%w: %q (want one of %s, %s, %s)",
		ErrUnrecognizedHashID, id, IDAdditive, IDXOR, IDRotatingXor)
}
