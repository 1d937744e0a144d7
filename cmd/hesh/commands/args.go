package commands

import (
	"errors"
	"fmt"
)

// TestFlag is the text_or_flag value that additionally triggers a test run.
const TestFlag = "-t"

// positionalArgCount is the number of positional arguments of the root command.
const positionalArgCount = 3

// ErrArgCount is returned when the root command gets the wrong number of arguments.
var ErrArgCount = errors.New("expected <hash_id> <key> <text_or_flag>")

// Args is the parsed positional command line.
type Args struct {
	// HashID selects the variant: "0" additive, "1" xor, "2" rotating xor.
	HashID string
	// Key is the unparsed integer key.
	Key string
	// TextOrFlag is hashed literally; when it equals TestFlag a test run follows.
	TextOrFlag string
}

// ParseArgs builds Args from the positional arguments. When testFlag is set
// the "-t" was consumed by the flag parser and only two arguments remain.
func ParseArgs(positional []string, testFlag bool) (Args, error) {
	if testFlag {
		if len(positional) != positionalArgCount-1 {
			return Args{}, fmt.Errorf("%w: -t replaces <text_or_flag>, got %d arguments", ErrArgCount, len(positional))
		}

		return Args{HashID: positional[0], Key: positional[1], TextOrFlag: TestFlag}, nil
	}

	if len(positional) != positionalArgCount {
		return Args{}, fmt.Errorf("%w: got %d arguments", ErrArgCount, len(positional))
	}

	return Args{HashID: positional[0], Key: positional[1], TextOrFlag: positional[2]}, nil
}

// TestMode reports whether a test run follows the single hash.
func (a Args) TestMode() bool {
	return a.TextOrFlag == TestFlag
}
