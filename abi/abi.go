// ABI encoding/decoding of contract calls
//
// Implementation based on the [ABI Spec].
//
// Values are [Token]s described by [abit.Type]s. A [Function]
// ties a name and its input/output params together and
// produces call payloads: a 4 byte selector followed by
// the head/tail encoding of the inputs.
//
// [ABI Spec]: https://docs.soliditylang.org/en/latest/abi-spec.html
package abi

import (
	"errors"

	"github.com/indexsupply/ethabi/abi/abit"
)

var (
	// Tokens do not conform to their declared types
	ErrInvalidData = errors.New("invalid data")

	// Encoded input is truncated, has out of range
	// offsets, or has non-canonical values
	ErrMalformed = errors.New("malformed encoding")

	// A declared type violates a structural invariant
	ErrUnsupported = abit.ErrUnsupported
)

// rounds n up to the next word boundary
func padded(n int) int {
	return (n + 31) / 32 * 32
}
