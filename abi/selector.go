package abi

import (
	"strings"

	"github.com/indexsupply/ethabi/abi/abit"
	"github.com/indexsupply/ethabi/isxhash"
)

// A pure 256 bit hash. The execution environment
// decides which one. Ethereum uses Keccak-256.
type Hash256 func([]byte) [32]byte

var DefaultHash Hash256 = isxhash.Keccak32

// Returns the canonical signature. For example:
//
//	transfer(address,uint256)
func Signature(name string, types []abit.Type) string {
	var s strings.Builder
	s.WriteString(name)
	s.WriteString("(")
	for i := range types {
		s.WriteString(types[i].Name())
		if i+1 < len(types) {
			s.WriteString(",")
		}
	}
	s.WriteString(")")
	return s.String()
}

// First 4 bytes of the hash of the canonical signature.
// h defaults to [DefaultHash] when nil.
func Selector(h Hash256, name string, types []abit.Type) [4]byte {
	if h == nil {
		h = DefaultHash
	}
	d := h([]byte(Signature(name, types)))
	return [4]byte(d[:4])
}
