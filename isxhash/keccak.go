// Keccak-256 as used by Ethereum for selectors and
// hashes. This is the pre-standard Keccak padding, not
// the standardized SHA3-256.
package isxhash

import "golang.org/x/crypto/sha3"

func Keccak32(d []byte) [32]byte {
	var h [32]byte
	k := sha3.NewLegacyKeccak256()
	k.Write(d)
	k.Sum(h[:0])
	return h
}

func Keccak(d []byte) []byte {
	h := Keccak32(d)
	return h[:]
}
