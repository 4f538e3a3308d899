// hex helpers for 0x prefixed data
package eth

import (
	"encoding/hex"
	"strings"
)

// deals with eth's 0x prefix and possible odd length
func DecodeHex(s string) ([]byte, error) {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	return hex.DecodeString(s)
}

// 0x prefixed hex encoded string
func EncodeHex(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}

// Like [DecodeHex] but ignores surrounding whitespace,
// including the trailing newline of piped input
func DecodeHexTrim(s string) ([]byte, error) {
	return DecodeHex(strings.TrimSpace(s))
}
