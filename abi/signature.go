package abi

import (
	"fmt"
	"strings"

	"github.com/indexsupply/ethabi/abi/abit"
)

// Parses a signature into a Function with unnamed params.
// An optional output list may follow the inputs:
//
//	transfer(address,uint256)
//	balanceOf(address)(uint256)
func ParseSignature(s string) (Function, error) {
	s = strings.TrimSpace(s)
	i := strings.IndexByte(s, '(')
	if i <= 0 || !ident(s[:i]) {
		return Function{}, fmt.Errorf("%w: signature %q missing name", ErrUnsupported, s)
	}
	var (
		f    = Function{Name: s[:i]}
		rest = s[i:]
		end  = closing(rest)
	)
	if end < 0 {
		return Function{}, fmt.Errorf("%w: signature %q is unbalanced", ErrUnsupported, s)
	}
	in, err := abit.Parse(rest[:end+1])
	if err != nil {
		return Function{}, fmt.Errorf("parsing %q inputs: %w", s, err)
	}
	f.Inputs = unnamed(in.Fields)
	if out := strings.TrimSpace(rest[end+1:]); out != "" {
		t, err := abit.Parse(out)
		if err != nil {
			return Function{}, fmt.Errorf("parsing %q outputs: %w", s, err)
		}
		if t.Kind != abit.KTuple {
			return Function{}, fmt.Errorf("%w: outputs of %q must be a list", ErrUnsupported, s)
		}
		f.Outputs = unnamed(t.Fields)
	}
	return f, nil
}

func unnamed(fields []abit.Type) []Param {
	res := make([]Param, len(fields))
	for i := range fields {
		res[i] = Param{Type: fields[i]}
	}
	return res
}

// index of the paren that closes s[0]
func closing(s string) int {
	var depth int
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func ident(s string) bool {
	for i, r := range s {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return len(s) > 0
}
