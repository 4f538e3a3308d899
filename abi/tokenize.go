package abi

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/indexsupply/ethabi/abi/abit"
	"github.com/indexsupply/ethabi/eth"
)

// Converts text into a token conforming to t.
//
//	bool          true | false
//	address       40 hex digits, 0x optional
//	uint, int     decimal or 0x prefixed hex. int may be negative
//	bytesN        exactly N bytes of hex
//	bytes         hex
//	string        the text itself. double quoted inside arrays and tuples
//	T[k], T[]     [a,b,...]
//	tuple         (a,b,...)
//
// Errors wrap [ErrInvalidData].
func Tokenize(t abit.Type, s string) (Token, error) {
	if err := t.Validate(); err != nil {
		return Token{}, err
	}
	return tokenize(t, s, 0)
}

// Tokenizes each of args against the corresponding type
func TokenizeAll(types []abit.Type, args []string) ([]Token, error) {
	if len(types) != len(args) {
		return nil, fmt.Errorf("%w: want %d args got %d", ErrInvalidData, len(types), len(args))
	}
	res := make([]Token, len(types))
	for i := range types {
		tok, err := Tokenize(types[i], args[i])
		if err != nil {
			return nil, fmt.Errorf("arg %d: %w", i, err)
		}
		res[i] = tok
	}
	return res, nil
}

func invalid(t abit.Type, s string) error {
	return fmt.Errorf("%w: %q is not a valid %s", ErrInvalidData, s, t.Name())
}

func tokenize(t abit.Type, s string, depth int) (Token, error) {
	if depth > abit.MaxDepth {
		return Token{}, fmt.Errorf("%w: nesting exceeds %d", ErrInvalidData, abit.MaxDepth)
	}
	switch t.Kind {
	case abit.KBool:
		switch strings.TrimSpace(s) {
		case "true":
			return Bool(true), nil
		case "false":
			return Bool(false), nil
		default:
			return Token{}, invalid(t, s)
		}
	case abit.KAddress:
		h := strings.TrimSpace(s)
		b, err := eth.DecodeHex(h)
		if err != nil || len(b) != 20 || len(strings.TrimPrefix(strings.TrimPrefix(h, "0x"), "0X")) != 40 {
			return Token{}, invalid(t, s)
		}
		return Address([20]byte(b)), nil
	case abit.KUint, abit.KInt:
		i, ok := new(big.Int).SetString(strings.TrimSpace(s), 0)
		if !ok {
			return Token{}, invalid(t, s)
		}
		if t.Kind == abit.KUint {
			return BigUint(i)
		}
		return BigInt(i)
	case abit.KFixedBytes:
		b, err := eth.DecodeHex(strings.TrimSpace(s))
		if err != nil || len(b) != t.Size {
			return Token{}, invalid(t, s)
		}
		return FixedBytes(b), nil
	case abit.KBytes:
		b, err := eth.DecodeHex(strings.TrimSpace(s))
		if err != nil {
			return Token{}, invalid(t, s)
		}
		return Bytes(b), nil
	case abit.KString:
		if depth > 0 {
			if q := strings.TrimSpace(s); strings.HasPrefix(q, `"`) {
				u, err := strconv.Unquote(q)
				if err != nil {
					return Token{}, invalid(t, s)
				}
				return String(u), nil
			}
		}
		return String(s), nil
	case abit.KArrayK, abit.KList:
		parts, err := split(s, '[', ']')
		if err != nil {
			return Token{}, fmt.Errorf("%w: %s: %s", ErrInvalidData, t.Name(), err)
		}
		if t.Kind == abit.KArrayK && len(parts) != t.Size {
			return Token{}, fmt.Errorf("%w: %s has %d elements", ErrInvalidData, t.Name(), len(parts))
		}
		items := make([]Token, len(parts))
		for i := range parts {
			items[i], err = tokenize(*t.Elem, parts[i], depth+1)
			if err != nil {
				return Token{}, err
			}
		}
		if t.Kind == abit.KArrayK {
			return ArrayK(items...), nil
		}
		return Array(items...), nil
	case abit.KTuple:
		parts, err := split(s, '(', ')')
		if err != nil {
			return Token{}, fmt.Errorf("%w: %s: %s", ErrInvalidData, t.Name(), err)
		}
		if len(parts) != len(t.Fields) {
			return Token{}, fmt.Errorf("%w: %s has %d fields", ErrInvalidData, t.Name(), len(parts))
		}
		items := make([]Token, len(parts))
		for i := range parts {
			items[i], err = tokenize(t.Fields[i], parts[i], depth+1)
			if err != nil {
				return Token{}, err
			}
		}
		return Tuple(items...), nil
	default:
		return Token{}, fmt.Errorf("%w: %s", ErrUnsupported, t.Kind)
	}
}

// Strips the open/close delimiters from s and splits
// the contents on commas that aren't nested in brackets,
// parens, or quotes.
func split(s string, open, close byte) ([]string, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != open || s[len(s)-1] != close {
		return nil, fmt.Errorf("expected %c...%c", open, close)
	}
	list := s[1 : len(s)-1]
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}
	var (
		parts  []string
		depth  int
		quoted bool
		j      int
	)
	for i := 0; i < len(list); i++ {
		c := list[i]
		switch {
		case quoted && c == '\\':
			i++
		case c == '"':
			quoted = !quoted
		case quoted:
		case c == '[' || c == '(':
			depth++
		case c == ']' || c == ')':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced %q", s)
			}
		case c == ',' && depth == 0:
			parts = append(parts, list[j:i])
			j = i + 1
		}
	}
	if depth != 0 || quoted {
		return nil, fmt.Errorf("unbalanced %q", s)
	}
	return append(parts, list[j:]), nil
}
