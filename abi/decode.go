package abi

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/indexsupply/ethabi/abi/abit"
	"github.com/indexsupply/ethabi/bint"
)

var zeros [32]byte

// Decodes ABI encoded bytes into tokens according to types.
// For example:
//
//	Decode([]abit.Type{abit.Uint256, abit.String}, b)
//
// Every offset and length read from input is bounds checked.
// Errors wrap [ErrMalformed] and no tokens are returned
// when decoding fails. Bytes following the last referenced
// region are ignored.
func Decode(types []abit.Type, input []byte) ([]Token, error) {
	for i := range types {
		if err := types[i].Validate(); err != nil {
			return nil, err
		}
	}
	d := decoder{budget: len(input) / 32}
	tokens, err := d.seq(input, len(types), func(i int) abit.Type { return types[i] }, 0)
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))
}

// A canonical encoding spends at most one word of input per
// word of output. budget tracks what remains so that offsets
// pointing at shared regions can't amplify the output.
type decoder struct {
	budget int
}

func (d *decoder) spend(words int) error {
	if words > d.budget {
		return malformed("encoding references overlapping regions")
	}
	d.budget -= words
	return nil
}

// decodes n items whose heads start at input[0]. Offsets
// are relative to input[0].
func (d *decoder) seq(input []byte, n int, typ func(int) abit.Type, depth int) ([]Token, error) {
	if depth > abit.MaxDepth {
		return nil, malformed("nesting exceeds %d", abit.MaxDepth)
	}
	var (
		tokens = make([]Token, n)
		pos    int
		err    error
	)
	for i := 0; i < n; i++ {
		t := typ(i)
		if t.Static() {
			size := t.Words() * 32
			if len(input)-pos < size {
				return nil, malformed("EOF reading %s at %d", t.Name(), pos)
			}
			tokens[i], err = d.static(input[pos:pos+size], t, depth)
			if err != nil {
				return nil, err
			}
			pos += size
			continue
		}
		if len(input)-pos < 32 {
			return nil, malformed("EOF reading offset at %d", pos)
		}
		offset, ok := bint.Bounded(input[pos:pos+32], len(input))
		if !ok {
			return nil, malformed("offset for %s out of range at %d", t.Name(), pos)
		}
		tokens[i], err = d.dynamic(input[offset:], t, depth)
		if err != nil {
			return nil, err
		}
		pos += 32
	}
	return tokens, nil
}

// input is exactly t.Words() words long
func (d *decoder) static(input []byte, t abit.Type, depth int) (Token, error) {
	switch t.Kind {
	case abit.KArrayK:
		l, err := d.seq(input, t.Size, func(int) abit.Type { return *t.Elem }, depth+1)
		if err != nil {
			return Token{}, err
		}
		return ArrayK(l...), nil
	case abit.KTuple:
		l, err := d.seq(input, len(t.Fields), func(i int) abit.Type { return t.Fields[i] }, depth+1)
		if err != nil {
			return Token{}, err
		}
		return Tuple(l...), nil
	}
	if err := d.spend(1); err != nil {
		return Token{}, err
	}
	switch t.Kind {
	case abit.KBool:
		if !bytes.Equal(input[:31], zeros[:31]) || input[31] > 1 {
			return Token{}, malformed("invalid bool %x", input)
		}
		return Bool(input[31] == 1), nil
	case abit.KAddress:
		if !bytes.Equal(input[:12], zeros[:12]) {
			return Token{}, malformed("invalid address padding %x", input)
		}
		return Token{kind: abit.KAddress, d: bytes.Clone(input[12:32])}, nil
	case abit.KUint, abit.KInt:
		tok := Token{kind: t.Kind}
		tok.n.SetBytes32(input[:32])
		return tok, nil
	case abit.KFixedBytes:
		if t.Size < 1 || t.Size > 32 {
			return Token{}, fmt.Errorf("%w: bytes width %d", ErrUnsupported, t.Size)
		}
		if !bytes.Equal(input[t.Size:32], zeros[t.Size:]) {
			return Token{}, malformed("invalid bytes%d padding %x", t.Size, input)
		}
		return Token{kind: abit.KFixedBytes, d: bytes.Clone(input[:t.Size])}, nil
	default:
		return Token{}, fmt.Errorf("%w: %s", ErrUnsupported, t.Kind)
	}
}

// input starts at the token's region and runs
// to the end of the enclosing buffer
func (d *decoder) dynamic(input []byte, t abit.Type, depth int) (Token, error) {
	switch t.Kind {
	case abit.KBytes, abit.KString:
		if len(input) < 32 {
			return Token{}, malformed("EOF reading %s length", t.Kind)
		}
		length, ok := bint.Bounded(input[:32], len(input)-32)
		if !ok || padded(length) > len(input)-32 {
			return Token{}, malformed("%s length exceeds input", t.Kind)
		}
		if err := d.spend(1 + padded(length)/32); err != nil {
			return Token{}, err
		}
		data := input[32 : 32+length]
		pad := input[32+length : 32+padded(length)]
		if !bytes.Equal(pad, zeros[:len(pad)]) {
			return Token{}, malformed("invalid %s padding", t.Kind)
		}
		if t.Kind == abit.KString {
			if !utf8.Valid(data) {
				return Token{}, malformed("string is not valid utf-8")
			}
			return String(string(data)), nil
		}
		return Token{kind: abit.KBytes, d: bytes.Clone(data)}, nil
	case abit.KList:
		if len(input) < 32 {
			return Token{}, malformed("EOF reading array length")
		}
		count, ok := bint.Bounded(input[:32], (len(input)-32)/(32*t.Elem.Words()))
		if !ok {
			return Token{}, malformed("array length exceeds input")
		}
		if err := d.spend(1); err != nil {
			return Token{}, err
		}
		l, err := d.seq(input[32:], count, func(int) abit.Type { return *t.Elem }, depth+1)
		if err != nil {
			return Token{}, err
		}
		return Array(l...), nil
	case abit.KArrayK:
		// elements are dynamic so each needs an offset word
		if t.Size > len(input)/32 {
			return Token{}, malformed("EOF reading %s", t.Name())
		}
		l, err := d.seq(input, t.Size, func(int) abit.Type { return *t.Elem }, depth+1)
		if err != nil {
			return Token{}, err
		}
		return ArrayK(l...), nil
	case abit.KTuple:
		l, err := d.seq(input, len(t.Fields), func(i int) abit.Type { return t.Fields[i] }, depth+1)
		if err != nil {
			return Token{}, err
		}
		return Tuple(l...), nil
	default:
		return Token{}, fmt.Errorf("%w: %s", ErrUnsupported, t.Kind)
	}
}
