// Types for ABI encoding / decoding
package abit

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Returned when a type violates a structural
// invariant such as a fixed bytes width outside of 1..32
var ErrUnsupported = errors.New("unsupported type")

// Maximum nesting of arrays and tuples.
// Applies to parsing as well as decoding untrusted input.
const MaxDepth = 32

type Kind byte

const (
	KBool Kind = iota + 1
	KAddress
	KUint
	KInt
	KFixedBytes
	KBytes
	KString
	KArrayK // fixed size array
	KList   // dynamic size array
	KTuple
)

func (k Kind) String() string {
	switch k {
	case KBool:
		return "bool"
	case KAddress:
		return "address"
	case KUint:
		return "uint"
	case KInt:
		return "int"
	case KFixedBytes:
		return "fixed-bytes"
	case KBytes:
		return "bytes"
	case KString:
		return "string"
	case KArrayK:
		return "fixed-array"
	case KList:
		return "array"
	case KTuple:
		return "tuple"
	default:
		return fmt.Sprintf("unknown-kind=%d", byte(k))
	}
}

type Type struct {
	Kind Kind
	// Bits for Uint and Int, width for FixedBytes
	// and length for ArrayK
	Size int

	Elem   *Type  // ArrayK and List
	Fields []Type // Tuple
}

var (
	Bool    = Type{Kind: KBool}
	Address = Type{Kind: KAddress}
	Bytes   = Type{Kind: KBytes}
	String  = Type{Kind: KString}
	Bytes32 = FixedBytes(32)
	Uint8   = Uint(8)
	Uint32  = Uint(32)
	Uint64  = Uint(64)
	Uint256 = Uint(256)
	Int256  = Int(256)
)

func validBits(bits int) bool {
	return bits >= 8 && bits <= 256 && bits%8 == 0
}

func Uint(bits int) Type {
	if !validBits(bits) {
		panic(fmt.Sprintf("abit: invalid uint bits: %d", bits))
	}
	return Type{Kind: KUint, Size: bits}
}

func Int(bits int) Type {
	if !validBits(bits) {
		panic(fmt.Sprintf("abit: invalid int bits: %d", bits))
	}
	return Type{Kind: KInt, Size: bits}
}

func FixedBytes(n int) Type {
	if n < 1 || n > 32 {
		panic(fmt.Sprintf("abit: invalid fixed bytes width: %d", n))
	}
	return Type{Kind: KFixedBytes, Size: n}
}

func ArrayK(n int, et Type) Type {
	if n < 1 {
		panic(fmt.Sprintf("abit: invalid array length: %d", n))
	}
	return Type{Kind: KArrayK, Size: n, Elem: &et}
}

func List(et Type) Type {
	return Type{Kind: KList, Elem: &et}
}

func Tuple(fields ...Type) Type {
	return Type{Kind: KTuple, Fields: fields}
}

// Static types have a fixed encoded size that
// is known without inspecting the value.
func (t Type) Static() bool {
	switch t.Kind {
	case KBytes, KString, KList:
		return false
	case KArrayK:
		return t.Elem.Static()
	case KTuple:
		for i := range t.Fields {
			if !t.Fields[i].Static() {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// Words saturates at this value. Nothing
// that large can be decoded anyway.
const maxWords = math.MaxInt32

// Number of 32 byte words the type occupies in the head
// of its enclosing encoding. Dynamic types use a single
// word for their offset.
func (t Type) Words() int {
	if !t.Static() {
		return 1
	}
	switch t.Kind {
	case KArrayK:
		w := t.Elem.Words()
		if w > 0 && t.Size > maxWords/w {
			return maxWords
		}
		return t.Size * w
	case KTuple:
		var n int
		for i := range t.Fields {
			n += t.Fields[i].Words()
			if n > maxWords {
				return maxWords
			}
		}
		return n
	default:
		return 1
	}
}

// Returns the canonical name of the type including it's Elem and Fields.
// For example:
//
//	tuple(uint8, address[]) becomes (uint8,address[])
//	(uint8,address)[3] stays (uint8,address)[3]
func (t Type) Name() string {
	var s strings.Builder
	t.name(&s)
	return s.String()
}

func (t Type) name(s *strings.Builder) {
	switch t.Kind {
	case KBool, KAddress, KBytes, KString:
		s.WriteString(t.Kind.String())
	case KUint, KInt:
		fmt.Fprintf(s, "%s%d", t.Kind, t.Size)
	case KFixedBytes:
		fmt.Fprintf(s, "bytes%d", t.Size)
	case KArrayK:
		t.Elem.name(s)
		fmt.Fprintf(s, "[%d]", t.Size)
	case KList:
		t.Elem.name(s)
		s.WriteString("[]")
	case KTuple:
		s.WriteString("(")
		for i := range t.Fields {
			t.Fields[i].name(s)
			if i+1 < len(t.Fields) {
				s.WriteString(",")
			}
		}
		s.WriteString(")")
	default:
		s.WriteString(t.Kind.String())
	}
}

func (t Type) String() string { return t.Name() }

// Checks the structural invariants of t and its children.
// Arrays of zero sized elements such as ()[] are rejected.
// Useful for types that were assembled by hand rather than
// through the constructors or [Parse].
func (t Type) Validate() error {
	return t.validate(0)
}

func (t Type) validate(depth int) error {
	if depth > MaxDepth {
		return fmt.Errorf("%w: nesting exceeds %d", ErrUnsupported, MaxDepth)
	}
	switch t.Kind {
	case KBool, KAddress, KBytes, KString:
		return nil
	case KUint, KInt:
		if !validBits(t.Size) {
			return fmt.Errorf("%w: %s bits %d", ErrUnsupported, t.Kind, t.Size)
		}
		return nil
	case KFixedBytes:
		if t.Size < 1 || t.Size > 32 {
			return fmt.Errorf("%w: bytes width %d", ErrUnsupported, t.Size)
		}
		return nil
	case KArrayK, KList:
		if t.Elem == nil {
			return fmt.Errorf("%w: array missing element type", ErrUnsupported)
		}
		if t.Kind == KArrayK && t.Size < 1 {
			return fmt.Errorf("%w: array length %d", ErrUnsupported, t.Size)
		}
		if err := t.Elem.validate(depth + 1); err != nil {
			return err
		}
		// a zero word element would let an array
		// decode any number of items from no input
		if t.Elem.Static() && t.Elem.Words() == 0 {
			return fmt.Errorf("%w: array of empty %s", ErrUnsupported, t.Elem.Name())
		}
		return nil
	case KTuple:
		for i := range t.Fields {
			if err := t.Fields[i].validate(depth + 1); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnsupported, t.Kind)
	}
}
