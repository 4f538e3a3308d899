package abi

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/goccy/go-json"
	"github.com/holiman/uint256"
	"github.com/indexsupply/ethabi/abi/abit"
)

// A value that conforms to an [abit.Type].
// Construct with the functions in this file
// or receive one from [Decode].
type Token struct {
	kind abit.Kind

	b bool
	n uint256.Int // uint and int (two's complement)
	d []byte      // address, fixed bytes, bytes, and string
	l []Token     // fixed array, list, and tuple
}

func (t Token) Kind() abit.Kind { return t.kind }

// Returns the number of elements for arrays and tuples
// or the number of bytes for byte and string tokens.
func (t Token) Len() int {
	switch t.kind {
	case abit.KArrayK, abit.KList, abit.KTuple:
		return len(t.l)
	default:
		return len(t.d)
	}
}

// Returns the i'th element of an array or tuple.
// Returns the zero Token when i is out of range.
func (t Token) At(i int) Token {
	if i < 0 || len(t.l) <= i {
		return Token{}
	}
	return t.l[i]
}

func (t Token) Items() []Token {
	return t.l
}

func (t Token) Equal(other Token) bool {
	if t.kind != other.kind {
		return false
	}
	switch t.kind {
	case abit.KBool:
		return t.b == other.b
	case abit.KUint, abit.KInt:
		return t.n.Eq(&other.n)
	case abit.KArrayK, abit.KList, abit.KTuple:
		if len(t.l) != len(other.l) {
			return false
		}
		for i := range t.l {
			if !t.l[i].Equal(other.l[i]) {
				return false
			}
		}
		return true
	default:
		return bytes.Equal(t.d, other.d)
	}
}

func (t Token) GoString() string {
	switch t.kind {
	case abit.KBool:
		return fmt.Sprintf("Bool(%t)", t.b)
	case abit.KUint:
		return fmt.Sprintf("Uint(%s)", t.n.Dec())
	case abit.KInt:
		return fmt.Sprintf("Int(%s)", t.BigInt())
	case abit.KString:
		return fmt.Sprintf("String(%q)", t.d)
	case abit.KArrayK, abit.KList, abit.KTuple:
		return fmt.Sprintf("%s%#v", t.kind, t.l)
	default:
		return fmt.Sprintf("%s(%x)", t.kind, t.d)
	}
}

// Numbers are written as decimal strings so that 256 bit
// values survive JavaScript. Bytes and addresses are 0x hex.
func (t Token) MarshalJSON() ([]byte, error) {
	switch t.kind {
	case abit.KBool:
		return json.Marshal(t.b)
	case abit.KUint, abit.KInt:
		return json.Marshal(t.BigInt().String())
	case abit.KString:
		return json.Marshal(string(t.d))
	case abit.KArrayK, abit.KList, abit.KTuple:
		if t.l == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(t.l)
	case 0:
		return []byte("null"), nil
	default:
		return json.Marshal(fmt.Sprintf("0x%x", t.d))
	}
}

func Bool(b bool) Token {
	return Token{kind: abit.KBool, b: b}
}

func (t Token) Bool() bool {
	return t.b
}

func Address(a [20]byte) Token {
	return Token{kind: abit.KAddress, d: a[:]}
}

func (t Token) Address() [20]byte {
	if len(t.d) != 20 {
		return [20]byte{}
	}
	return [20]byte(t.d)
}

func Uint(i uint256.Int) Token {
	return Token{kind: abit.KUint, n: i}
}

func Uint64(i uint64) Token {
	t := Token{kind: abit.KUint}
	t.n.SetUint64(i)
	return t
}

// Returns an error when i is negative or
// doesn't fit into 256 bits.
func BigUint(i *big.Int) (Token, error) {
	if i.Sign() < 0 {
		return Token{}, fmt.Errorf("%w: negative uint %s", ErrInvalidData, i)
	}
	n, overflow := uint256.FromBig(i)
	if overflow {
		return Token{}, fmt.Errorf("%w: uint overflows 256 bits", ErrInvalidData)
	}
	return Uint(*n), nil
}

// i is the two's complement representation
// of a signed 256 bit integer
func Int(i uint256.Int) Token {
	return Token{kind: abit.KInt, n: i}
}

func Int64(i int64) Token {
	t := Token{kind: abit.KInt}
	switch {
	case i < 0:
		t.n.SetUint64(uint64(-i))
		t.n.Neg(&t.n)
	default:
		t.n.SetUint64(uint64(i))
	}
	return t
}

var (
	maxInt256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 255), big.NewInt(1))
	minInt256 = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 255))
)

// Returns an error when i is outside of the int256 range
func BigInt(i *big.Int) (Token, error) {
	if i.Cmp(maxInt256) > 0 || i.Cmp(minInt256) < 0 {
		return Token{}, fmt.Errorf("%w: int overflows 256 bits", ErrInvalidData)
	}
	abs := new(big.Int).Abs(i)
	n, _ := uint256.FromBig(abs)
	if i.Sign() < 0 {
		n.Neg(n)
	}
	return Int(*n), nil
}

// Raw 256 bit word for uint and int tokens
func (t Token) Uint256() uint256.Int {
	return t.n
}

// Low 64 bits of a uint or int token
func (t Token) Uint64() uint64 {
	return t.n.Uint64()
}

// Returns the value of a uint or int token.
// Int tokens are interpreted as two's complement.
func (t Token) BigInt() *big.Int {
	if t.kind == abit.KInt && t.n.Sign() < 0 {
		var abs uint256.Int
		abs.Neg(&t.n)
		b := abs.ToBig()
		return b.Neg(b)
	}
	return t.n.ToBig()
}

// Panics unless 1 <= len(d) <= 32
func FixedBytes(d []byte) Token {
	if len(d) < 1 || len(d) > 32 {
		panic(fmt.Sprintf("abi: fixed bytes width %d", len(d)))
	}
	return Token{kind: abit.KFixedBytes, d: bytes.Clone(d)}
}

func Bytes32(d [32]byte) Token {
	return Token{kind: abit.KFixedBytes, d: d[:]}
}

func Bytes(d []byte) Token {
	if d == nil {
		d = []byte{}
	}
	return Token{kind: abit.KBytes, d: bytes.Clone(d)}
}

// Bytes of fixed bytes, bytes, string and address tokens
func (t Token) Bytes() []byte {
	return t.d
}

func String(s string) Token {
	return Token{kind: abit.KString, d: []byte(s)}
}

func (t Token) Text() string {
	return string(t.d)
}

func ArrayK(items ...Token) Token {
	return Token{kind: abit.KArrayK, l: items}
}

func Array(items ...Token) Token {
	return Token{kind: abit.KList, l: items}
}

func Tuple(items ...Token) Token {
	return Token{kind: abit.KTuple, l: items}
}
