package abi

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"
	"testing"

	"github.com/holiman/uint256"
	"github.com/indexsupply/ethabi/abi/abit"
	"github.com/indexsupply/ethabi/tc"
)

// hex decodes and concatenates each word
func words(t testing.TB, ws ...string) []byte {
	t.Helper()
	b, err := hex.DecodeString(strings.Join(ws, ""))
	tc.NoErr(t, err)
	return b
}

func debug(t *testing.T, b []byte) []byte {
	t.Helper()
	out := fmt.Sprintf("len: %d\n", len(b))
	for i := 0; i < len(b); i += 32 {
		out += fmt.Sprintf("%x\n", b[i:min(i+32, len(b))])
	}
	t.Logf("debug:\n%s\n", out)
	return b
}

func TestSolidityVectors(t *testing.T) {
	cases := []struct {
		desc  string
		input []Token
		want  string
	}{
		{
			desc: "https://docs.soliditylang.org/en/latest/abi-spec.html#examples",
			input: []Token{
				String("dave"),
				Bool(true),
				Array(Uint64(1), Uint64(2), Uint64(3)),
			},
			want: `0000000000000000000000000000000000000000000000000000000000000060000000000000000000000000000000000000000000000000000000000000000100000000000000000000000000000000000000000000000000000000000000a0000000000000000000000000000000000000000000000000000000000000000464617665000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000003000000000000000000000000000000000000000000000000000000000000000100000000000000000000000000000000000000000000000000000000000000020000000000000000000000000000000000000000000000000000000000000003`,
		},
		{
			desc: "https://docs.soliditylang.org/en/latest/abi-spec.html#use-of-dynamic-types",
			input: []Token{
				Array(Array(Uint64(1), Uint64(2)), Array(Uint64(3))),
				Array(String("one"), String("two"), String("three")),
			},
			want: `000000000000000000000000000000000000000000000000000000000000004000000000000000000000000000000000000000000000000000000000000001400000000000000000000000000000000000000000000000000000000000000002000000000000000000000000000000000000000000000000000000000000004000000000000000000000000000000000000000000000000000000000000000a0000000000000000000000000000000000000000000000000000000000000000200000000000000000000000000000000000000000000000000000000000000010000000000000000000000000000000000000000000000000000000000000002000000000000000000000000000000000000000000000000000000000000000100000000000000000000000000000000000000000000000000000000000000030000000000000000000000000000000000000000000000000000000000000003000000000000000000000000000000000000000000000000000000000000006000000000000000000000000000000000000000000000000000000000000000a000000000000000000000000000000000000000000000000000000000000000e000000000000000000000000000000000000000000000000000000000000000036f6e650000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000374776f000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000057468726565000000000000000000000000000000000000000000000000000000`,
		},
	}
	for _, c := range cases {
		want, err := hex.DecodeString(c.want)
		tc.NoErr(t, err)
		got := Encode(c.input...)
		if !bytes.Equal(want, got) {
			t.Errorf("%s\nwant: %x\ngot:  %x", c.desc, want, got)
		}
	}
}

func TestEncode(t *testing.T) {
	var addr [20]byte
	addr[19] = 0xaa
	cases := []struct {
		desc  string
		input []Token
		want  []byte
	}{
		{
			desc:  "empty",
			input: nil,
			want:  []byte{},
		},
		{
			desc:  "bool and address",
			input: []Token{Bool(false), Bool(true), Address(addr)},
			want: words(t,
				"0000000000000000000000000000000000000000000000000000000000000000",
				"0000000000000000000000000000000000000000000000000000000000000001",
				"00000000000000000000000000000000000000000000000000000000000000aa",
			),
		},
		{
			desc:  "negative ints are sign extended",
			input: []Token{Int64(-1), Int64(-128)},
			want: words(t,
				"ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff",
				"ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff80",
			),
		},
		{
			desc:  "fixed bytes are left aligned",
			input: []Token{FixedBytes([]byte{0x01, 0x02, 0x03})},
			want: words(t,
				"0102030000000000000000000000000000000000000000000000000000000000",
			),
		},
		{
			desc:  "empty bytes",
			input: []Token{Bytes(nil)},
			want: words(t,
				"0000000000000000000000000000000000000000000000000000000000000020",
				"0000000000000000000000000000000000000000000000000000000000000000",
			),
		},
		{
			desc:  "bytes of exactly one word",
			input: []Token{Bytes(bytes.Repeat([]byte{0xab}, 32))},
			want: words(t,
				"0000000000000000000000000000000000000000000000000000000000000020",
				"0000000000000000000000000000000000000000000000000000000000000020",
				"abababababababababababababababababababababababababababababababab",
			),
		},
		{
			desc:  "static fixed array inline",
			input: []Token{ArrayK(Uint64(1), Uint64(2)), Bool(true)},
			want: words(t,
				"0000000000000000000000000000000000000000000000000000000000000001",
				"0000000000000000000000000000000000000000000000000000000000000002",
				"0000000000000000000000000000000000000000000000000000000000000001",
			),
		},
		{
			desc:  "dynamic fixed array",
			input: []Token{ArrayK(String("a"), String("b"))},
			want: words(t,
				"0000000000000000000000000000000000000000000000000000000000000020",
				"0000000000000000000000000000000000000000000000000000000000000040",
				"0000000000000000000000000000000000000000000000000000000000000080",
				"0000000000000000000000000000000000000000000000000000000000000001",
				"6100000000000000000000000000000000000000000000000000000000000000",
				"0000000000000000000000000000000000000000000000000000000000000001",
				"6200000000000000000000000000000000000000000000000000000000000000",
			),
		},
		{
			desc: "nested tuple",
			input: []Token{
				Uint64(7),
				Tuple(String("hi"), ArrayK(Bool(true), Bool(false))),
				Array(FixedBytes([]byte{0x01, 0x02, 0x03})),
			},
			want: words(t,
				"0000000000000000000000000000000000000000000000000000000000000007",
				"0000000000000000000000000000000000000000000000000000000000000060",
				"0000000000000000000000000000000000000000000000000000000000000100",
				"0000000000000000000000000000000000000000000000000000000000000060",
				"0000000000000000000000000000000000000000000000000000000000000001",
				"0000000000000000000000000000000000000000000000000000000000000000",
				"0000000000000000000000000000000000000000000000000000000000000002",
				"6869000000000000000000000000000000000000000000000000000000000000",
				"0000000000000000000000000000000000000000000000000000000000000001",
				"0102030000000000000000000000000000000000000000000000000000000000",
			),
		},
	}
	for _, c := range cases {
		got := Encode(c.input...)
		if !bytes.Equal(c.want, got) {
			t.Errorf("%s\nwant: %x\ngot:  %x", c.desc, c.want, debug(t, got))
		}
	}
}

func TestEncodeStaticSize(t *testing.T) {
	types := []abit.Type{abit.Uint256, abit.Tuple(abit.Bool, abit.Address), abit.ArrayK(2, abit.Bytes32)}
	var (
		ones = new(uint256.Int).Not(new(uint256.Int))
		full [32]byte
	)
	for i := range full {
		full[i] = 0xff
	}
	a := []Token{Uint64(0), Tuple(Bool(false), Address([20]byte{})), ArrayK(Bytes32([32]byte{}), Bytes32([32]byte{}))}
	b := []Token{Uint(*ones), Tuple(Bool(true), Address([20]byte(full[:20]))), ArrayK(Bytes32(full), Bytes32(full))}
	tc.NoErr(t, Check(types, a))
	tc.NoErr(t, Check(types, b))
	if la, lb := len(Encode(a...)), len(Encode(b...)); la != lb || la != 32*5 {
		t.Errorf("want equal static sizes of 160. got: %d %d", la, lb)
	}
}
