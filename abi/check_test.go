package abi

import (
	"strings"
	"testing"

	"github.com/indexsupply/ethabi/abi/abit"
	"github.com/indexsupply/ethabi/tc"
)

func TestConforms(t *testing.T) {
	cases := []struct {
		tok  Token
		typ  string
		want bool
	}{
		{Bool(true), "bool", true},
		{Uint64(1), "uint8", true},
		{Uint64(1), "int8", false},
		{Int64(-1), "int256", true},
		{Address([20]byte{}), "address", true},
		{Token{kind: abit.KAddress, d: []byte{1}}, "address", false},
		{FixedBytes([]byte{1, 2}), "bytes2", true},
		{FixedBytes([]byte{1, 2}), "bytes3", false},
		{Bytes(nil), "bytes", true},
		{String(""), "bytes", false},
		{Array(), "uint8[]", true},
		{Array(Bool(true)), "uint8[]", false},
		{ArrayK(Bool(true)), "bool[2]", false},
		{ArrayK(Bool(true), Bool(true)), "bool[2]", true},
		{Array(ArrayK(Bool(true), Bool(true))), "bool[2][]", true},
		{Tuple(), "()", true},
		{Tuple(Bool(true)), "(bool,bool)", false},
		{Tuple(Bool(true), Array(String("a"))), "(bool,string[])", true},
		{Tuple(Bool(true), Array(String("a"))), "(bool,bytes[])", false},
	}
	for _, c := range cases {
		if got := Conforms(c.tok, abit.MustParse(c.typ)); got != c.want {
			t.Errorf("%#v %s want %t", c.tok, c.typ, c.want)
		}
	}
}

func TestCheckPath(t *testing.T) {
	types := []abit.Type{abit.Uint256, abit.MustParse("(bool,string[])")}
	tokens := []Token{Uint64(1), Tuple(Bool(true), Array(String("a"), Uint64(2)))}
	err := Check(types, tokens)
	tc.WantErr(t, err, ErrInvalidData)
	if err == nil || !strings.Contains(err.Error(), "1.1.1") {
		t.Errorf("want path 1.1.1 in error. got: %v", err)
	}
}
