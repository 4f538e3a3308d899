package abit

import (
	"errors"
	"strings"
	"testing"

	"kr.dev/diff"
)

func TestParse(t *testing.T) {
	cases := []struct {
		desc  string
		input string
		want  Type
	}{
		{
			desc:  "single static",
			input: "(uint8)",
			want:  Tuple(Uint8),
		},
		{
			desc:  "single dynamic",
			input: "(bytes)",
			want:  Tuple(Bytes),
		},
		{
			desc:  "multiple static",
			input: "(uint8,int16)",
			want:  Tuple(Uint8, Int(16)),
		},
		{
			desc:  "mixed",
			input: "(bytes32,bytes)",
			want:  Tuple(Bytes32, Bytes),
		},
		{
			desc:  "fixed size array",
			input: "(bytes32,bytes)[2]",
			want:  ArrayK(2, Tuple(Bytes32, Bytes)),
		},
		{
			desc:  "array",
			input: "(bytes32,bytes)[]",
			want:  List(Tuple(Bytes32, Bytes)),
		},
		{
			desc:  "nested array",
			input: "(bytes32,bytes)[][][]",
			want:  List(List(List(Tuple(Bytes32, Bytes)))),
		},
		{
			desc:  "mixed array suffixes",
			input: "uint8[2][]",
			want:  List(ArrayK(2, Uint8)),
		},
		{
			desc:  "nested tuple",
			input: "(bytes32,(bytes32))",
			want:  Tuple(Bytes32, Tuple(Bytes32)),
		},
		{
			desc:  "nested tuple with array and extra space",
			input: "(bytes32, (bytes32[]))",
			want:  Tuple(Bytes32, Tuple(List(Bytes32))),
		},
		{
			desc:  "complex",
			input: "((address,bytes32,bytes,(uint8,uint8))[][])",
			want: Tuple(
				List(
					List(
						Tuple(
							Address,
							Bytes32,
							Bytes,
							Tuple(Uint8, Uint8),
						),
					),
				),
			),
		},
		{
			desc:  "aliases",
			input: "(uint,int)",
			want:  Tuple(Uint256, Int256),
		},
		{
			desc:  "json tuple",
			input: "tuple[]",
			want:  List(Tuple()),
		},
		{
			desc:  "empty tuple",
			input: "()",
			want:  Tuple(),
		},
		{
			desc:  "small fixed bytes",
			input: "bytes1",
			want:  FixedBytes(1),
		},
	}
	for _, tc := range cases {
		got, err := Parse(tc.input)
		if err != nil {
			t.Errorf("%s: %s", tc.desc, err)
			continue
		}
		diff.Test(t, t.Errorf, got, tc.want)
	}
}

func TestParseName(t *testing.T) {
	cases := []string{
		"bool",
		"address",
		"uint256[3]",
		"int8[]",
		"(bool,bytes)",
		"(address,(uint64,string[])[2])[]",
		"bytes7",
	}
	for _, s := range cases {
		typ, err := Parse(s)
		if err != nil {
			t.Fatal(err)
		}
		diff.Test(t, t.Errorf, typ.Name(), s)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []string{
		"",
		"uint7",
		"uint264",
		"uint08",
		"int0",
		"bytes0",
		"bytes33",
		"float",
		"uint8[0]",
		"uint8[x]",
		"uint8[+2]",
		"uint+8",
		"uint8]",
		"(uint8",
		"(uint8))",
		"(uint8,(bool)",
		strings.Repeat("(", MaxDepth+2) + "bool" + strings.Repeat(")", MaxDepth+2),
		"bool" + strings.Repeat("[]", MaxDepth+2),
	}
	for _, s := range cases {
		_, err := Parse(s)
		if !errors.Is(err, ErrUnsupported) {
			t.Errorf("parse %q want unsupported error got: %v", s, err)
		}
	}
}
