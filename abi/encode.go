package abi

import (
	"github.com/indexsupply/ethabi/abi/abit"
	"github.com/indexsupply/ethabi/bint"
)

// sizes computed ahead of emission so that
// offsets are known before any tail is written
type layout struct {
	static bool
	size   int // bytes in the token's own encoding
	items  []layout
}

func (l layout) head() int {
	if l.static {
		return l.size
	}
	return 32
}

func plan(t Token) layout {
	switch t.kind {
	case abit.KBytes, abit.KString:
		return layout{size: 32 + padded(len(t.d))}
	case abit.KList:
		items, n, _ := planSeq(t.l)
		return layout{size: 32 + n, items: items}
	case abit.KArrayK, abit.KTuple:
		items, n, static := planSeq(t.l)
		return layout{static: static, size: n, items: items}
	default:
		return layout{static: true, size: 32}
	}
}

// Returns the layout of each token, the total size of
// the head/tail region, and whether every token is static.
func planSeq(tokens []Token) ([]layout, int, bool) {
	var (
		items  = make([]layout, len(tokens))
		n      int
		static = true
	)
	for i := range tokens {
		items[i] = plan(tokens[i])
		n += items[i].head()
		if !items[i].static {
			n += items[i].size
			static = false
		}
	}
	return items, n, static
}

// ABI encoding. Not packed.
//
// Tokens are expected to conform to their declared
// types. See [Check]. The result is a multiple of 32
// bytes and contains no selector.
func Encode(tokens ...Token) []byte {
	items, n, _ := planSeq(tokens)
	b := make([]byte, n)
	emitSeq(b, tokens, items)
	return b
}

// b is zeroed and holds at least l.size bytes
func emit(b []byte, t Token, l layout) {
	switch t.kind {
	case abit.KBool:
		if t.b {
			b[31] = 1
		}
	case abit.KAddress:
		copy(b[12:32], t.d)
	case abit.KUint, abit.KInt:
		w := t.n.Bytes32()
		copy(b[:32], w[:])
	case abit.KFixedBytes:
		copy(b[:32], t.d)
	case abit.KBytes, abit.KString:
		bint.Encode(b[:32], uint64(len(t.d)))
		copy(b[32:], t.d)
	case abit.KList:
		bint.Encode(b[:32], uint64(len(t.l)))
		emitSeq(b[32:], t.l, l.items)
	case abit.KArrayK, abit.KTuple:
		emitSeq(b, t.l, l.items)
	default:
		panic("abi: encode: unknown token kind")
	}
}

func emitSeq(b []byte, tokens []Token, items []layout) {
	var hlen int
	for i := range items {
		hlen += items[i].head()
	}
	var pos, tail = 0, hlen
	for i := range tokens {
		if items[i].static {
			emit(b[pos:], tokens[i], items[i])
			pos += items[i].size
			continue
		}
		bint.Encode(b[pos:pos+32], uint64(tail))
		emit(b[tail:], tokens[i], items[i])
		pos += 32
		tail += items[i].size
	}
}
