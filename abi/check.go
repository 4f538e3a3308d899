package abi

import (
	"fmt"
	"strconv"

	"github.com/indexsupply/ethabi/abi/abit"
)

// Reports whether tok structurally matches t: the kind,
// tuple arity and fixed array length must agree, and a
// FixedBytes token must hold exactly t.Size bytes so that
// it decodes back to the same token. Numeric values are
// not checked against the declared bit size.
func Conforms(tok Token, t abit.Type) bool {
	return conform(tok, t, "") == nil
}

// Checks that tokens match types positionally and recursively.
// Returns an error wrapping [ErrInvalidData] that describes
// the first mismatch.
func Check(types []abit.Type, tokens []Token) error {
	if len(types) != len(tokens) {
		return fmt.Errorf("%w: want %d tokens got %d", ErrInvalidData, len(types), len(tokens))
	}
	for i := range types {
		if err := conform(tokens[i], types[i], strconv.Itoa(i)); err != nil {
			return err
		}
	}
	return nil
}

func conform(tok Token, t abit.Type, path string) error {
	mismatch := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s: %s", ErrInvalidData, path, fmt.Sprintf(format, args...))
	}
	if tok.kind != t.Kind {
		return mismatch("want %s got %s", t.Name(), tok.kind)
	}
	switch t.Kind {
	case abit.KAddress:
		if len(tok.d) != 20 {
			return mismatch("address has %d bytes", len(tok.d))
		}
	case abit.KFixedBytes:
		if len(tok.d) != t.Size {
			return mismatch("want %d bytes got %d", t.Size, len(tok.d))
		}
	case abit.KArrayK:
		if len(tok.l) != t.Size {
			return mismatch("want %d elements got %d", t.Size, len(tok.l))
		}
		fallthrough
	case abit.KList:
		for i := range tok.l {
			if err := conform(tok.l[i], *t.Elem, path+"."+strconv.Itoa(i)); err != nil {
				return err
			}
		}
	case abit.KTuple:
		if len(tok.l) != len(t.Fields) {
			return mismatch("want %d fields got %d", len(t.Fields), len(tok.l))
		}
		for i := range t.Fields {
			if err := conform(tok.l[i], t.Fields[i], path+"."+strconv.Itoa(i)); err != nil {
				return err
			}
		}
	}
	return nil
}
