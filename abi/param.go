package abi

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/indexsupply/ethabi/abi/abit"
)

// A named function input or output.
//
// Type is the authoritative shape. Components only
// carry the names of tuple members and are positionally
// aligned with the fields of Type's (innermost) tuple.
type Param struct {
	Name       string
	Type       abit.Type
	Components []Param
}

// Folds components into t: when t is a tuple, or an array
// of tuples, and components is non-empty the tuple's fields
// are replaced with the component types.
//
//	NewParam("foo", abit.Tuple(), bar, baz)
//
// yields the type (bool,bytes) when bar is a bool and
// baz is bytes.
func NewParam(name string, t abit.Type, components ...Param) (Param, error) {
	p := Param{
		Name:       name,
		Type:       fold(t, components),
		Components: components,
	}
	if err := p.Type.Validate(); err != nil {
		return Param{}, fmt.Errorf("param %q: %w", name, err)
	}
	return p, nil
}

func fold(t abit.Type, components []Param) abit.Type {
	if len(components) == 0 {
		return t
	}
	switch t.Kind {
	case abit.KTuple:
		fields := make([]abit.Type, len(components))
		for i := range components {
			fields[i] = components[i].Type
		}
		return abit.Tuple(fields...)
	case abit.KList:
		return abit.List(fold(*t.Elem, components))
	case abit.KArrayK:
		return abit.Type{Kind: abit.KArrayK, Size: t.Size, Elem: ptr(fold(*t.Elem, components))}
	default:
		return t
	}
}

func ptr(t abit.Type) *abit.Type { return &t }

type paramJSON struct {
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	Components []Param `json:"components"`
}

// Decodes a param from an interface description:
//
//	{"name": "foo", "type": "tuple[]", "components": [{"name": "bar", "type": "uint256"}]}
func (p *Param) UnmarshalJSON(data []byte) error {
	var pj paramJSON
	if err := json.Unmarshal(data, &pj); err != nil {
		return err
	}
	t, err := abit.Parse(pj.Type)
	if err != nil {
		return fmt.Errorf("param %q: %w", pj.Name, err)
	}
	np, err := NewParam(pj.Name, t, pj.Components...)
	if err != nil {
		return err
	}
	*p = np
	return nil
}

func types(params []Param) []abit.Type {
	res := make([]abit.Type, len(params))
	for i := range params {
		res[i] = params[i].Type
	}
	return res
}
