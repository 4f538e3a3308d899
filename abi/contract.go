package abi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

var ErrNotFound = errors.New("function not found")

// The function entries of an interface description.
// Events and other entries are skipped.
type Contract struct {
	Functions []Function
}

// js must be a json encoded interface description:
//
//	[{"type": "function", "name": "f", "inputs": [...], "outputs": [...]}]
//
// Entries without a type are treated as functions.
func ParseABI(js []byte) (Contract, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal(js, &entries); err != nil {
		return Contract{}, fmt.Errorf("parsing abi json: %w", err)
	}
	var c Contract
	for i := range entries {
		var header struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(entries[i], &header); err != nil {
			return Contract{}, fmt.Errorf("parsing abi entry %d: %w", i, err)
		}
		switch header.Type {
		case "", "function":
		default:
			continue
		}
		var f Function
		if err := json.Unmarshal(entries[i], &f); err != nil {
			return Contract{}, fmt.Errorf("parsing abi entry %d: %w", i, err)
		}
		c.Functions = append(c.Functions, f)
	}
	return c, nil
}

// Returns the first function named name
func (c Contract) Function(name string) (Function, bool) {
	for i := range c.Functions {
		if c.Functions[i].Name == name {
			return c.Functions[i], true
		}
	}
	return Function{}, false
}

func (c Contract) Overloads(name string) []Function {
	var res []Function
	for i := range c.Functions {
		if c.Functions[i].Name == name {
			res = append(res, c.Functions[i])
		}
	}
	return res
}

func (c Contract) BySelector(sel [4]byte) (Function, bool) {
	for i := range c.Functions {
		if c.Functions[i].Selector() == sel {
			return c.Functions[i], true
		}
	}
	return Function{}, false
}

// s is either a name or a canonical signature. A name must
// not be overloaded. The signature is matched after parsing
// so that aliases like uint are accepted.
func (c Contract) Find(s string) (Function, error) {
	if !strings.Contains(s, "(") {
		fns := c.Overloads(s)
		switch len(fns) {
		case 0:
			return Function{}, fmt.Errorf("%w: %s", ErrNotFound, s)
		case 1:
			return fns[0], nil
		default:
			return Function{}, fmt.Errorf("%s is overloaded %d times. use the signature", s, len(fns))
		}
	}
	f, err := ParseSignature(s)
	if err != nil {
		return Function{}, err
	}
	sig := f.Signature()
	for i := range c.Functions {
		if c.Functions[i].Signature() == sig {
			return c.Functions[i], nil
		}
	}
	return Function{}, fmt.Errorf("%w: %s", ErrNotFound, sig)
}
