package abi

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/indexsupply/ethabi/abi/abit"
)

type Function struct {
	Name            string  `json:"name"`
	Inputs          []Param `json:"inputs"`
	Outputs         []Param `json:"outputs"`
	Constant        bool    `json:"constant"`
	StateMutability string  `json:"stateMutability"`

	// Used to compute the selector.
	// [DefaultHash] is used when nil.
	Hash Hash256 `json:"-"`
}

// Newer interface descriptions replace "constant"
// with a "stateMutability" of view or pure.
func (f *Function) UnmarshalJSON(data []byte) error {
	type function Function
	var fn function
	if err := json.Unmarshal(data, &fn); err != nil {
		return err
	}
	switch fn.StateMutability {
	case "view", "pure":
		fn.Constant = true
	}
	*f = Function(fn)
	return nil
}

func (f Function) InputTypes() []abit.Type  { return types(f.Inputs) }
func (f Function) OutputTypes() []abit.Type { return types(f.Outputs) }

func (f Function) Signature() string {
	return Signature(f.Name, f.InputTypes())
}

func (f Function) Selector() [4]byte {
	return Selector(f.Hash, f.Name, f.InputTypes())
}

// Returns the call payload: the selector followed by
// the encoded tokens. Tokens that don't conform to the
// input types produce an error wrapping [ErrInvalidData].
func (f Function) EncodeInput(tokens ...Token) ([]byte, error) {
	it := f.InputTypes()
	if err := Check(it, tokens); err != nil {
		return nil, fmt.Errorf("%s input %w", f.Name, err)
	}
	sel := Selector(f.Hash, f.Name, it)
	return append(sel[:], Encode(tokens...)...), nil
}

// Decodes a result payload (no selector) into tokens
// matching the function's outputs.
func (f Function) DecodeOutput(b []byte) ([]Token, error) {
	res, err := Decode(f.OutputTypes(), b)
	if err != nil {
		return nil, fmt.Errorf("%s output %w", f.Name, err)
	}
	return res, nil
}

// Inverse of [Function.EncodeInput]. The selector
// must match the function's selector.
func (f Function) DecodeInput(calldata []byte) ([]Token, error) {
	it := f.InputTypes()
	if len(calldata) < 4 {
		return nil, fmt.Errorf("%s input %w", f.Name, malformed("missing selector"))
	}
	sel := Selector(f.Hash, f.Name, it)
	if !bytes.Equal(sel[:], calldata[:4]) {
		return nil, fmt.Errorf("%s input %w", f.Name, malformed("selector %x want %x", calldata[:4], sel))
	}
	res, err := Decode(it, calldata[4:])
	if err != nil {
		return nil, fmt.Errorf("%s input %w", f.Name, err)
	}
	return res, nil
}

// Encodes a result payload. Useful for
// stubbing contract responses.
func (f Function) EncodeOutput(tokens ...Token) ([]byte, error) {
	if err := Check(f.OutputTypes(), tokens); err != nil {
		return nil, fmt.Errorf("%s output %w", f.Name, err)
	}
	return Encode(tokens...), nil
}
