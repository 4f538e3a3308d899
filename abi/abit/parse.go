package abit

import (
	"fmt"
	"strconv"
	"strings"
)

// Parses the textual form of a type. Accepts the canonical
// names produced by [Type.Name] as well as the type strings
// found in JSON interface descriptions:
//
//	uint256
//	(bytes32,bytes)[2]
//	tuple[]
//
// "tuple" parses to an empty tuple whose fields are
// expected to be filled in from a param's components.
func Parse(s string) (Type, error) {
	return parse(s, 0)
}

func parse(s string, depth int) (Type, error) {
	s = strings.TrimSpace(s)
	if depth > MaxDepth {
		return Type{}, fmt.Errorf("%w: nesting exceeds %d", ErrUnsupported, MaxDepth)
	}
	switch {
	case s == "":
		return Type{}, fmt.Errorf("%w: empty type", ErrUnsupported)
	case strings.HasSuffix(s, "]"):
		i := strings.LastIndexByte(s, '[')
		if i < 0 {
			return Type{}, fmt.Errorf("%w: unbalanced array %q", ErrUnsupported, s)
		}
		elem, err := parse(s[:i], depth+1)
		if err != nil {
			return Type{}, err
		}
		num := s[i+1 : len(s)-1]
		if num == "" {
			return List(elem), nil
		}
		k, err := strconv.Atoi(num)
		if err != nil || k < 1 || num[0] < '1' || num[0] > '9' {
			return Type{}, fmt.Errorf("%w: array length %q", ErrUnsupported, num)
		}
		return ArrayK(k, elem), nil
	case strings.HasPrefix(s, "("):
		if !strings.HasSuffix(s, ")") {
			return Type{}, fmt.Errorf("%w: unbalanced tuple %q", ErrUnsupported, s)
		}
		list := s[1 : len(s)-1]
		if strings.TrimSpace(list) == "" {
			return Tuple(), nil
		}
		parts, err := splitTop(list)
		if err != nil {
			return Type{}, err
		}
		fields := make([]Type, len(parts))
		for i := range parts {
			fields[i], err = parse(parts[i], depth+1)
			if err != nil {
				return Type{}, err
			}
		}
		return Tuple(fields...), nil
	default:
		return elementary(s)
	}
}

// splits on commas that aren't nested inside parens
func splitTop(list string) ([]string, error) {
	var (
		parts []string
		depth int
		j     int
	)
	for i := 0; i < len(list); i++ {
		switch list[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("%w: unbalanced tuple %q", ErrUnsupported, list)
			}
		case ',':
			if depth == 0 {
				parts = append(parts, list[j:i])
				j = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("%w: unbalanced tuple %q", ErrUnsupported, list)
	}
	return append(parts, list[j:]), nil
}

func elementary(s string) (Type, error) {
	switch s {
	case "bool":
		return Bool, nil
	case "address":
		return Address, nil
	case "string":
		return String, nil
	case "bytes":
		return Bytes, nil
	case "tuple":
		return Tuple(), nil
	case "uint":
		return Uint256, nil
	case "int":
		return Int256, nil
	}
	var (
		prefix string
		limit  int
	)
	switch {
	case strings.HasPrefix(s, "bytes"):
		prefix, limit = "bytes", 32
	case strings.HasPrefix(s, "uint"):
		prefix, limit = "uint", 256
	case strings.HasPrefix(s, "int"):
		prefix, limit = "int", 256
	default:
		return Type{}, fmt.Errorf("%w: unknown type %q", ErrUnsupported, s)
	}
	num := strings.TrimPrefix(s, prefix)
	n, err := strconv.Atoi(num)
	if err != nil || n < 1 || n > limit || num[0] < '1' || num[0] > '9' {
		return Type{}, fmt.Errorf("%w: %q", ErrUnsupported, s)
	}
	switch prefix {
	case "bytes":
		return FixedBytes(n), nil
	case "uint":
		if !validBits(n) {
			return Type{}, fmt.Errorf("%w: %q", ErrUnsupported, s)
		}
		return Uint(n), nil
	default:
		if !validBits(n) {
			return Type{}, fmt.Errorf("%w: %q", ErrUnsupported, s)
		}
		return Int(n), nil
	}
}

// Like [Parse] but panics on error. Meant for
// package level vars and tests.
func MustParse(s string) Type {
	t, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("abit: %s", err))
	}
	return t
}
