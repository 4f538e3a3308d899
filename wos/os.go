package wos

import (
	"fmt"
	"os"
	"strings"
)

// If s has a $ prefix then we assume
// that it is a placeholder and the actual
// value is in an env variable.
//
// An error is returned when the variable is unset or empty.
//
// if there is no $ prefix then s is returned
func Getenv(s string) (string, error) {
	if strings.HasPrefix(s, "$") {
		name := strings.ToUpper(strings.TrimPrefix(s, "$"))
		v := os.Getenv(name)
		if v == "" {
			return "", fmt.Errorf("expected %s to be set", name)
		}
		return v, nil
	}
	return s, nil
}

// Reads the file at path after expanding
// a $ placeholder with [Getenv].
func ReadFile(path string) ([]byte, error) {
	p, err := Getenv(path)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(p)
}
