// test helpers
package tc

import (
	"errors"
	"reflect"
	"testing"

	"github.com/kr/pretty"
)

func NoErr(tb testing.TB, err error) {
	tb.Helper()
	if err != nil {
		tb.Errorf("expected no error. got: %s", err)
	}
}

// Fails unless errors.Is(err, target)
func WantErr(tb testing.TB, err, target error) {
	tb.Helper()
	if !errors.Is(err, target) {
		tb.Errorf("want error: %v got: %v", target, err)
	}
}

func WantGot(tb testing.TB, want, got any) {
	tb.Helper()
	if !reflect.DeepEqual(want, got) {
		tb.Error(pretty.Sprintf("want: %# v got: %# v", want, got))
	}
}
