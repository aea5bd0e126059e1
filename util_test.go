package bookdb

import (
	"errors"
	"testing"
)

func TestHexstr(t *testing.T) {
	if got := hexstr(nil); got != "<nil>" {
		t.Fatalf("hexstr(nil) = %q, wanted <nil>", got)
	}
	if got := hexstr([]byte{}); got != "<empty>" {
		t.Fatalf("hexstr(empty) = %q, wanted <empty>", got)
	}
	if got := hexstr([]byte{0xAA, 0xBB}); got != "aabb" {
		t.Fatalf("hexstr = %q, wanted aabb", got)
	}
}

func TestMustAndEnsure(t *testing.T) {
	deepEqual(t, must(42, nil), 42)
	assertPanics(t, func() {
		must(0, errors.New("boom"))
	})
	ensure(nil)
	assertPanics(t, func() {
		ensure(errors.New("boom"))
	})
}
