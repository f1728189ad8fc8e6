//go:build !ios && !android && (amd64 || arm64)

package bindings

import (
	"runtime"
	"testing"
)

func TestLibraryNames(t *testing.T) {
	names := libraryNames()
	if len(names) == 0 {
		t.Fatalf("no candidate library names for %s", runtime.GOOS)
	}
	for _, n := range names {
		if n == "" {
			t.Fatalf("empty candidate library name")
		}
	}
}

func TestLoadIsIdempotent(t *testing.T) {
	err1 := Load()
	err2 := Load()
	if (err1 == nil) != (err2 == nil) {
		t.Fatalf("Load not idempotent: first=%v second=%v", err1, err2)
	}
	if err1 == nil && !IsLoaded() {
		t.Fatalf("Load succeeded but IsLoaded() is false")
	}
	if err1 == nil && LibC() == 0 {
		t.Fatalf("Load succeeded but LibC() is 0")
	}
}
