package pin

import (
	"testing"
	"unsafe"
)

func TestHoldRelease(t *testing.T) {
	before := Count()

	b := make([]byte, 64)
	p := Hold(b)
	if p != unsafe.Pointer(&b[0]) {
		t.Fatalf("Hold returned %p, want base address %p", p, unsafe.Pointer(&b[0]))
	}
	if !Held(p) {
		t.Fatalf("block not held after Hold")
	}
	if got := Count(); got != before+1 {
		t.Fatalf("Count = %d, want %d", got, before+1)
	}

	if !Release(p) {
		t.Fatalf("Release returned false for a held block")
	}
	if Held(p) {
		t.Fatalf("block still held after Release")
	}
	if got := Count(); got != before {
		t.Fatalf("Count = %d, want %d", got, before)
	}
}

func TestReleaseUnknownAddress(t *testing.T) {
	var local int
	if Release(unsafe.Pointer(&local)) {
		t.Fatalf("Release of an unpinned address returned true")
	}
}
