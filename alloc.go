package gcptr

import (
	"unsafe"

	"github.com/azadwasan/gcptr/internal/pin"
)

// Allocator is the external collaborator that actually provides and releases
// memory. The heap only tracks blocks obtained from its allocator and picks
// the release operation matching the record's shape: Free for scalars,
// FreeArray for arrays. For allocators without that distinction both may
// share an implementation.
type Allocator interface {
	// Alloc returns a zeroed block of size bytes, or an error.
	Alloc(size uintptr) (unsafe.Pointer, error)

	// Free releases a scalar block previously returned by Alloc.
	Free(p unsafe.Pointer)

	// FreeArray releases an array block previously returned by Alloc.
	FreeArray(p unsafe.Pointer)
}

// GoAllocator satisfies Allocator with blocks on the Go heap, pinned so they
// stay valid while referenced only by raw address. It needs no C runtime,
// which makes it the default backing for heaps and the natural choice in
// tests.
type GoAllocator struct{}

// NewGoAllocator returns a Go-heap-backed allocator.
func NewGoAllocator() *GoAllocator {
	return &GoAllocator{}
}

// Alloc returns a zeroed, pinned block of at least size bytes.
func (*GoAllocator) Alloc(size uintptr) (unsafe.Pointer, error) {
	// Round up so the block lands in a word-aligned size class.
	n := (size + 7) &^ 7
	if n == 0 {
		n = 8
	}
	return pin.Hold(make([]byte, n)), nil
}

// Free unpins the block at p, returning it to the Go garbage collector.
func (*GoAllocator) Free(p unsafe.Pointer) {
	pin.Release(p)
}

// FreeArray unpins an array block. Identical to Free for this allocator.
func (*GoAllocator) FreeArray(p unsafe.Pointer) {
	pin.Release(p)
}
