//go:build !ios && !android && (amd64 || arm64)

package gcptr

import (
	"unsafe"

	"github.com/azadwasan/gcptr/cmem"
	"github.com/azadwasan/gcptr/internal/bindings"
)

// CAllocator satisfies Allocator with blocks from the C runtime heap via the
// cmem package. Memory it hands out is invisible to the Go garbage
// collector; the reference-counting heap is the only thing reclaiming it.
type CAllocator struct{}

// NewCAllocator returns a C-heap-backed allocator. It loads the C runtime
// bindings if they are not loaded yet and fails with the load error when no
// C runtime is available.
func NewCAllocator() (*CAllocator, error) {
	if err := bindings.Load(); err != nil {
		return nil, err
	}
	return &CAllocator{}, nil
}

// Alloc returns a zeroed block of size bytes from the C heap.
func (*CAllocator) Alloc(size uintptr) (unsafe.Pointer, error) {
	if size == 0 {
		size = 1
	}
	p := cmem.Calloc(1, size)
	if p == nil {
		return nil, ErrOutOfMemory
	}
	return p, nil
}

// Free releases a scalar block back to the C heap.
func (*CAllocator) Free(p unsafe.Pointer) {
	cmem.Free(p)
}

// FreeArray releases an array block. The C heap has a single free operation,
// so this is identical to Free; the split exists for allocators that do
// distinguish the two.
func (*CAllocator) FreeArray(p unsafe.Pointer) {
	cmem.Free(p)
}
