//go:build !ios && !android && (amd64 || arm64)

// Package cmem provides bindings to the C runtime allocator (malloc, calloc,
// realloc, free, memset) without CGO using purego.
//
// Memory obtained from this package lives outside the Go heap: the Go
// garbage collector neither tracks nor moves it, and every block must be
// released with Free. The gcptr package layers reference-counted reclamation
// on top; cmem is usable on its own when manual bookkeeping is acceptable.
package cmem

import (
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/azadwasan/gcptr/internal/bindings"
)

// Function bindings - registered when init() is called
var (
	cMalloc  func(size uintptr) unsafe.Pointer
	cCalloc  func(n, size uintptr) unsafe.Pointer
	cRealloc func(p unsafe.Pointer, size uintptr) unsafe.Pointer
	cFree    func(p unsafe.Pointer)
	cMemset  func(p unsafe.Pointer, c int32, n uintptr) unsafe.Pointer

	bindingsRegistered bool
)

func init() {
	registerBindings()
}

func registerBindings() {
	if bindingsRegistered {
		return
	}

	// Tolerate a missing C runtime here; calls fail cleanly later.
	if err := bindings.Load(); err != nil {
		return
	}

	lib := bindings.LibC()
	if lib == 0 {
		return
	}

	purego.RegisterLibFunc(&cMalloc, lib, "malloc")
	purego.RegisterLibFunc(&cCalloc, lib, "calloc")
	purego.RegisterLibFunc(&cRealloc, lib, "realloc")
	purego.RegisterLibFunc(&cFree, lib, "free")
	purego.RegisterLibFunc(&cMemset, lib, "memset")

	bindingsRegistered = true
}

// Loaded returns true if the allocator bindings are registered and usable.
func Loaded() bool {
	return bindingsRegistered
}

// Malloc allocates size bytes of uninitialized C memory.
// Returns nil if the allocation fails or the C runtime is not loaded.
func Malloc(size uintptr) unsafe.Pointer {
	if cMalloc == nil || size == 0 {
		return nil
	}
	return cMalloc(size)
}

// Calloc allocates n*size bytes of zeroed C memory.
// Returns nil if the allocation fails or the C runtime is not loaded.
func Calloc(n, size uintptr) unsafe.Pointer {
	if cCalloc == nil || n == 0 || size == 0 {
		return nil
	}
	return cCalloc(n, size)
}

// Realloc resizes the block at p to size bytes, possibly moving it.
// With p == nil it behaves like Malloc. Returns nil on failure, in which
// case the original block is untouched.
func Realloc(p unsafe.Pointer, size uintptr) unsafe.Pointer {
	if cRealloc == nil || size == 0 {
		return nil
	}
	return cRealloc(p, size)
}

// Free releases a block obtained from Malloc, Calloc or Realloc.
// Safe to call with nil.
func Free(p unsafe.Pointer) {
	if cFree == nil || p == nil {
		return
	}
	cFree(p)
}

// Memset fills the first n bytes of the block at p with the byte c.
func Memset(p unsafe.Pointer, c byte, n uintptr) {
	if cMemset == nil || p == nil || n == 0 {
		return
	}
	cMemset(p, int32(c), n)
}
