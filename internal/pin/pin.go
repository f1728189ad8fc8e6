// Package pin keeps Go-allocated byte blocks reachable while they are
// referenced only by raw address.
//
// The Go runtime is free to collect a block as soon as nothing holds a Go
// reference to it. When a block is handed out as an unsafe.Pointer and
// tracked by address alone, someone must keep the backing slice alive until
// the block is explicitly freed. That is this package's job: Hold stores the
// slice in a process-wide table keyed by its base address, Release drops it.
package pin

import (
	"sync"
	"unsafe"
)

var (
	mu     sync.Mutex
	blocks = make(map[unsafe.Pointer][]byte)
)

// Hold pins b and returns its base address. The block stays reachable until
// Release is called with the same address. b must be non-empty.
func Hold(b []byte) unsafe.Pointer {
	p := unsafe.Pointer(&b[0])
	mu.Lock()
	defer mu.Unlock()
	blocks[p] = b
	return p
}

// Release unpins the block at p, allowing the Go runtime to collect it.
// Returns false if p is not a pinned address.
func Release(p unsafe.Pointer) bool {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := blocks[p]; !ok {
		return false
	}
	delete(blocks, p)
	return true
}

// Held reports whether p is the base address of a pinned block.
func Held(p unsafe.Pointer) bool {
	mu.Lock()
	defer mu.Unlock()
	_, ok := blocks[p]
	return ok
}

// Count returns the number of currently pinned blocks.
// Useful for leak checks in tests.
func Count() int {
	mu.Lock()
	defer mu.Unlock()
	return len(blocks)
}
