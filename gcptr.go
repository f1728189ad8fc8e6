//go:build !ios && !android && (amd64 || arm64)

package gcptr

import "github.com/azadwasan/gcptr/internal/bindings"

// ErrNotLoaded indicates the C runtime bindings are not loaded. Only the
// CAllocator path needs them; GoAllocator-backed heaps never see this error.
var ErrNotLoaded = bindings.ErrNotLoaded

// Init loads the C runtime allocator bindings. It is called implicitly by
// NewCAllocator, but can be called up front to surface a load failure early.
// Safe to call multiple times.
func Init() error {
	return bindings.Load()
}

// IsLoaded returns true if the C runtime bindings are loaded.
func IsLoaded() bool {
	return bindings.IsLoaded()
}
