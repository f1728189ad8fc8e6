//go:build !ios && !android && (amd64 || arm64)

// Package bindings handles loading the C runtime library and exposing its
// handle so purego function bindings can be registered against it.
package bindings

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/ebitengine/purego"
)

// ErrNotLoaded is returned when allocator functions are called before Load().
var ErrNotLoaded = errors.New("gcptr: C runtime not loaded; call gcptr.Init() first")

// ErrLibraryNotFound is returned when no C runtime library can be found.
var ErrLibraryNotFound = errors.New("gcptr: C runtime library not found")

var (
	libc uintptr

	loaded   bool
	loadOnce sync.Once
	loadErr  error
)

// IsLoaded returns true if the C runtime library has been successfully loaded.
func IsLoaded() bool {
	return loaded
}

// LibC returns the dlopen handle of the C runtime library, or 0 if not loaded.
func LibC() uintptr {
	return libc
}

// Load locates and opens the platform's C runtime library.
// It is safe to call multiple times; subsequent calls are no-ops.
func Load() error {
	loadOnce.Do(func() {
		loadErr = doLoad()
		if loadErr == nil {
			loaded = true
		}
	})
	return loadErr
}

func doLoad() error {
	for _, name := range libraryNames() {
		lib, err := tryOpen(name)
		if err == nil {
			libc = lib
			return nil
		}
	}
	return fmt.Errorf("%w (%s/%s)", ErrLibraryNotFound, runtime.GOOS, runtime.GOARCH)
}

// libraryNames returns candidate C runtime library names for this platform,
// most specific first.
func libraryNames() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{"/usr/lib/libSystem.B.dylib", "libSystem.B.dylib"}
	case "windows":
		return []string{"ucrtbase.dll", "msvcrt.dll"}
	case "freebsd":
		return []string{"libc.so.7", "libc.so"}
	default: // linux
		return []string{"libc.so.6", "libc.so"}
	}
}

func tryOpen(path string) (uintptr, error) {
	lib, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return 0, err
	}
	return lib, nil
}
