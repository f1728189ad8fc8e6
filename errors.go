package gcptr

import "errors"

// Common errors
var (
	// ErrOutOfRange indicates a cursor was dereferenced or moved outside
	// its block's bounds.
	ErrOutOfRange = errors.New("gcptr: cursor out of range")

	// ErrOutOfMemory indicates the underlying allocator failed.
	ErrOutOfMemory = errors.New("gcptr: out of memory")

	// ErrClosed indicates the heap has been closed.
	ErrClosed = errors.New("gcptr: heap is closed")

	// ErrBadLength indicates a non-positive array element count.
	ErrBadLength = errors.New("gcptr: array length must be positive")
)
