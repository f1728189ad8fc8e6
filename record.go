package gcptr

import "unsafe"

// record is one heap entry: the metadata tracked for a single allocation.
// The heap compares addr for identity only and never dereferences it.
type record struct {
	addr    unsafe.Pointer
	refs    int
	isArray bool
	elems   int     // element count; 1 for scalars
	size    uintptr // block size in bytes, for accounting
}

// RecordInfo is a diagnostic snapshot of one tracked allocation.
type RecordInfo struct {
	Addr    uintptr
	Refs    int
	IsArray bool
	Elems   int
	Size    uintptr
}
