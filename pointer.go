package gcptr

import "unsafe"

// Ptr is a reference-counted substitute for a raw pointer to a block of T,
// either a single value or a fixed-size array. Binding an address —
// construction, Clone, Set, Rebind — increments the shared record in the
// heap; Release and rebinding away decrement it and sweep, so the block is
// freed the moment its last reference drops.
//
// The zero Ptr is unbound; all its operations are no-ops or return zero
// values. Copy a Ptr with Clone, not with plain assignment: a plain copy
// aliases the same address without a reference of its own, and releasing
// both copies double-decrements.
//
// Get, At and Slice are deliberately unchecked, like the raw pointer they
// replace. Use Begin/End cursors for bounds-checked traversal.
type Ptr[T any] struct {
	heap  *Heap
	raw   unsafe.Pointer
	arr   bool
	elems int
}

func sizeOf[T any]() uintptr {
	var zero T
	return unsafe.Sizeof(zero)
}

// New allocates a zeroed T on h and returns a handle with reference count 1.
// A nil h means the Default heap.
func New[T any](h *Heap) (Ptr[T], error) {
	if h == nil {
		h = Default()
	}
	size := sizeOf[T]()
	p, err := h.allocate(size)
	if err != nil {
		return Ptr[T]{}, err
	}
	h.retain(p, false, 1, size)
	return Ptr[T]{heap: h, raw: p, elems: 1}, nil
}

// NewArray allocates a zeroed array of n elements of T on h and returns a
// handle with reference count 1. n must be positive, and n elements of T
// must fit in a uintptr byte count.
func NewArray[T any](h *Heap, n int) (Ptr[T], error) {
	if n <= 0 {
		return Ptr[T]{}, ErrBadLength
	}
	elem := sizeOf[T]()
	if elem > 0 && uintptr(n) > ^uintptr(0)/elem {
		return Ptr[T]{}, ErrBadLength
	}
	if h == nil {
		h = Default()
	}
	size := elem * uintptr(n)
	p, err := h.allocate(size)
	if err != nil {
		return Ptr[T]{}, err
	}
	h.retain(p, true, n, size)
	return Ptr[T]{heap: h, raw: p, arr: true, elems: n}, nil
}

// Adopt binds an existing scalar allocation to h. The first bind of an
// address creates its record with count 1; binding an already-tracked
// address shares the record and increments it. raw must have been obtained
// from h's allocator; adopting anything else makes the eventual release
// undefined. A nil raw, or a closed heap, yields an unbound handle.
func Adopt[T any](h *Heap, raw unsafe.Pointer) Ptr[T] {
	return AdoptArray[T](h, raw, 0)
}

// AdoptArray is Adopt for arrays: n is the element count the address was
// allocated with. n <= 0 binds raw as a scalar. The count is trusted from
// the first bind of an address; re-binding the same address with a different
// count is a caller error the heap does not detect. A count whose byte size
// overflows a uintptr cannot describe a real allocation and yields an
// unbound handle.
func AdoptArray[T any](h *Heap, raw unsafe.Pointer, n int) Ptr[T] {
	if h == nil {
		h = Default()
	}
	if raw == nil || h.closed {
		return Ptr[T]{}
	}
	arr := n > 0
	elems := n
	if !arr {
		elems = 1
	}
	elem := sizeOf[T]()
	if elem > 0 && uintptr(elems) > ^uintptr(0)/elem {
		return Ptr[T]{}
	}
	h.retain(raw, arr, elems, elem*uintptr(elems))
	return Ptr[T]{heap: h, raw: raw, arr: arr, elems: elems}
}

// Clone returns a new handle to the same address, incrementing the shared
// reference count. Cloning an unbound handle yields an unbound handle.
func (p Ptr[T]) Clone() Ptr[T] {
	if p.heap == nil || p.raw == nil {
		return Ptr[T]{}
	}
	p.heap.retain(p.raw, p.arr, p.elems, sizeOf[T]()*uintptr(p.elems))
	return p
}

// Set rebinds p to other's address: the old address is decremented and swept
// (possibly freeing its block right away), then the new one is incremented.
// Setting a handle to itself is a no-op.
func (p *Ptr[T]) Set(other Ptr[T]) {
	if p.heap == other.heap && p.raw == other.raw {
		return
	}
	p.drop()
	*p = other.Clone()
}

// Rebind points p at a fresh raw allocation: decrement-old, sweep, then bind
// raw with the given element count (n > 0 marks an array, like AdoptArray).
// The heap stays the one p was bound to; an unbound p binds on the Default
// heap. A nil raw leaves p unbound.
func (p *Ptr[T]) Rebind(raw unsafe.Pointer, n int) {
	if p.raw != nil && p.raw == raw {
		return
	}
	h := p.heap
	if h == nil {
		h = Default()
	}
	p.drop()
	*p = AdoptArray[T](h, raw, n)
}

// Release destroys the handle: the record is decremented and a sweep runs,
// freeing the block if this was the last reference. Releasing an unbound or
// already-released handle is a no-op. Never panics.
func (p *Ptr[T]) Release() {
	p.drop()
	*p = Ptr[T]{}
}

// drop decrements p's current record (if bound) and sweeps.
func (p *Ptr[T]) drop() {
	if p.heap == nil || p.raw == nil {
		return
	}
	p.heap.release(p.raw)
	p.heap.Sweep()
}

// Get returns the referenced value. Unchecked: an unbound handle returns a
// nil *T, and dereferencing that is the caller's undefined behavior.
func (p Ptr[T]) Get() *T {
	return (*T)(p.raw)
}

// At returns the i'th element of an array block. Unchecked: valid only when
// the handle is bound to an array and 0 <= i < Len().
func (p Ptr[T]) At(i int) *T {
	return (*T)(unsafe.Add(p.raw, uintptr(i)*sizeOf[T]()))
}

// Slice returns the whole block as a []T sharing the underlying memory.
// Returns nil for an unbound handle. The slice is valid only while the
// block is live.
func (p Ptr[T]) Slice() []T {
	if p.raw == nil {
		return nil
	}
	return unsafe.Slice((*T)(p.raw), p.elems)
}

// Raw returns the bound address for interop with code expecting a raw
// pointer. The reference count is unaffected.
func (p Ptr[T]) Raw() unsafe.Pointer {
	return p.raw
}

// Addr returns the bound address as a uintptr, for logging and comparison.
func (p Ptr[T]) Addr() uintptr {
	return uintptr(p.raw)
}

// Len returns the element count of the bound block: n for arrays, 1 for
// scalars, 0 when unbound.
func (p Ptr[T]) Len() int {
	return p.elems
}

// IsArray reports whether the handle is bound to an array block.
func (p Ptr[T]) IsArray() bool {
	return p.arr
}

// IsNil reports whether the handle is unbound.
func (p Ptr[T]) IsNil() bool {
	return p.raw == nil
}

// Heap returns the heap the handle is bound to, or nil when unbound.
func (p Ptr[T]) Heap() *Heap {
	return p.heap
}

// Begin returns a cursor at the first element of the block.
func (p Ptr[T]) Begin() Cursor[T] {
	return Cursor[T]{base: p.raw, length: p.elems}
}

// End returns the one-past-last sentinel cursor for the block.
func (p Ptr[T]) End() Cursor[T] {
	return Cursor[T]{base: p.raw, index: p.elems, length: p.elems}
}
