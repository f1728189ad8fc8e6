package gcptr

import (
	"sync"
	"unsafe"
)

// Heap tracks reference-counted allocations obtained from a single
// Allocator. It is the registry of the reclamation core: one insertion-
// ordered record per tracked address, a linear-scan lookup (registries are
// expected to stay small), and a synchronous sweep.
//
// A Heap is not goroutine-safe. All mutation must happen from one goroutine,
// or under external mutual exclusion.
type Heap struct {
	alloc   Allocator
	records []record
	closed  bool

	allocs uint64 // records ever created
	frees  uint64 // records swept
	sweeps uint64 // sweep passes
	forced uint64 // references dropped by Close
}

// NewHeap creates a heap backed by alloc. If alloc is nil, a GoAllocator is
// used. The heap is registered for process-exit finalization via Shutdown.
func NewHeap(alloc Allocator) *Heap {
	if alloc == nil {
		alloc = NewGoAllocator()
	}
	h := &Heap{alloc: alloc}
	registerHeap(h)
	return h
}

var (
	defaultHeap *Heap
	defaultOnce sync.Once
)

// Default returns the lazily-initialized process-wide heap, backed by a
// GoAllocator. Like any heap it is single-threaded; callers sharing it
// across goroutines must provide their own exclusion.
func Default() *Heap {
	defaultOnce.Do(func() {
		defaultHeap = NewHeap(nil)
	})
	return defaultHeap
}

// Allocator returns the allocator backing this heap.
func (h *Heap) Allocator() Allocator {
	return h.alloc
}

// allocate obtains a fresh block of size bytes from the backing allocator.
func (h *Heap) allocate(size uintptr) (unsafe.Pointer, error) {
	if h.closed {
		return nil, ErrClosed
	}
	p, err := h.alloc.Alloc(size)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrOutOfMemory
	}
	return p, nil
}

// lookup returns the index of the record for addr, or -1.
func (h *Heap) lookup(addr unsafe.Pointer) int {
	for i := range h.records {
		if h.records[i].addr == addr {
			return i
		}
	}
	return -1
}

// retain binds one more reference to addr. The first bind creates the
// record; later binds only increment it. isArray, elems and size describe
// the block and are trusted from the first bind; an existing record keeps
// its original shape.
func (h *Heap) retain(addr unsafe.Pointer, isArray bool, elems int, size uintptr) {
	if addr == nil {
		return
	}
	if i := h.lookup(addr); i >= 0 {
		h.records[i].refs++
		return
	}
	h.records = append(h.records, record{
		addr:    addr,
		refs:    1,
		isArray: isArray,
		elems:   elems,
		size:    size,
	})
	h.allocs++
}

// release drops one reference from addr's record. An unknown address is a
// no-op; a count never goes below zero.
func (h *Heap) release(addr unsafe.Pointer) {
	if i := h.lookup(addr); i >= 0 && h.records[i].refs > 0 {
		h.records[i].refs--
	}
}

// Sweep makes one pass over the records, frees every block whose reference
// count is zero (array blocks through FreeArray, scalars through Free), and
// removes those records. Returns the number of blocks freed. Safe to call
// repeatedly and on an empty heap.
func (h *Heap) Sweep() int {
	freed := 0
	kept := h.records[:0]
	for i := range h.records {
		r := h.records[i]
		if r.refs != 0 {
			kept = append(kept, r)
			continue
		}
		if r.isArray {
			h.alloc.FreeArray(r.addr)
		} else {
			h.alloc.Free(r.addr)
		}
		freed++
	}
	// Drop stale tail entries so freed addresses are not retained.
	for i := len(kept); i < len(h.records); i++ {
		h.records[i] = record{}
	}
	h.records = kept
	h.sweeps++
	h.frees += uint64(freed)
	return freed
}

// Len returns the number of live records. Diagnostic and testing hook.
func (h *Heap) Len() int {
	return len(h.records)
}

// Records returns a snapshot of all live records in insertion order.
func (h *Heap) Records() []RecordInfo {
	out := make([]RecordInfo, len(h.records))
	for i, r := range h.records {
		out[i] = RecordInfo{
			Addr:    uintptr(r.addr),
			Refs:    r.refs,
			IsArray: r.isArray,
			Elems:   r.elems,
			Size:    r.size,
		}
	}
	return out
}

// Close forces every record's reference count to zero, sweeps, and marks the
// heap closed. All tracked memory is released; any Ptr still bound to this
// heap is invalidated. Further allocation returns ErrClosed. Idempotent.
func (h *Heap) Close() error {
	if h.closed {
		return nil
	}
	for i := range h.records {
		h.forced += uint64(h.records[i].refs)
		h.records[i].refs = 0
	}
	h.Sweep()
	h.closed = true
	unregisterHeap(h)
	return nil
}

// Closed reports whether Close has been called.
func (h *Heap) Closed() bool {
	return h.closed
}
