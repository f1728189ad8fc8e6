// Package gcptr provides deterministic, reference-counted reclamation of
// manually-allocated memory blocks for single-threaded programs.
//
// A Ptr is a drop-in substitute for a raw pointer to a dynamically allocated
// block (a single value or a fixed-size array). Every bind of an address —
// construction, Clone, Set, Rebind — increments a shared reference count kept
// in a Heap; every Release or rebind away decrements it and immediately
// sweeps, freeing blocks whose count reached zero. Reclamation is fully
// deterministic: a block is freed during the call that dropped its last
// reference, never later.
//
//	h := gcptr.NewHeap(nil) // Go-backed allocator
//	defer h.Close()         // releases everything still tracked
//
//	p, err := gcptr.NewArray[int32](h, 5)
//	if err != nil { ... }
//	q := p.Clone()          // refcount 2
//	p.Release()             // refcount 1, block survives
//	q.Release()             // refcount 0, block freed now
//
// Dereferencing is two-tier. Ptr.Get, Ptr.At and Ptr.Slice are unchecked,
// matching raw pointer semantics; Cursor is the checked tier and refuses to
// move or dereference outside its block.
//
// Blocks can live on the C heap (CAllocator, via the cmem package) or the Go
// heap (GoAllocator, the default). Either way the Go garbage collector plays
// no part in reclamation.
//
// Heaps, pointers and cursors are not goroutine-safe. The model is strictly
// single-threaded: every mutation, including the sweep it triggers, completes
// before the call returns. Reference cycles between managed blocks are not
// detected; they persist until Heap.Close or Shutdown.
package gcptr
