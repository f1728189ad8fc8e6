package gcptr

import "sync"

// Every heap registers itself here on creation and leaves on Close, so that
// Shutdown can guarantee nothing tracked survives process exit. The set is
// process-wide infrastructure and carries its own lock, unlike the
// single-threaded heaps it holds.
var (
	heapsMu sync.Mutex
	heaps   []*Heap
)

func registerHeap(h *Heap) {
	heapsMu.Lock()
	defer heapsMu.Unlock()
	heaps = append(heaps, h)
}

func unregisterHeap(h *Heap) {
	heapsMu.Lock()
	defer heapsMu.Unlock()
	for i := range heaps {
		if heaps[i] == h {
			heaps = append(heaps[:i], heaps[i+1:]...)
			return
		}
	}
}

// Shutdown closes every live heap, forcing all reference counts to zero and
// sweeping, so no tracked block survives. Handles outstanding at this point
// are invalidated, which is acceptable at process exit. Idempotent; intended
// as
//
//	defer gcptr.Shutdown()
//
// at the top of main.
func Shutdown() {
	heapsMu.Lock()
	pending := make([]*Heap, len(heaps))
	copy(pending, heaps)
	heapsMu.Unlock()

	// Close unregisters each heap itself.
	for _, h := range pending {
		h.Close()
	}
}
