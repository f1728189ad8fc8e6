package gcptr

// HeapStats is a snapshot of heap accounting.
type HeapStats struct {
	LiveRecords    int    // records currently tracked
	LiveBytes      uint64 // bytes currently tracked
	Allocations    uint64 // records created since the heap was made
	Frees          uint64 // blocks released by sweeps
	Sweeps         uint64 // sweep passes run
	ForcedReleases uint64 // references dropped by Close
}

// Stats returns a snapshot of the heap's counters.
func (h *Heap) Stats() HeapStats {
	var live uint64
	for i := range h.records {
		live += uint64(h.records[i].size)
	}
	return HeapStats{
		LiveRecords:    len(h.records),
		LiveBytes:      live,
		Allocations:    h.allocs,
		Frees:          h.frees,
		Sweeps:         h.sweeps,
		ForcedReleases: h.forced,
	}
}
