package gcptr

import "github.com/prometheus/client_golang/prometheus"

// Collector exports a heap's accounting as Prometheus metrics. Register it
// with a prometheus.Registry to expose live record/byte gauges and the
// allocation, free, sweep and forced-release counters.
//
// Scrapes read the heap without locking, so they must be coordinated with
// heap mutation the same way every other heap access is: from the owning
// goroutine, or under external exclusion.
type Collector struct {
	heap *Heap

	liveRecords *prometheus.Desc
	liveBytes   *prometheus.Desc
	allocations *prometheus.Desc
	frees       *prometheus.Desc
	sweeps      *prometheus.Desc
	forced      *prometheus.Desc
}

// NewCollector returns a Collector over h.
func NewCollector(h *Heap) *Collector {
	return &Collector{
		heap: h,
		liveRecords: prometheus.NewDesc(
			"gcptr_live_records",
			"Number of allocations currently tracked by the heap",
			nil, nil,
		),
		liveBytes: prometheus.NewDesc(
			"gcptr_live_bytes",
			"Bytes currently tracked by the heap",
			nil, nil,
		),
		allocations: prometheus.NewDesc(
			"gcptr_allocations_total",
			"Total allocation records created",
			nil, nil,
		),
		frees: prometheus.NewDesc(
			"gcptr_frees_total",
			"Total blocks released by sweeps",
			nil, nil,
		),
		sweeps: prometheus.NewDesc(
			"gcptr_sweeps_total",
			"Total sweep passes run",
			nil, nil,
		),
		forced: prometheus.NewDesc(
			"gcptr_forced_releases_total",
			"Total references dropped by Heap.Close",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.liveRecords
	ch <- c.liveBytes
	ch <- c.allocations
	ch <- c.frees
	ch <- c.sweeps
	ch <- c.forced
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.heap.Stats()
	ch <- prometheus.MustNewConstMetric(c.liveRecords, prometheus.GaugeValue, float64(s.LiveRecords))
	ch <- prometheus.MustNewConstMetric(c.liveBytes, prometheus.GaugeValue, float64(s.LiveBytes))
	ch <- prometheus.MustNewConstMetric(c.allocations, prometheus.CounterValue, float64(s.Allocations))
	ch <- prometheus.MustNewConstMetric(c.frees, prometheus.CounterValue, float64(s.Frees))
	ch <- prometheus.MustNewConstMetric(c.sweeps, prometheus.CounterValue, float64(s.Sweeps))
	ch <- prometheus.MustNewConstMetric(c.forced, prometheus.CounterValue, float64(s.ForcedReleases))
}
