//go:build prometheus

package multipart

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	partsYieldedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "bolt",
		Subsystem: "multipart",
		Name:      "parts_yielded_total",
		Help:      "Total number of multipart Parts yielded across all iterators.",
	})

	bytesStreamedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "bolt",
		Subsystem: "multipart",
		Name:      "bytes_streamed_total",
		Help:      "Total number of part-body bytes handed to consumers.",
	})

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bolt",
		Subsystem: "multipart",
		Name:      "errors_total",
		Help:      "Total number of terminal parser errors, by kind.",
	}, []string{"kind"})

	ringBufferLiveBytes = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "bolt",
		Subsystem: "multipart",
		Name:      "ring_buffer_live_bytes",
		Help:      "Live (unconsumed) byte count of the most recently observed RingBuffer.",
	})
)

// UpdatePrometheusMetrics pushes the current GlobalMetrics snapshot into the
// promauto collectors above. Call periodically, e.g. from the same ticker
// goroutine shockwave's buffer pool metrics use, or rely on
// PrometheusCollector.Collect to do it on every scrape.
func UpdatePrometheusMetrics() {
	snap := Metrics()
	partsYieldedTotal.Add(float64(snap.PartsYielded) - partsYieldedSeen)
	partsYieldedSeen = float64(snap.PartsYielded)

	bytesStreamedTotal.Add(float64(snap.BytesStreamed) - bytesStreamedSeen)
	bytesStreamedSeen = float64(snap.BytesStreamed)

	for kind, count := range snap.Errors {
		prev := errorsSeen[kind]
		if delta := float64(count) - prev; delta > 0 {
			errorsTotal.WithLabelValues(kind).Add(delta)
		}
		errorsSeen[kind] = float64(count)
	}
}

var (
	partsYieldedSeen  float64
	bytesStreamedSeen float64
	errorsSeen        = map[string]float64{}
)

// PrometheusCollector implements prometheus.Collector, mirroring
// shockwave's buffer-pool collector: Describe is a no-op (metrics are
// already registered via promauto) and Collect refreshes counters from the
// live Iterator on every scrape.
type PrometheusCollector struct {
	it *Iterator
}

// NewPrometheusCollector builds a collector that also reports the given
// Iterator's current RingBuffer occupancy. it may be nil if only the
// global counters are wanted.
func NewPrometheusCollector(it *Iterator) *PrometheusCollector {
	return &PrometheusCollector{it: it}
}

func (pc *PrometheusCollector) Describe(ch chan<- *prometheus.Desc) {}

func (pc *PrometheusCollector) Collect(ch chan<- prometheus.Metric) {
	UpdatePrometheusMetrics()
	if pc.it != nil && pc.it.buf != nil {
		ringBufferLiveBytes.Set(float64(pc.it.buf.Valid()))
	}
}
