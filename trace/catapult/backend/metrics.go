package backend

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the backend's self-observability counters. Installing
// one is optional: a Backend with a nil Metrics simply skips these
// updates on its hot path.
type Metrics struct {
	eventsEnqueuedTotal prometheus.Counter
	eventsWrittenTotal  prometheus.Counter
	queueDepth          prometheus.Gauge
}

// NewMetrics registers the backend's metrics against reg and returns a
// Metrics ready to pass as Options.Metrics. Passing a dedicated
// *prometheus.Registry (rather than the default one) keeps repeated
// backend construction in tests from panicking on duplicate
// registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		eventsEnqueuedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "spantrace_backend_events_enqueued_total",
			Help: "Total number of trace events pushed onto the backend's queue.",
		}),
		eventsWrittenTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "spantrace_backend_events_written_total",
			Help: "Total number of trace events successfully written to the output sink.",
		}),
		queueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Name: "spantrace_backend_queue_depth",
			Help: "Number of events buffered in the backend's queue, sampled on each flush tick.",
		}),
	}
}

func (m *Metrics) observeEnqueued() {
	m.eventsEnqueuedTotal.Inc()
}

func (m *Metrics) observeWritten() {
	m.eventsWrittenTotal.Inc()
}

func (m *Metrics) observeQueueDepth(n int) {
	m.queueDepth.Set(float64(n))
}
