package repositories

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// BackendMetrics - счетчики обращений к коллекциям бэкенда.
type BackendMetrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewBackendMetrics(reg prometheus.Registerer) *BackendMetrics {
	m := &BackendMetrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "equipment_tracker",
			Subsystem: "backend",
			Name:      "calls_total",
			Help:      "Backend collection calls by collection, operation and outcome.",
		}, []string{"collection", "operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "equipment_tracker",
			Subsystem: "backend",
			Name:      "call_duration_seconds",
			Help:      "Backend collection call latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"collection", "operation"}),
	}
	if reg != nil {
		reg.MustRegister(m.calls, m.duration)
	}
	return m
}

func (m *BackendMetrics) observe(collection, operation string, start time.Time, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.calls.WithLabelValues(collection, operation, outcome).Inc()
	m.duration.WithLabelValues(collection, operation).Observe(time.Since(start).Seconds())
}
