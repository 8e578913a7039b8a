package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// APIMetrics records request latency and scan activity.
type APIMetrics struct {
	duration *prometheus.HistogramVec
	scans    *prometheus.CounterVec
}

// NewAPIMetrics registers the API metrics on the provided registerer.
func NewAPIMetrics(reg prometheus.Registerer) *APIMetrics {
	if reg == nil {
		return &APIMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method", "status"})
	scans := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "photo_scans_total",
		Help: "Photo code scans by destination.",
	}, []string{"destination"})
	reg.MustRegister(duration, scans)
	return &APIMetrics{
		duration: duration,
		scans:    scans,
	}
}

// ObserveRequest records the duration for the matched route.
func (m *APIMetrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(route), method, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// IncScan increments the scan counter for the destination.
func (m *APIMetrics) IncScan(destination string) {
	if m == nil || m.scans == nil {
		return
	}
	m.scans.WithLabelValues(normalizeLabel(destination)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
