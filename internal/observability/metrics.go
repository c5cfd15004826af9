package observability

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	framesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scorelink",
			Subsystem: "ingest",
			Name:      "frames_total",
			Help:      "Frames read from the controller by decode result.",
		},
		[]string{"pattern", "result"},
	)
	publishTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scorelink",
			Subsystem: "publish",
			Name:      "documents_total",
			Help:      "Gated publish attempts by outcome.",
		},
		[]string{"sink", "outcome"},
	)
	publishDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "scorelink",
			Subsystem: "publish",
			Name:      "send_duration_seconds",
			Help:      "Duration of document sends that reached the transport.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"sink", "outcome"},
	)
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scorelink",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests on the metrics listener.",
		},
		[]string{"method", "path", "status"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(framesTotal, publishTotal, publishDuration, httpRequests)
	})
}

// RecordFrame counts one frame. pattern is empty for unrecognized frames.
func RecordFrame(pattern, result string) {
	RegisterMetrics()
	framesTotal.WithLabelValues(pattern, result).Inc()
}

func RecordPublish(sink, outcome string, duration time.Duration) {
	RegisterMetrics()
	publishTotal.WithLabelValues(sink, outcome).Inc()
	if duration > 0 {
		publishDuration.WithLabelValues(sink, outcome).Observe(duration.Seconds())
	}
}

func RecordHTTPRequest(method, path string, status int) {
	RegisterMetrics()
	httpRequests.WithLabelValues(method, path, statusLabel(status)).Inc()
}
