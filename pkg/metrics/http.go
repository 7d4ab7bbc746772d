package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics records request durations for the admin API.
type HTTPMetrics struct {
	requestDuration *prometheus.HistogramVec
}

// NewHTTPMetrics registers the HTTP metrics on the provided registerer.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
	reg.MustRegister(requestDuration)
	return &HTTPMetrics{requestDuration: requestDuration}
}

// ObserveRequest records one completed request.
func (h *HTTPMetrics) ObserveRequest(method, path string, status int, duration time.Duration) {
	if h == nil || h.requestDuration == nil {
		return
	}
	h.requestDuration.WithLabelValues(
		normalizeLabel(method),
		normalizeLabel(path),
		strconv.Itoa(status),
	).Observe(duration.Seconds())
}
