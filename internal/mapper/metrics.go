package mapper

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var metrics = struct {
	// responses counts mapped error responses by code and HTTP status
	responses *prometheus.CounterVec
	// degraded counts responses produced by the fallback path
	degraded prometheus.Counter
}{
	responses: prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "etlgateway",
			Subsystem: "mapper",
			Name:      "responses_total",
			Help:      "Number of error responses by code and HTTP status",
		},
		[]string{"code", "status"},
	),
	degraded: prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "etlgateway",
			Subsystem: "mapper",
			Name:      "degraded_total",
			Help:      "Number of error responses produced after a mapping failure",
		},
	),
}

// RegisterMetrics registers the mapper metrics with reg.
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(
		metrics.responses,
		metrics.degraded,
	)
}

func observe(code string, status int) {
	metrics.responses.WithLabelValues(code, strconv.Itoa(status)).Inc()
}
