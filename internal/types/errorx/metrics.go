package errorx

import "github.com/prometheus/client_golang/prometheus"

var metrics = struct {
	exceptionsCreated *prometheus.CounterVec
}{
	exceptionsCreated: prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "etlgateway",
			Subsystem: "errorx",
			Name:      "exceptions_created_total",
			Help:      "Number of exceptions constructed, by kind and code category",
		},
		[]string{"kind", "category"},
	),
}

// RegisterMetrics registers the exception counters with reg. Call it once
// at start-up, e.g. with prometheus.DefaultRegisterer.
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(metrics.exceptionsCreated)
}
