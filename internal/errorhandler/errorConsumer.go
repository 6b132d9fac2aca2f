package errorhandler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/zeromicro/go-zero/core/logx"

	"github.com/zlovtnik/rclabsAPI-sub003/internal/types/errorx"
)

// PriorityConsumer logs a report with a verbosity matching its priority.
// Fatal reports are logged like critical ones; the reporter never takes
// the process down.
func PriorityConsumer(r Report) error {
	ex := r.Exception
	fields := []logx.LogField{
		logx.Field("correlation_id", ex.CorrelationID()),
		logx.Field("code", ex.Code().String()),
		logx.Field("priority", r.Priority.String()),
	}

	switch r.Priority {
	case PriorityFatal, PriorityCritical, PriorityError:
		logx.Errorw(detailOf(ex), fields...)
	case PriorityWarn, PriorityInfo:
		logx.Infow(ex.LogString(), fields...)
	default:
		logx.Debugw(ex.LogString(), fields...)
	}

	return nil
}

func detailOf(ex errorx.Exception) string {
	if d, ok := ex.(interface{ Detail() string }); ok {
		return d.Detail()
	}
	return ex.LogString()
}

var reportsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "etlgateway",
		Subsystem: "errorhandler",
		Name:      "reports_total",
		Help:      "Number of reported exceptions by category and priority",
	},
	[]string{"category", "priority"},
)

var droppedTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "etlgateway",
		Subsystem: "errorhandler",
		Name:      "dropped_total",
		Help:      "Number of reports dropped because the queue was full or closed",
	},
	[]string{"priority"},
)

// RegisterMetrics registers the reporter metrics with reg.
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(reportsTotal, droppedTotal)
}

// MetricsConsumer counts reports by category and priority.
func MetricsConsumer(r Report) error {
	reportsTotal.WithLabelValues(errorx.Category(r.Exception.Code()), r.Priority.String()).Inc()
	return nil
}
