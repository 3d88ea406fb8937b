// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TaskRunsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "task_runs_completed_total",
			Help: "Total number of task runs that completed",
		},
		[]string{"task_type"},
	)

	TaskRunsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "task_runs_failed_total",
			Help: "Total number of task runs that failed",
		},
		[]string{"task_type", "error_code"},
	)

	TaskRunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "task_run_duration_seconds",
			Help: "Duration of task execution in seconds",
		},
		[]string{"task_type"},
	)

	VendorDispatchStatus = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vendor_dispatch_status_total",
			Help: "Vendor responses by HTTP status class",
		},
		[]string{"vendor", "status_class"},
	)
)
