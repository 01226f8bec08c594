// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_submissions_total",
			Help: "Total number of intake submissions by outcome",
		},
		[]string{"outcome"}, // accepted, partial, rejected, failed
	)

	SubmissionRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_submission_rejections_total",
			Help: "Total number of rejected submissions by error code",
		},
		[]string{"error_code"},
	)

	NotificationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_notification_failures_total",
			Help: "Total number of best-effort notification failures",
		},
		[]string{"notification_type"},
	)

	SubmissionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "intake_submission_duration_seconds",
			Help: "Duration of intake submission processing in seconds",
		},
	)
)
