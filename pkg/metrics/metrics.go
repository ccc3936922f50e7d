package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agromonitor_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "agromonitor_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route"},
	)

	// Alert metrics
	AlertsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agromonitor_alerts_created_total",
			Help: "Alerts created by the verifiers",
		},
		[]string{"domain", "rule", "priority"},
	)

	AlertsDeduplicatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agromonitor_alerts_deduplicated_total",
			Help: "Triggered rules skipped because a pending alert already existed",
		},
		[]string{"domain", "rule"},
	)

	AlertsClosedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agromonitor_alerts_closed_total",
			Help: "Alerts resolved or dismissed",
		},
		[]string{"status"},
	)

	// Verification metrics
	VerificationRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agromonitor_verification_runs_total",
			Help: "Aggregate verification runs",
		},
		[]string{"trigger", "result"}, // result: complete, incomplete
	)

	VerificationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "agromonitor_verification_duration_seconds",
			Help:    "Time taken by one aggregate verification per domain",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"domain"},
	)

	VerificationErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agromonitor_verification_errors_total",
			Help: "Collaborator failures during verification",
		},
		[]string{"domain"},
	)

	// Notifier metrics
	NotifyPublishTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agromonitor_notify_publish_total",
			Help: "Alert events published to the broker",
		},
		[]string{"status"}, // status: success, failed
	)

	// Panic recovery
	PanicsRecovered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agromonitor_panics_recovered_total",
			Help: "Total number of panics recovered",
		},
		[]string{"component"},
	)
)
