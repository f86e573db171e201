package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// HTTPRequestDuration tracks HTTP request latency, shared across handlers.
var HTTPRequestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "godlife",
		Subsystem: "api",
		Name:      "request_duration_seconds",
		Help:      "HTTP request duration in seconds.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "path", "status"},
)

// PlansGeneratedTotal counts successful generate_plan calls (C4).
var PlansGeneratedTotal = prometheus.NewCounter(prometheus.CounterOpts{
	Namespace: "godlife",
	Subsystem: "exerciseplan",
	Name:      "plans_generated_total",
	Help:      "Number of exercise plans generated.",
})

// SetResultsSubmittedTotal counts submit_set_result calls by result (C4).
var SetResultsSubmittedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "godlife",
	Subsystem: "exerciseplan",
	Name:      "set_results_submitted_total",
	Help:      "Number of set results submitted, labeled by result.",
}, []string{"result"})

// NotificationsScheduledTotal counts notifications created by kind (C5).
var NotificationsScheduledTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "godlife",
	Subsystem: "notification",
	Name:      "notifications_scheduled_total",
	Help:      "Number of notifications created, labeled by kind.",
}, []string{"kind"})

// NotificationRetriesTotal counts mark_as_retried calls (C5).
var NotificationRetriesTotal = prometheus.NewCounter(prometheus.CounterOpts{
	Namespace: "godlife",
	Subsystem: "notification",
	Name:      "notification_retries_total",
	Help:      "Number of notifications marked for retry.",
})

// OutboxEventsAppendedTotal counts outbox appends by aggregate type (C3).
var OutboxEventsAppendedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "godlife",
	Subsystem: "outbox",
	Name:      "events_appended_total",
	Help:      "Number of outbox events appended, labeled by aggregate_type.",
}, []string{"aggregate_type"})

// OutboxEventsLeasedTotal counts events returned by lease_pending (C3).
var OutboxEventsLeasedTotal = prometheus.NewCounter(prometheus.CounterOpts{
	Namespace: "godlife",
	Subsystem: "outbox",
	Name:      "events_leased_total",
	Help:      "Number of outbox events leased for delivery.",
})

// OutboxEventsFailedTotal counts mark_failed calls (C3).
var OutboxEventsFailedTotal = prometheus.NewCounter(prometheus.CounterOpts{
	Namespace: "godlife",
	Subsystem: "outbox",
	Name:      "events_failed_total",
	Help:      "Number of outbox events marked failed.",
})

// WebhookEventsReceivedTotal counts inbound webhook events by provider (C7).
var WebhookEventsReceivedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "godlife",
	Subsystem: "webhook",
	Name:      "events_received_total",
	Help:      "Number of webhook events received, labeled by provider.",
}, []string{"provider"})

// WebhookEventsDuplicateTotal counts deduplicated webhook events (C7).
var WebhookEventsDuplicateTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "godlife",
	Subsystem: "webhook",
	Name:      "events_duplicate_total",
	Help:      "Number of webhook events recognized as duplicates, labeled by provider.",
}, []string{"provider"})

// NewMetricsRegistry creates a Prometheus registry with Go/process
// collectors and every counter/histogram declared in this package.
func NewMetricsRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		HTTPRequestDuration,
		PlansGeneratedTotal,
		SetResultsSubmittedTotal,
		NotificationsScheduledTotal,
		NotificationRetriesTotal,
		OutboxEventsAppendedTotal,
		OutboxEventsLeasedTotal,
		OutboxEventsFailedTotal,
		WebhookEventsReceivedTotal,
		WebhookEventsDuplicateTotal,
	)
	return reg
}
