// Package metrics declares the Prometheus collectors exposed on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks API request latency by route and status.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// RemindersDispatched counts reminder events published by the scheduler.
	RemindersDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reminders_dispatched_total",
			Help: "Total number of reminder events published to the broker",
		},
		[]string{"kind"},
	)

	// TelegramMessagesSent counts outbound Telegram messages by outcome.
	TelegramMessagesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telegram_messages_sent_total",
			Help: "Total number of Telegram messages sent",
		},
		[]string{"status"}, // status: success, failed
	)
)

// RecordHTTPRequestDuration records one served request.
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// IncrementRemindersDispatched counts one published reminder event.
func IncrementRemindersDispatched(kind string) {
	RemindersDispatched.WithLabelValues(kind).Inc()
}

// IncrementTelegramMessagesSent counts one Telegram send attempt.
func IncrementTelegramMessagesSent(status string) {
	TelegramMessagesSent.WithLabelValues(status).Inc()
}
