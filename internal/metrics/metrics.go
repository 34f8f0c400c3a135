package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration records request latency by route template.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// FocusEventsTotal counts recorded focus events. event_type is free-form
	// client input, so only its loss classification is used as a label.
	FocusEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "proctor_focus_events_total",
			Help: "Total number of recorded focus events",
		},
		[]string{"kind"},
	)

	ScreenshotsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "proctor_screenshots_total",
			Help: "Total number of stored screenshots",
		},
	)

	// RelayTotal counts Telegram relay attempts by outcome (sent, failed, disabled).
	RelayTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "proctor_telegram_relay_total",
			Help: "Total number of screenshot relays to Telegram",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(RequestDuration, FocusEventsTotal, ScreenshotsTotal, RelayTotal)
}
