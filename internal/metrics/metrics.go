// Package metrics provides Prometheus metrics for the relay server
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the relay's collectors. Each instance owns its registry so
// several servers can coexist in one process (tests).
type Metrics struct {
	Registry *prometheus.Registry

	ChatRequestsTotal     *prometheus.CounterVec
	CompletionDuration    prometheus.Histogram
	SummariesTotal        *prometheus.CounterVec
	NotificationsTotal    *prometheus.CounterVec
	NotificationsInFlight prometheus.Gauge
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		ChatRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "intake_chat_requests_total",
				Help: "Total number of chat relay requests",
			},
			[]string{"status"},
		),

		CompletionDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "intake_completion_duration_seconds",
				Help:    "Duration of completion API calls in seconds",
				Buckets: []float64{.25, .5, 1, 2.5, 5, 10, 20, 40, 80},
			},
		),

		SummariesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "intake_summaries_total",
				Help: "Internal summaries extracted from replies",
			},
			[]string{"completeness"},
		),

		NotificationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "intake_notifications_total",
				Help: "Notification dispatch outcomes",
			},
			[]string{"outcome"},
		),

		NotificationsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "intake_notifications_in_flight",
				Help: "Notifications currently being delivered",
			},
		),
	}
}

func (m *Metrics) RecordChatRequest(status string) {
	m.ChatRequestsTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) RecordCompletion(d time.Duration) {
	m.CompletionDuration.Observe(d.Seconds())
}

func (m *Metrics) RecordSummary(complete bool) {
	label := "partial"
	if complete {
		label = "complete"
	}
	m.SummariesTotal.WithLabelValues(label).Inc()
}

func (m *Metrics) RecordNotification(outcome string) {
	m.NotificationsTotal.WithLabelValues(outcome).Inc()
}
