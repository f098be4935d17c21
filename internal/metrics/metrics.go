package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Исходы обращения к провайдеру данных.
const (
	OutcomeOK    = "ok"
	OutcomeEmpty = "empty"
	OutcomeError = "error"
)

var (
	TurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviebot_turns_total",
			Help: "Total number of dialog turns handled, by intent, phase and resulting dialog action",
		},
		[]string{"intent", "phase", "action"},
	)

	TurnDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "moviebot_turn_duration_seconds",
			Help:    "Duration of dialog turn handling in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"intent"},
	)

	ProviderRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviebot_provider_requests_total",
			Help: "Total number of outbound provider requests, by provider, call and outcome",
		},
		[]string{"provider", "call", "outcome"},
	)
)

// ObserveProvider учитывает одно обращение к провайдеру.
func ObserveProvider(provider, call, outcome string) {
	ProviderRequests.WithLabelValues(provider, call, outcome).Inc()
}
