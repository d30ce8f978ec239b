package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	soulmateGenerations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sidus_soulmate_generations_total",
			Help: "Soulmate generation attempts by outcome.",
		},
		[]string{"outcome"},
	)
	externalCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sidus_external_call_duration_seconds",
			Help:    "Latency of calls to external generators, storage and billing.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 40, 60},
		},
		[]string{"service", "operation"},
	)
)

func init() {
	prometheus.MustRegister(soulmateGenerations, externalCallDuration)
}

// Generation outcomes.
const (
	outcomeSuccess       = "success"
	outcomeCooldown      = "cooldown"
	outcomeInvalid       = "invalid"
	outcomeFailed        = "failed"
	outcomeMisconfigured = "misconfigured"
)

func observeExternal(service, operation string, start time.Time) {
	externalCallDuration.WithLabelValues(service, operation).Observe(time.Since(start).Seconds())
}
