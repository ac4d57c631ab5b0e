package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	providerOutcomes *prometheus.CounterVec
	resolutions      *prometheus.CounterVec
	webhookEvents    *prometheus.CounterVec
	errorsTotal      *prometheus.CounterVec
	latency          *prometheus.HistogramVec
}

// New creates a recorder registered on reg, or on the default registry
// when reg is nil.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Recorder{
		providerOutcomes: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "raptor_provider_outcomes_total",
				Help: "Pricing provider calls by provider and outcome",
			},
			[]string{"provider", "outcome"},
		),
		resolutions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "raptor_market_value_resolutions_total",
				Help: "Market value resolutions by final outcome",
			},
			[]string{"outcome"},
		),
		webhookEvents: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "raptor_webhook_events_total",
				Help: "Billing webhook events by type and handling result",
			},
			[]string{"type", "result"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "raptor_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "raptor_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

func (r *Recorder) RecordProviderOutcome(provider, outcome string) {
	r.providerOutcomes.WithLabelValues(provider, outcome).Inc()
}

// RecordResolution records the final outcome of one market value request.
func (r *Recorder) RecordResolution(outcome string) {
	r.resolutions.WithLabelValues(outcome).Inc()
}

func (r *Recorder) RecordWebhookEvent(eventType, result string) {
	r.webhookEvents.WithLabelValues(eventType, result).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordProviderOutcome(string, string) {}
func (Nop) RecordResolution(string)              {}
func (Nop) RecordWebhookEvent(string, string)    {}
func (Nop) RecordError(string)                   {}
func (Nop) RecordLatency(string, float64)        {}
