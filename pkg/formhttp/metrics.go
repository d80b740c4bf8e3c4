package formhttp

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/formguard/pkg/validation"
)

// Metrics records validation outcomes.
type Metrics struct {
	passes      *prometheus.CounterVec
	fieldErrors *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewMetrics registers the validation collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		passes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "formguard",
			Name:      "validations_total",
			Help:      "Validation passes by trigger and outcome.",
		}, []string{"trigger", "result"}),
		fieldErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "formguard",
			Name:      "field_errors_total",
			Help:      "Invalid field occurrences by field identity.",
		}, []string{"field"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "formguard",
			Name:      "validation_duration_seconds",
			Help:      "Time spent building an engine and validating.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"trigger"}),
	}
	reg.MustRegister(m.passes, m.fieldErrors, m.duration)
	return m
}

func (m *Metrics) observe(trigger string, valid bool, invalid []validation.FieldID, seconds float64) {
	if m == nil {
		return
	}
	result := "valid"
	if !valid {
		result = "invalid"
	}
	m.passes.WithLabelValues(trigger, result).Inc()
	for _, f := range invalid {
		m.fieldErrors.WithLabelValues(f.String()).Inc()
	}
	m.duration.WithLabelValues(trigger).Observe(seconds)
}
