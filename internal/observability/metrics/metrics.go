package metrics

import "github.com/prometheus/client_golang/prometheus"

// IntakeMetrics exposes counters/histograms for the lead intake flow.
type IntakeMetrics struct {
	submissionsTotal *prometheus.CounterVec
	emailsTotal      *prometheus.CounterVec
	intakeLatency    *prometheus.HistogramVec
}

func NewIntakeMetrics(reg prometheus.Registerer) *IntakeMetrics {
	m := &IntakeMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sextosistema",
			Subsystem: "leads",
			Name:      "submissions_total",
			Help:      "Total form submissions by outcome",
		}, []string{"endpoint", "outcome"}),
		emailsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sextosistema",
			Subsystem: "notify",
			Name:      "emails_total",
			Help:      "Total outbound emails by kind and status",
		}, []string{"kind", "status"}),
		intakeLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "sextosistema",
			Subsystem: "leads",
			Name:      "intake_latency_seconds",
			Help:      "Latency of lead intake handling",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.emailsTotal, m.intakeLatency)
	return m
}

// ObserveSubmission counts one submission. Outcomes: created, invalid,
// duplicate, error.
func (m *IntakeMetrics) ObserveSubmission(endpoint, outcome string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(endpoint, outcome).Inc()
}

// ObserveEmail counts one outbound email. Kinds: admin, confirmation.
func (m *IntakeMetrics) ObserveEmail(kind, status string) {
	if m == nil {
		return
	}
	m.emailsTotal.WithLabelValues(kind, status).Inc()
}

// ObserveIntakeLatency records handling time for one request.
func (m *IntakeMetrics) ObserveIntakeLatency(endpoint string, seconds float64) {
	if m == nil {
		return
	}
	m.intakeLatency.WithLabelValues(endpoint).Observe(seconds)
}
