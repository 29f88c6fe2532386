package listing

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts extracted and skipped items per rule set.
type Metrics struct {
	extracted *prometheus.CounterVec
	skipped   *prometheus.CounterVec
}

// NewMetrics creates listing metrics and registers them with reg when non-nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		extracted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catchup_listing_items_total",
			Help: "Listing items successfully extracted.",
		}, []string{"ruleset"}),
		skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catchup_listing_items_skipped_total",
			Help: "Listing items dropped because a required field was missing.",
		}, []string{"ruleset"}),
	}
	if reg != nil {
		reg.MustRegister(m.extracted, m.skipped)
	}
	return m
}

// Observe records one extraction. Safe on a nil receiver.
func (m *Metrics) Observe(ruleset string, extracted, skipped int) {
	if m == nil {
		return
	}
	m.extracted.WithLabelValues(ruleset).Add(float64(extracted))
	m.skipped.WithLabelValues(ruleset).Add(float64(skipped))
}
