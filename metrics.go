package channel

import "github.com/prometheus/client_golang/prometheus"

const (
	outcomeDelivered = "delivered"
	outcomeBuffered  = "buffered"
	outcomeDropped   = "dropped"
)

// Metrics counts what happens to values put into channels.
// A single Metrics can be shared by many channels; they are told apart by
// the name given with [WithName].
type Metrics struct {
	values *prometheus.CounterVec
	closes *prometheus.CounterVec
}

// NewMetrics creates a Metrics and registers its collectors with reg.
// If reg is nil, the collectors are not registered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		values: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "channel",
			Name:      "values_total",
			Help:      "Values put into a channel, by outcome.",
		}, []string{"channel", "outcome"}),
		closes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "channel",
			Name:      "closes_total",
			Help:      "Number of times a channel was closed.",
		}, []string{"channel"}),
	}
	if reg != nil {
		reg.MustRegister(m.values, m.closes)
	}
	return m
}

// Collectors returns the collectors of m, for custom registration.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.values, m.closes}
}

func (m *Metrics) value(name, outcome string) {
	if m == nil {
		return
	}
	m.values.WithLabelValues(name, outcome).Inc()
}

func (m *Metrics) close(name string) {
	if m == nil {
		return
	}
	m.closes.WithLabelValues(name).Inc()
}
