package di

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// Monitor is notified when a Behavior changes the runtime behavior
// of a definition. It is notified exactly once per wrapping decision,
// with the name of the definition and the descriptor of the behavior.
type Monitor interface {
	ChangedBehavior(name, descriptor string)
}

// NopMonitor is a Monitor that ignores the notifications.
type NopMonitor struct{}

func (m *NopMonitor) ChangedBehavior(name, descriptor string) {}

// LogMonitor is a Monitor that writes the notifications
// with a zerolog.Logger.
type LogMonitor struct {
	L zerolog.Logger
}

func (m *LogMonitor) ChangedBehavior(name, descriptor string) {
	m.L.Debug().
		Str("definition", name).
		Str("behavior", descriptor).
		Msg("definition behavior changed")
}

// MetricsMonitor is a Monitor that counts the behavior changes
// in a prometheus counter, with one label per behavior descriptor.
type MetricsMonitor struct {
	changes *prometheus.CounterVec
}

// NewMetricsMonitor creates a MetricsMonitor and registers
// its collector on the given prometheus registerer.
func NewMetricsMonitor(reg prometheus.Registerer) (*MetricsMonitor, error) {
	changes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "di",
		Name:      "behavior_changes_total",
		Help:      "Number of definitions wrapped by a behavior.",
	}, []string{"behavior"})

	if err := reg.Register(changes); err != nil {
		return nil, err
	}

	return &MetricsMonitor{changes: changes}, nil
}

func (m *MetricsMonitor) ChangedBehavior(name, descriptor string) {
	m.changes.WithLabelValues(descriptor).Inc()
}
