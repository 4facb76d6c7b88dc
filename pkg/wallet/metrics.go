package wallet

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Operation outcome labels.
const (
	OutcomeCompleted = "completed"
	OutcomeTimeout   = "timeout"
	OutcomeFailed    = "failed"
)

// Metrics are the actor's Prometheus collectors. A nil *Metrics records nothing.
type Metrics struct {
	commands       *prometheus.CounterVec
	preInitDropped prometheus.Counter
	events         *prometheus.CounterVec
	eventsDropped  *prometheus.CounterVec
	pending        prometheus.Gauge
	outcomes       *prometheus.CounterVec
	reentered      prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg skips registration.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mintshell",
			Subsystem: "wallet",
			Name:      "commands_total",
			Help:      "Commands handled by the actor, by kind.",
		}, []string{"kind"}),
		preInitDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mintshell",
			Subsystem: "wallet",
			Name:      "commands_dropped_before_init_total",
			Help:      "Commands dropped because no session was open.",
		}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mintshell",
			Subsystem: "wallet",
			Name:      "events_delivered_total",
			Help:      "Events accepted by the sink, by kind.",
		}, []string{"kind"}),
		eventsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mintshell",
			Subsystem: "wallet",
			Name:      "events_dropped_total",
			Help:      "Events the sink did not accept, by kind.",
		}, []string{"kind"}),
		pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "mintshell",
			Subsystem: "wallet",
			Name:      "pending_operations",
			Help:      "Operations awaiting confirmation.",
		}),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mintshell",
			Subsystem: "wallet",
			Name:      "operation_outcomes_total",
			Help:      "Tracked operations that reached a terminal state, by outcome.",
		}, []string{"outcome"}),
		reentered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mintshell",
			Subsystem: "wallet",
			Name:      "handler_reentries_total",
			Help:      "Handlers that started while another was running. Always zero in a healthy actor.",
		}),
	}

	if reg == nil {
		return m, nil
	}

	var errs []error
	for _, c := range m.collectors() {
		if err := reg.Register(c); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.commands, m.preInitDropped, m.events, m.eventsDropped,
		m.pending, m.outcomes, m.reentered,
	}
}

func (m *Metrics) commandHandled(kind CommandKind) {
	if m != nil {
		m.commands.WithLabelValues(string(kind)).Inc()
	}
}

func (m *Metrics) commandDroppedBeforeInit() {
	if m != nil {
		m.preInitDropped.Inc()
	}
}

func (m *Metrics) eventDelivered(kind EventKind) {
	if m != nil {
		m.events.WithLabelValues(string(kind)).Inc()
	}
}

func (m *Metrics) eventDropped(kind EventKind) {
	if m != nil {
		m.eventsDropped.WithLabelValues(string(kind)).Inc()
	}
}

func (m *Metrics) setPending(n int) {
	if m != nil {
		m.pending.Set(float64(n))
	}
}

func (m *Metrics) operationOutcome(outcome string) {
	if m != nil {
		m.outcomes.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) handlerReentered() {
	if m != nil {
		m.reentered.Inc()
	}
}
