package crosswalk

import "github.com/prometheus/client_golang/prometheus"

// Metrics is optional; a nil *Metrics records nothing.
type Metrics struct {
	Commands     *prometheus.CounterVec
	StateChanges *prometheus.CounterVec
	Countdowns   *prometheus.CounterVec
	Dropped      *prometheus.CounterVec
	State        prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crosswalk_commands_total",
			Help: "Commands executed by the controller.",
		}, []string{"command"}),
		StateChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crosswalk_state_changes_total",
			Help: "Signal states applied to the output lines.",
		}, []string{"state"}),
		Countdowns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crosswalk_countdowns_total",
			Help: "Countdown sequences by result.",
		}, []string{"result"}),
		Dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crosswalk_commands_dropped_total",
			Help: "Inbound commands that never reached the controller.",
		}, []string{"reason"}),
		State: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "crosswalk_state",
			Help: "Current signal state (0 off, 1 walk, 2 dont_walk).",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Commands, m.StateChanges, m.Countdowns, m.Dropped, m.State)
	}
	return m
}

func (m *Metrics) command(c Command) {
	if m == nil {
		return
	}
	m.Commands.WithLabelValues(c.Kind.String()).Inc()
}

func (m *Metrics) state(s State) {
	if m == nil {
		return
	}
	m.StateChanges.WithLabelValues(s.String()).Inc()
	m.State.Set(float64(s))
}

func (m *Metrics) countdown(result string) {
	if m == nil {
		return
	}
	m.Countdowns.WithLabelValues(result).Inc()
}

func (m *Metrics) drop(reason string) {
	if m == nil {
		return
	}
	m.Dropped.WithLabelValues(reason).Inc()
}

// Drop counts a message discarded before it became a command.
func (m *Metrics) Drop(reason string) { m.drop(reason) }
