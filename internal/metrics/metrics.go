package metrics

import (
	"sort"

	"github.com/san-kum/threebody/internal/physics"
)

// Metric accumulates a scalar over the ticks of a run.
type Metric interface {
	Name() string
	Observe(bodies []physics.Body, t float64)
	Value() float64
	Reset()
}

// Set fans engine ticks out to a group of metrics. It satisfies the engine's
// Observer interface.
type Set struct {
	metrics []Metric
}

func NewSet(ms ...Metric) *Set {
	return &Set{metrics: ms}
}

// Default returns the metrics reported for every run.
func Default(g *physics.Gravity) *Set {
	return NewSet(
		NewEnergyDrift(g),
		NewMomentumDrift(),
		NewMinSeparation(),
	)
}

func (s *Set) Add(m Metric) { s.metrics = append(s.metrics, m) }

func (s *Set) OnTick(bodies []physics.Body, t float64) {
	for _, m := range s.metrics {
		m.Observe(bodies, t)
	}
}

func (s *Set) Reset() {
	for _, m := range s.metrics {
		m.Reset()
	}
}

// Values returns every metric keyed by name.
func (s *Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

// Names returns metric names in sorted order.
func (s *Set) Names() []string {
	names := make([]string, len(s.metrics))
	for i, m := range s.metrics {
		names[i] = m.Name()
	}
	sort.Strings(names)
	return names
}
