package metrics

import (
	"math"

	"github.com/san-kum/threebody/internal/physics"
	"github.com/san-kum/threebody/internal/vec"
)

// MomentumDrift tracks the largest change in total linear momentum relative
// to Σ m·|v| at the first observation.
type MomentumDrift struct {
	initial  vec.Vec3
	scale    float64
	maxDrift float64
	samples  int
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{}
}

func (m *MomentumDrift) Name() string { return "momentum_drift" }

func (m *MomentumDrift) Observe(bodies []physics.Body, t float64) {
	p := physics.Momentum(bodies)
	if m.samples == 0 {
		m.initial = p
		for _, b := range bodies {
			m.scale += b.Mass * b.Velocity.Length()
		}
	}
	m.samples++

	if m.scale != 0 {
		m.maxDrift = math.Max(m.maxDrift, p.Sub(m.initial).Length()/m.scale)
	}
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() {
	m.initial = vec.Vec3{}
	m.scale = 0
	m.maxDrift = 0
	m.samples = 0
}

// MinSeparation tracks the closest approach between any two bodies.
type MinSeparation struct {
	min float64
}

func NewMinSeparation() *MinSeparation {
	return &MinSeparation{min: math.Inf(1)}
}

func (m *MinSeparation) Name() string { return "min_separation" }

func (m *MinSeparation) Observe(bodies []physics.Body, t float64) {
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			d := bodies[j].Position.Sub(bodies[i].Position).Length()
			if d < m.min {
				m.min = d
			}
		}
	}
}

// Value returns the closest approach in meters, or 0 when nothing has been
// observed.
func (m *MinSeparation) Value() float64 {
	if math.IsInf(m.min, 1) {
		return 0
	}
	return m.min
}

func (m *MinSeparation) Reset() { m.min = math.Inf(1) }
