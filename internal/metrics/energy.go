package metrics

import (
	"math"

	"github.com/san-kum/threebody/internal/physics"
)

// EnergyDrift tracks the largest relative change in total energy since the
// first observation.
type EnergyDrift struct {
	name          string
	gravity       *physics.Gravity
	initialEnergy float64
	currentEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift(g *physics.Gravity) *EnergyDrift {
	return &EnergyDrift{
		name:    "energy_drift",
		gravity: g,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(bodies []physics.Body, t float64) {
	energy := e.gravity.Energy(bodies)

	if e.samples == 0 {
		e.initialEnergy = energy
	}

	e.currentEnergy = energy
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

// Current returns the energy at the last observation.
func (e *EnergyDrift) Current() float64 {
	return e.currentEnergy
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

// EnergyHistory keeps the most recent total-energy samples for plotting.
type EnergyHistory struct {
	gravity  *physics.Gravity
	capacity int
	samples  []float64
}

func NewEnergyHistory(g *physics.Gravity, capacity int) *EnergyHistory {
	return &EnergyHistory{
		gravity:  g,
		capacity: capacity,
		samples:  make([]float64, 0, capacity),
	}
}

func (h *EnergyHistory) Name() string { return "energy" }

func (h *EnergyHistory) Observe(bodies []physics.Body, t float64) {
	h.samples = append(h.samples, h.gravity.Energy(bodies))
	if len(h.samples) > h.capacity {
		h.samples = h.samples[1:]
	}
}

// Value returns the latest sample, or 0 before any observation.
func (h *EnergyHistory) Value() float64 {
	if len(h.samples) == 0 {
		return 0
	}
	return h.samples[len(h.samples)-1]
}

// Samples returns a copy of the retained samples, oldest first.
func (h *EnergyHistory) Samples() []float64 {
	out := make([]float64, len(h.samples))
	copy(out, h.samples)
	return out
}

func (h *EnergyHistory) Reset() {
	h.samples = h.samples[:0]
}
