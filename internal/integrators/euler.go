package integrators

import (
	"github.com/san-kum/threebody/internal/physics"
	"github.com/san-kum/threebody/internal/vec"
)

// Euler is the explicit first-order stepper. It drifts quickly on orbits
// and exists for comparison.
type Euler struct {
	acc []vec.Vec3
}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(f ForceModel, bodies []physics.Body, dt float64) {
	if len(e.acc) != len(bodies) {
		e.acc = make([]vec.Vec3, len(bodies))
	}
	f.Accelerations(bodies, e.acc)
	for i := range bodies {
		bodies[i].Position = bodies[i].Position.Add(bodies[i].Velocity.Scale(dt))
		bodies[i].Velocity = bodies[i].Velocity.Add(e.acc[i].Scale(dt))
	}
}
