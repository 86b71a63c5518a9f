package integrators

import (
	"github.com/san-kum/threebody/internal/physics"
	"github.com/san-kum/threebody/internal/vec"
)

// Verlet is the velocity Verlet stepper: second order and symplectic, so
// energy error stays bounded on long orbits instead of growing.
type Verlet struct {
	acc  []vec.Vec3
	next []vec.Vec3
}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) ensureScratch(n int) {
	if len(v.acc) != n {
		v.acc = make([]vec.Vec3, n)
		v.next = make([]vec.Vec3, n)
	}
}

func (v *Verlet) Step(f ForceModel, bodies []physics.Body, dt float64) {
	n := len(bodies)
	if n == 0 {
		return
	}
	v.ensureScratch(n)

	f.Accelerations(bodies, v.acc)
	halfDt2 := 0.5 * dt * dt
	for i := range bodies {
		bodies[i].Position = bodies[i].Position.
			Add(bodies[i].Velocity.Scale(dt)).
			Add(v.acc[i].Scale(halfDt2))
	}

	f.Accelerations(bodies, v.next)
	halfDt := 0.5 * dt
	for i := range bodies {
		bodies[i].Velocity = bodies[i].Velocity.Add(v.acc[i].Add(v.next[i]).Scale(halfDt))
	}
}
