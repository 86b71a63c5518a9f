package integrators

import (
	"github.com/san-kum/threebody/internal/physics"
	"github.com/san-kum/threebody/internal/vec"
)

// RK4 is the classical fourth-order Runge-Kutta stepper for
// position' = velocity, velocity' = acceleration(state).
//
// Each stage is a separate snapshot of the body set; the bodies passed to
// Step are written only once all four force evaluations are done. Stage
// buffers are kept between calls and resized when the body count changes.
type RK4 struct {
	k1, k2, k3, k4 []physics.Body
	a1, a2, a3, a4 []vec.Vec3
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make([]physics.Body, n)
		r.k2 = make([]physics.Body, n)
		r.k3 = make([]physics.Body, n)
		r.k4 = make([]physics.Body, n)
		r.a1 = make([]vec.Vec3, n)
		r.a2 = make([]vec.Vec3, n)
		r.a3 = make([]vec.Vec3, n)
		r.a4 = make([]vec.Vec3, n)
	}
}

// stage fills dst with bodies advanced by h along the previous stage's
// velocities and accelerations.
func stage(dst, bodies, prev []physics.Body, acc []vec.Vec3, h float64) {
	for i, b := range bodies {
		dst[i] = physics.Body{
			Mass:     b.Mass,
			Position: b.Position.Add(prev[i].Velocity.Scale(h)),
			Velocity: b.Velocity.Add(acc[i].Scale(h)),
			Tag:      b.Tag,
		}
	}
}

func (r *RK4) Step(f ForceModel, bodies []physics.Body, dt float64) {
	n := len(bodies)
	if n == 0 {
		return
	}
	r.ensureScratch(n)

	copy(r.k1, bodies)
	f.Accelerations(r.k1, r.a1)

	stage(r.k2, bodies, r.k1, r.a1, dt*0.5)
	f.Accelerations(r.k2, r.a2)

	stage(r.k3, bodies, r.k2, r.a2, dt*0.5)
	f.Accelerations(r.k3, r.a3)

	stage(r.k4, bodies, r.k3, r.a3, dt)
	f.Accelerations(r.k4, r.a4)

	dt6 := dt / 6.0
	for i := range bodies {
		dp := r.k1[i].Velocity.
			Add(r.k2[i].Velocity.Scale(2)).
			Add(r.k3[i].Velocity.Scale(2)).
			Add(r.k4[i].Velocity)
		dv := r.a1[i].
			Add(r.a2[i].Scale(2)).
			Add(r.a3[i].Scale(2)).
			Add(r.a4[i])

		bodies[i].Position = bodies[i].Position.Add(dp.Scale(dt6))
		bodies[i].Velocity = bodies[i].Velocity.Add(dv.Scale(dt6))
	}
}
