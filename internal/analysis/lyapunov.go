package analysis

import (
	"context"
	"math"

	"github.com/san-kum/threebody/internal/integrators"
	"github.com/san-kum/threebody/internal/physics"
)

// DefaultPerturbation is the initial offset, in metres, applied to the
// first body's x coordinate.
const DefaultPerturbation = 1e3

// LyapunovExponent estimates the largest Lyapunov exponent (1/s) by
// following bodies and a copy offset by d0, renormalising the separation
// back to d0 after every step. A positive value indicates chaos.
//
// λ ≈ (1/t) Σ ln(|δx_k| / d0)
//
// Separation is measured over positions; positions and velocities of the
// copy are scaled together when renormalising. bodies is not modified.
// ctx is checked between steps; on cancellation the estimate so far is
// returned with ctx.Err().
func LyapunovExponent(ctx context.Context, f integrators.ForceModel, integ integrators.Integrator, bodies []physics.Body, dt float64, ticks int, d0 float64) (float64, error) {
	if len(bodies) == 0 || ticks <= 0 || dt <= 0 || d0 <= 0 {
		return 0, nil
	}

	x := physics.CloneBodies(bodies)
	xp := physics.CloneBodies(bodies)
	xp[0].Position.X += d0

	sumLog := 0.0
	steps := 0
	var err error
	for ; steps < ticks; steps++ {
		select {
		case <-ctx.Done():
			err = ctx.Err()
		default:
		}
		if err != nil {
			break
		}

		integ.Step(f, x, dt)
		integ.Step(f, xp, dt)

		sep := separation(x, xp)
		if sep == 0 || math.IsNaN(sep) || math.IsInf(sep, 0) {
			break
		}
		sumLog += math.Log(sep / d0)

		scale := d0 / sep
		for i := range xp {
			xp[i].Position = x[i].Position.Add(xp[i].Position.Sub(x[i].Position).Scale(scale))
			xp[i].Velocity = x[i].Velocity.Add(xp[i].Velocity.Sub(x[i].Velocity).Scale(scale))
		}
	}

	if steps == 0 {
		return 0, err
	}
	return sumLog / (float64(steps) * dt), err
}

func separation(a, b []physics.Body) float64 {
	sum := 0.0
	for i := range a {
		sum += b[i].Position.Sub(a[i].Position).LengthSq()
	}
	return math.Sqrt(sum)
}
