package physics

import "github.com/san-kum/threebody/internal/vec"

// KineticEnergy returns Σ ½·m·|v|².
func KineticEnergy(bodies []Body) float64 {
	ke := 0.0
	for _, b := range bodies {
		ke += 0.5 * b.Mass * b.Velocity.LengthSq()
	}
	return ke
}

// PotentialEnergy returns the pairwise gravitational potential. Pairs inside
// MinDistance are skipped, matching Accelerations.
func (g *Gravity) PotentialEnergy(bodies []Body) float64 {
	pe := 0.0
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			r := bodies[j].Position.Sub(bodies[i].Position).Length()
			if r < g.MinDistance {
				continue
			}
			pe -= g.G * bodies[i].Mass * bodies[j].Mass / r
		}
	}
	return pe
}

// Energy returns total mechanical energy.
func (g *Gravity) Energy(bodies []Body) float64 {
	return KineticEnergy(bodies) + g.PotentialEnergy(bodies)
}

// Momentum returns Σ m·v.
func Momentum(bodies []Body) vec.Vec3 {
	var p vec.Vec3
	for _, b := range bodies {
		p = p.Add(b.Velocity.Scale(b.Mass))
	}
	return p
}

// AngularMomentum returns Σ m·(r × v) about the origin.
func AngularMomentum(bodies []Body) vec.Vec3 {
	var l vec.Vec3
	for _, b := range bodies {
		l = l.Add(b.Position.Cross(b.Velocity).Scale(b.Mass))
	}
	return l
}

// CenterOfMass returns the mass-weighted mean position. An empty or
// massless set yields the origin.
func CenterOfMass(bodies []Body) vec.Vec3 {
	var sum vec.Vec3
	total := 0.0
	for _, b := range bodies {
		sum = sum.Add(b.Position.Scale(b.Mass))
		total += b.Mass
	}
	if total == 0 {
		return vec.Vec3{}
	}
	return sum.Scale(1 / total)
}
