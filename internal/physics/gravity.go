package physics

import "github.com/san-kum/threebody/internal/vec"

const (
	// G is the Newtonian constant of gravitation in m³/(kg·s²).
	G = 6.67430e-11

	// MinDistance is the pair separation, in meters, below which the force
	// between two bodies is treated as zero.
	MinDistance = 1e6
)

// Gravity computes Newtonian accelerations over an ordered body set.
type Gravity struct {
	G           float64
	MinDistance float64
}

func NewGravity() *Gravity {
	return &Gravity{
		G:           G,
		MinDistance: MinDistance,
	}
}

// Accelerations writes the acceleration of every body into out, which must
// have len(bodies) entries. out is zeroed first; each unordered pair is
// evaluated once and applied to both bodies with opposite sign.
func (g *Gravity) Accelerations(bodies []Body, out []vec.Vec3) {
	n := len(bodies)
	for i := range out[:n] {
		out[i] = vec.Vec3{}
	}

	for i := 0; i < n; i++ {
		bi := bodies[i]

		for j := i + 1; j < n; j++ {
			bj := bodies[j]

			r := bj.Position.Sub(bi.Position)
			dist := r.Length()
			if dist < g.MinDistance {
				continue
			}

			force := g.G * bi.Mass * bj.Mass / (dist * dist)
			dir := r.Normalize()

			out[i] = out[i].Add(dir.Scale(force / bi.Mass))
			out[j] = out[j].Sub(dir.Scale(force / bj.Mass))
		}
	}
}

// Compute is the allocating form of Accelerations.
func (g *Gravity) Compute(bodies []Body) []vec.Vec3 {
	out := make([]vec.Vec3, len(bodies))
	g.Accelerations(bodies, out)
	return out
}
