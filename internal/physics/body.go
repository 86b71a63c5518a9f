package physics

import (
	"math"

	"github.com/san-kum/threebody/internal/vec"
)

// Tag is an opaque display tag carried with a body. The renderer interprets
// it (usually as a colour); physics never reads it.
type Tag string

// Body is a point mass. Mass is in kilograms, Position in meters and
// Velocity in meters per second.
type Body struct {
	Mass     float64
	Position vec.Vec3
	Velocity vec.Vec3
	Tag      Tag
}

// CloneBodies returns an independent copy of bs.
func CloneBodies(bs []Body) []Body {
	c := make([]Body, len(bs))
	copy(c, bs)
	return c
}

// Valid reports whether every body has a finite mass, position and velocity.
func Valid(bs []Body) bool {
	for _, b := range bs {
		if math.IsNaN(b.Mass) || math.IsInf(b.Mass, 0) {
			return false
		}
		if !b.Position.IsFinite() || !b.Velocity.IsFinite() {
			return false
		}
	}
	return true
}
