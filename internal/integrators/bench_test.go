package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/threebody/internal/physics"
	"github.com/san-kum/threebody/internal/vec"
)

func ringBodies(n int) []physics.Body {
	bodies := make([]physics.Body, n)
	for i := range bodies {
		angle := float64(i) * 2 * math.Pi / float64(n)
		bodies[i] = physics.Body{
			Mass:     1e30,
			Position: vec.New(2e11*math.Cos(angle), 2e11*math.Sin(angle), 0),
			Velocity: vec.New(-2e4*math.Sin(angle), 2e4*math.Cos(angle), 0),
		}
	}
	return bodies
}

func BenchmarkRK4_ThreeBody(b *testing.B) {
	integ := NewRK4()
	g := physics.NewGravity()
	bodies := ringBodies(3)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		integ.Step(g, bodies, 43200)
	}
}

func BenchmarkRK4_NBody32(b *testing.B) {
	integ := NewRK4()
	g := physics.NewGravity()
	bodies := ringBodies(32)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		integ.Step(g, bodies, 43200)
	}
}

func BenchmarkVerlet_ThreeBody(b *testing.B) {
	integ := NewVerlet()
	g := physics.NewGravity()
	bodies := ringBodies(3)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		integ.Step(g, bodies, 43200)
	}
}

func BenchmarkEuler_ThreeBody(b *testing.B) {
	integ := NewEuler()
	g := physics.NewGravity()
	bodies := ringBodies(3)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		integ.Step(g, bodies, 43200)
	}
}
