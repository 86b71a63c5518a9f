package runner

import "github.com/san-kum/threebody/internal/physics"

// Series samples total energy and each body's distance from the centre of
// mass every Every ticks, for plotting.
type Series struct {
	Every     int
	Energy    []float64
	Distances [][]float64

	gravity *physics.Gravity
	seen    int
}

// NewSeries samples every `every` ticks (at least 1).
func NewSeries(g *physics.Gravity, every int) *Series {
	if every < 1 {
		every = 1
	}
	return &Series{Every: every, gravity: g}
}

func (s *Series) OnTick(bodies []physics.Body, t float64) {
	s.seen++
	if s.seen%s.Every != 0 {
		return
	}
	s.Energy = append(s.Energy, s.gravity.Energy(bodies))

	if s.Distances == nil {
		s.Distances = make([][]float64, len(bodies))
	}
	com := physics.CenterOfMass(bodies)
	for i, b := range bodies {
		if i < len(s.Distances) {
			s.Distances[i] = append(s.Distances[i], b.Position.Sub(com).Length())
		}
	}
}

// Len is the number of samples taken.
func (s *Series) Len() int { return len(s.Energy) }
