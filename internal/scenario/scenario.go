// Package scenario holds the named initial configurations a run can start
// from, and reads and writes them as YAML.
package scenario

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/threebody/internal/physics"
	"github.com/san-kum/threebody/internal/vec"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknown indicates a scenario name missing from the registry.
	ErrUnknown = errors.New("scenario: unknown scenario")

	// ErrMalformed indicates a scenario document that cannot describe bodies.
	ErrMalformed = errors.New("scenario: malformed scenario")
)

// BodySpec is one body's initial condition.
type BodySpec struct {
	Mass     float64
	Position vec.Vec3
	Velocity vec.Vec3
	Tag      physics.Tag
}

// Scenario is a named, ordered list of initial conditions. Body order is
// the identity order for the run started from it.
type Scenario struct {
	Name        string
	Description string
	Specs       []BodySpec
}

// Bodies returns a fresh body slice built from the specs.
func (s Scenario) Bodies() []physics.Body {
	bodies := make([]physics.Body, len(s.Specs))
	for i, sp := range s.Specs {
		bodies[i] = physics.Body{
			Mass:     sp.Mass,
			Position: sp.Position,
			Velocity: sp.Velocity,
			Tag:      sp.Tag,
		}
	}
	return bodies
}

// FromBodies captures the current bodies as a new scenario, e.g. to resume a
// run from a later state.
func FromBodies(name, description string, bodies []physics.Body) Scenario {
	specs := make([]BodySpec, len(bodies))
	for i, b := range bodies {
		specs[i] = BodySpec{Mass: b.Mass, Position: b.Position, Velocity: b.Velocity, Tag: b.Tag}
	}
	return Scenario{Name: name, Description: description, Specs: specs}
}

type fileBody struct {
	Mass     float64   `yaml:"mass"`
	Position []float64 `yaml:"position,flow"`
	Velocity []float64 `yaml:"velocity,flow"`
	Tag      string    `yaml:"tag,omitempty"`
}

type fileScenario struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Bodies      []fileBody `yaml:"bodies"`
}

// Parse decodes a YAML scenario document.
func Parse(data []byte) (Scenario, error) {
	var f fileScenario
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Scenario{}, fmt.Errorf("scenario: decode: %w", err)
	}
	if len(f.Bodies) == 0 {
		return Scenario{}, fmt.Errorf("%w: no bodies", ErrMalformed)
	}

	sc := Scenario{Name: f.Name, Description: f.Description, Specs: make([]BodySpec, len(f.Bodies))}
	for i, b := range f.Bodies {
		pos, err := vec.FromSlice(b.Position)
		if err != nil {
			return Scenario{}, fmt.Errorf("%w: body %d position: %v", ErrMalformed, i, err)
		}
		vel, err := vec.FromSlice(b.Velocity)
		if err != nil {
			return Scenario{}, fmt.Errorf("%w: body %d velocity: %v", ErrMalformed, i, err)
		}
		sc.Specs[i] = BodySpec{Mass: b.Mass, Position: pos, Velocity: vel, Tag: physics.Tag(b.Tag)}
	}
	return sc, nil
}

// Marshal encodes s as a YAML document.
func Marshal(s Scenario) ([]byte, error) {
	f := fileScenario{Name: s.Name, Description: s.Description, Bodies: make([]fileBody, len(s.Specs))}
	for i, sp := range s.Specs {
		p, v := sp.Position.Array(), sp.Velocity.Array()
		f.Bodies[i] = fileBody{
			Mass:     sp.Mass,
			Position: p[:],
			Velocity: v[:],
			Tag:      string(sp.Tag),
		}
	}
	return yaml.Marshal(f)
}

func Load(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, err
	}
	sc, err := Parse(data)
	if err != nil {
		return Scenario{}, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

func Save(path string, s Scenario) error {
	data, err := Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
