package scenario

import (
	"fmt"
	"sort"

	"github.com/san-kum/threebody/internal/physics"
	"github.com/san-kum/threebody/internal/vec"
)

// Display tags used by the built-in scenarios.
const (
	Yellow = "#ffff00"
	Blue   = "#0000ff"
	Red    = "#ff0000"
	Green  = "#00ff00"
)

// Default is the scenario a run uses when none is named.
const Default = "chaotic"

var registry = map[string]Scenario{}

func init() {
	for _, s := range builtins() {
		Register(s)
	}
}

// Register adds or replaces a scenario under s.Name.
func Register(s Scenario) {
	registry[s.Name] = s
}

// Get returns the scenario registered under name.
func Get(name string) (Scenario, error) {
	s, ok := registry[name]
	if !ok {
		return Scenario{}, fmt.Errorf("%w: %s (available: %v)", ErrUnknown, name, Names())
	}
	specs := make([]BodySpec, len(s.Specs))
	copy(specs, s.Specs)
	s.Specs = specs
	return s, nil
}

// Names returns the registered scenario names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// binary is the shared opening of the three-body family: a heavy body at
// rest at the origin and a companion one diagonal away.
func binary() []BodySpec {
	return []BodySpec{
		{Mass: 10.989e30, Position: vec.New(0, 0, 0), Velocity: vec.New(0, 0, 0), Tag: Yellow},
		{Mass: 10.289e30, Position: vec.New(2.796e11, 2.796e11, 0), Velocity: vec.New(20000, -20000, 0), Tag: Blue},
	}
}

func withThird(mass float64, vel vec.Vec3, tag string) []BodySpec {
	return append(binary(), BodySpec{
		Mass:     mass,
		Position: vec.New(-2.796e11, -2.796e11, 0),
		Velocity: vel,
		Tag:      physics.Tag(tag),
	})
}

func builtins() []Scenario {
	return []Scenario{
		{
			Name:        "chaotic",
			Description: "heavy third body thrown out of plane",
			Specs:       withThird(100.289e30, vec.New(-20100, 20300, 100000), Red),
		},
		{
			Name:        "harmonious",
			Description: "mirror-symmetric companions around a central mass",
			Specs:       withThird(10.289e30, vec.New(-20000, 20000, 0), Blue),
		},
		{
			Name:        "unequal",
			Description: "mirrored velocities, third body 30% heavier",
			Specs:       withThird(13.289e30, vec.New(-20000, 20000, 0), Red),
		},
		{
			Name:        "unequal-mild",
			Description: "mirrored velocities, third body 20% heavier",
			Specs:       withThird(12.289e30, vec.New(-20000, 20000, 0), Red),
		},
		{
			Name:        "unequal-slight",
			Description: "mirrored velocities, third body 10% heavier",
			Specs:       withThird(11.289e30, vec.New(-20000, 20000, 0), Red),
		},
		{
			Name:        "scattered",
			Description: "three light stars on skewed planar orbits",
			Specs: []BodySpec{
				{Mass: 2.5e30, Position: vec.New(-2e11, 1e11, 0), Velocity: vec.New(1.2e4, -0.8e4, 0), Tag: Red},
				{Mass: 2.2e30, Position: vec.New(1.5e11, -1e11, 0), Velocity: vec.New(-1e4, 1.5e4, 0), Tag: Blue},
				{Mass: 2.3e30, Position: vec.New(0.5e11, 2e11, 0), Velocity: vec.New(0.5e4, -1.2e4, 0), Tag: Green},
			},
		},
		{
			Name:        "spatial",
			Description: "equal masses started on three axes with out-of-plane velocities",
			Specs: []BodySpec{
				{Mass: 3e30, Position: vec.New(-3e11, 0, 0), Velocity: vec.New(0, -2e4, 5e3), Tag: Red},
				{Mass: 3e30, Position: vec.New(3e11, 0, 0), Velocity: vec.New(0, 2e4, -5e3), Tag: Blue},
				{Mass: 3e30, Position: vec.New(0, 0, 4e11), Velocity: vec.New(-1e4, 0, 0), Tag: Green},
			},
		},
	}
}
