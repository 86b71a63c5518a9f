package integrators

import (
	"errors"
	"fmt"

	"github.com/san-kum/threebody/internal/physics"
	"github.com/san-kum/threebody/internal/vec"
)

// ForceModel fills out with one acceleration per body, in body order.
type ForceModel interface {
	Accelerations(bodies []physics.Body, out []vec.Vec3)
}

// Integrator advances bodies in place by one fixed step dt.
type Integrator interface {
	Step(f ForceModel, bodies []physics.Body, dt float64)
}

// Default is the stepper used when none is named.
const Default = "rk4"

// ErrUnknown is returned by ByName for an unregistered stepper.
var ErrUnknown = errors.New("integrators: unknown integrator")

// Names lists the steppers ByName accepts.
func Names() []string { return []string{"euler", "rk4", "verlet"} }

// ByName returns a fresh stepper. The empty name selects Default.
func ByName(name string) (Integrator, error) {
	switch name {
	case "", "rk4":
		return NewRK4(), nil
	case "verlet":
		return NewVerlet(), nil
	case "euler":
		return NewEuler(), nil
	}
	return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknown, name, Names())
}
