package engine

import (
	"errors"
	"fmt"
)

// Configuration errors returned by Init.
var (
	// ErrInvalidMass indicates a body whose mass is not a positive finite number.
	ErrInvalidMass = errors.New("engine: body mass must be positive")

	// ErrEmptyScenario indicates a scenario with no bodies.
	ErrEmptyScenario = errors.New("engine: scenario has no bodies")
)

// ConfigError wraps an Init failure with the offending body.
type ConfigError struct {
	Scenario string
	Index    int
	Mass     float64
	Wrapped  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v (scenario %q, body %d, mass %g)", e.Wrapped, e.Scenario, e.Index, e.Mass)
}

func (e *ConfigError) Unwrap() error {
	return e.Wrapped
}
