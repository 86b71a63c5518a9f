package engine

import (
	"math"

	"github.com/san-kum/threebody/internal/config"
	"github.com/san-kum/threebody/internal/integrators"
	"github.com/san-kum/threebody/internal/physics"
	"github.com/san-kum/threebody/internal/scenario"
	"github.com/san-kum/threebody/internal/trail"
)

// Observer is notified after every tick with a copy of the new bodies and
// the simulated time in seconds.
type Observer interface {
	OnTick(bodies []physics.Body, t float64)
}

type Engine struct {
	dt         float64
	gravity    *physics.Gravity
	integrator integrators.Integrator
	projector  trail.Projector
	trailCap   int
	observers  []Observer

	scenario scenario.Scenario
	bodies   []physics.Body
	trails   []*trail.Buffer
	ticks    int
	time     float64
}

type Option func(*Engine)

func WithDt(dt float64) Option { return func(e *Engine) { e.dt = dt } }

func WithGravity(g *physics.Gravity) Option { return func(e *Engine) { e.gravity = g } }

func WithIntegrator(i integrators.Integrator) Option { return func(e *Engine) { e.integrator = i } }

func WithProjector(p trail.Projector) Option { return func(e *Engine) { e.projector = p } }

func WithTrailCapacity(n int) Option { return func(e *Engine) { e.trailCap = n } }

// New returns an engine with the default constants, adjusted by opts. The
// engine holds no bodies until Init is called.
func New(opts ...Option) *Engine {
	e := &Engine{
		dt:         config.DefaultDt,
		gravity:    physics.NewGravity(),
		integrator: integrators.NewRK4(),
		projector: trail.Projector{
			Scale:  config.DefaultScale,
			Width:  config.DefaultWidth,
			Height: config.DefaultHeight,
		},
		trailCap: trail.DefaultCapacity,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FromConfig builds an engine from the constants in cfg, which must pass
// Validate.
func FromConfig(cfg *config.Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	integ, err := cfg.NewIntegrator()
	if err != nil {
		return nil, err
	}
	return New(
		WithDt(cfg.Dt),
		WithGravity(cfg.Gravity()),
		WithIntegrator(integ),
		WithProjector(cfg.Projector()),
		WithTrailCapacity(cfg.TrailCapacity),
	), nil
}

func (e *Engine) AddObserver(o Observer) { e.observers = append(e.observers, o) }

// Init replaces the engine state with the bodies of sc and empties all
// trails. On error the engine is left with no bodies.
func (e *Engine) Init(sc scenario.Scenario) error {
	e.bodies, e.trails = nil, nil
	e.ticks, e.time = 0, 0

	if len(sc.Specs) == 0 {
		return ErrEmptyScenario
	}
	for i, sp := range sc.Specs {
		if !(sp.Mass > 0) || math.IsInf(sp.Mass, 0) {
			return &ConfigError{Scenario: sc.Name, Index: i, Mass: sp.Mass, Wrapped: ErrInvalidMass}
		}
	}

	sc.Specs = append([]scenario.BodySpec(nil), sc.Specs...)
	e.scenario = sc
	e.bodies = sc.Bodies()
	e.trails = make([]*trail.Buffer, len(e.bodies))
	for i := range e.trails {
		e.trails[i] = trail.NewBuffer(e.trailCap)
	}
	return nil
}

// Restart re-initialises the engine from the scenario last passed to Init.
func (e *Engine) Restart() error {
	return e.Init(e.scenario)
}

// Tick advances every body by one step and appends each body's projected
// position to its trail. It does nothing before a successful Init.
func (e *Engine) Tick() {
	if len(e.bodies) == 0 {
		return
	}

	e.integrator.Step(e.gravity, e.bodies, e.dt)
	for i, b := range e.bodies {
		e.trails[i].Push(e.projector.Project(b.Position))
	}
	e.ticks++
	e.time += e.dt

	if len(e.observers) > 0 {
		snap := physics.CloneBodies(e.bodies)
		for _, o := range e.observers {
			o.OnTick(snap, e.time)
		}
	}
}

// Bodies returns a copy of the current bodies in identity order.
func (e *Engine) Bodies() []physics.Body {
	return physics.CloneBodies(e.bodies)
}

// Trail returns a copy of body i's trail, oldest point first, or nil when i
// is out of range.
func (e *Engine) Trail(i int) []trail.Point {
	if i < 0 || i >= len(e.trails) {
		return nil
	}
	return e.trails[i].Points()
}

// Len returns the number of bodies.
func (e *Engine) Len() int { return len(e.bodies) }

// Ticks returns the number of ticks since the last Init.
func (e *Engine) Ticks() int { return e.ticks }

// Time returns simulated seconds since the last Init.
func (e *Engine) Time() float64 { return e.time }

func (e *Engine) Dt() float64                { return e.dt }
func (e *Engine) Scenario() string           { return e.scenario.Name }
func (e *Engine) Projector() trail.Projector { return e.projector }

// Gravity returns a copy of the force model in use.
func (e *Engine) Gravity() *physics.Gravity {
	g := *e.gravity
	return &g
}
