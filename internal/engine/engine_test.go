package engine_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/threebody/internal/config"
	"github.com/san-kum/threebody/internal/engine"
	"github.com/san-kum/threebody/internal/integrators"
	"github.com/san-kum/threebody/internal/physics"
	"github.com/san-kum/threebody/internal/scenario"
	"github.com/san-kum/threebody/internal/trail"
	"github.com/san-kum/threebody/internal/vec"
)

// refState is a plain-array copy of a body used by the reference stepper
// below, kept independent of the vec and integrators packages.
type refState struct {
	m    float64
	p, v [3]float64
}

func refAccel(bs []refState) [][3]float64 {
	out := make([][3]float64, len(bs))
	for i := range bs {
		for j := i + 1; j < len(bs); j++ {
			var r [3]float64
			for k := 0; k < 3; k++ {
				r[k] = bs[j].p[k] - bs[i].p[k]
			}
			d := math.Sqrt(r[0]*r[0] + r[1]*r[1] + r[2]*r[2])
			if d < 1e6 {
				continue
			}
			f := 6.67430e-11 * bs[i].m * bs[j].m / (d * d)
			for k := 0; k < 3; k++ {
				out[i][k] += r[k] / d * f / bs[i].m
				out[j][k] -= r[k] / d * f / bs[j].m
			}
		}
	}
	return out
}

func refStep(bs []refState, dt float64) []refState {
	n := len(bs)
	shift := func(prev []refState, a [][3]float64, h float64) []refState {
		out := make([]refState, n)
		for i := range bs {
			out[i].m = bs[i].m
			for k := 0; k < 3; k++ {
				out[i].p[k] = bs[i].p[k] + prev[i].v[k]*h
				out[i].v[k] = bs[i].v[k] + a[i][k]*h
			}
		}
		return out
	}

	k1 := bs
	a1 := refAccel(k1)
	k2 := shift(k1, a1, dt/2)
	a2 := refAccel(k2)
	k3 := shift(k2, a2, dt/2)
	a3 := refAccel(k3)
	k4 := shift(k3, a3, dt)
	a4 := refAccel(k4)

	out := make([]refState, n)
	for i := range bs {
		out[i].m = bs[i].m
		for k := 0; k < 3; k++ {
			out[i].p[k] = bs[i].p[k] + (k1[i].v[k]+2*k2[i].v[k]+2*k3[i].v[k]+k4[i].v[k])*dt/6
			out[i].v[k] = bs[i].v[k] + (a1[i][k]+2*a2[i][k]+2*a3[i][k]+a4[i][k])*dt/6
		}
	}
	return out
}

func relErr(got vec.Vec3, want [3]float64) float64 {
	w := vec.New(want[0], want[1], want[2])
	if w.Length() == 0 {
		return got.Length()
	}
	return got.Sub(w).Length() / w.Length()
}

func mustScenario(name string) scenario.Scenario {
	sc, err := scenario.Get(name)
	Expect(err).NotTo(HaveOccurred())
	return sc
}

var _ = Describe("Engine", func() {
	var eng *engine.Engine

	BeforeEach(func() {
		eng = engine.New(engine.WithDt(43200))
	})

	Describe("Init", func() {
		It("copies the scenario bodies in order", func() {
			sc := mustScenario("chaotic")
			Expect(eng.Init(sc)).To(Succeed())

			bodies := eng.Bodies()
			Expect(bodies).To(HaveLen(3))
			for i, sp := range sc.Specs {
				Expect(bodies[i].Mass).To(Equal(sp.Mass))
				Expect(bodies[i].Position).To(Equal(sp.Position))
				Expect(bodies[i].Tag).To(Equal(sp.Tag))
			}
			Expect(eng.Scenario()).To(Equal("chaotic"))
		})

		It("starts with one empty trail per body", func() {
			Expect(eng.Init(mustScenario("spatial"))).To(Succeed())
			for i := 0; i < eng.Len(); i++ {
				Expect(eng.Trail(i)).To(BeEmpty())
			}
			Expect(eng.Trail(eng.Len())).To(BeNil())
			Expect(eng.Trail(-1)).To(BeNil())
		})

		DescribeTable("rejects non-positive masses",
			func(mass float64) {
				sc := mustScenario("harmonious")
				sc.Specs[1].Mass = mass

				err := eng.Init(sc)
				Expect(errors.Is(err, engine.ErrInvalidMass)).To(BeTrue())

				var cfgErr *engine.ConfigError
				Expect(errors.As(err, &cfgErr)).To(BeTrue())
				Expect(cfgErr.Index).To(Equal(1))
				Expect(eng.Len()).To(BeZero())
			},
			Entry("zero", 0.0),
			Entry("negative", -1e30),
			Entry("NaN", math.NaN()),
			Entry("infinite", math.Inf(1)),
		)

		It("rejects an empty scenario", func() {
			Expect(eng.Init(scenario.Scenario{Name: "empty"})).To(MatchError(engine.ErrEmptyScenario))
		})

		It("leaves the previous run cleared after a failed re-init", func() {
			Expect(eng.Init(mustScenario("chaotic"))).To(Succeed())
			eng.Tick()

			bad := mustScenario("chaotic")
			bad.Specs[0].Mass = 0
			Expect(eng.Init(bad)).NotTo(Succeed())
			Expect(eng.Len()).To(BeZero())
			Expect(eng.Ticks()).To(BeZero())
		})

		It("does not share storage with the scenario", func() {
			sc := mustScenario("chaotic")
			Expect(eng.Init(sc)).To(Succeed())
			eng.Tick()
			Expect(sc.Specs[1].Position).To(Equal(vec.New(2.796e11, 2.796e11, 0)))
		})
	})

	Describe("Tick", func() {
		It("is a no-op before Init", func() {
			eng.Tick()
			Expect(eng.Ticks()).To(BeZero())
			Expect(eng.Bodies()).To(BeEmpty())
		})

		It("matches an independent RK4 step for the chaotic scenario", func() {
			sc := mustScenario("chaotic")
			Expect(eng.Init(sc)).To(Succeed())

			ref := make([]refState, len(sc.Specs))
			for i, sp := range sc.Specs {
				ref[i] = refState{m: sp.Mass, p: sp.Position.Array(), v: sp.Velocity.Array()}
			}
			want := refStep(ref, 43200)

			eng.Tick()
			got := eng.Bodies()
			for i := range got {
				Expect(relErr(got[i].Position, want[i].p)).To(BeNumerically("<", 1e-6), "body %d position", i)
				Expect(relErr(got[i].Velocity, want[i].v)).To(BeNumerically("<", 1e-6), "body %d velocity", i)
			}
			Expect(eng.Ticks()).To(Equal(1))
			Expect(eng.Time()).To(Equal(43200.0))
		})

		It("moves an isolated body in a straight line", func() {
			p0, v0 := vec.New(1e11, -5e10, 0), vec.New(20000, -20000, 100000)
			sc := scenario.Scenario{Name: "lone", Specs: []scenario.BodySpec{
				{Mass: 1e30, Position: p0, Velocity: v0},
			}}
			Expect(eng.Init(sc)).To(Succeed())
			eng.Tick()

			want := p0.Add(v0.Scale(43200))
			got := eng.Bodies()[0]
			Expect(got.Position.Sub(want).Length() / want.Length()).To(BeNumerically("<", 1e-9))
			Expect(got.Velocity).To(Equal(v0))
		})

		It("ignores pairs inside the minimum distance", func() {
			v := vec.New(1000, 0, 0)
			sc := scenario.Scenario{Name: "overlap", Specs: []scenario.BodySpec{
				{Mass: 1e30, Position: vec.New(0, 0, 0), Velocity: v},
				{Mass: 1e30, Position: vec.New(1e5, 0, 0), Velocity: v},
			}}
			Expect(eng.Init(sc)).To(Succeed())
			eng.Tick()

			for _, b := range eng.Bodies() {
				Expect(b.Velocity).To(Equal(v))
			}
		})

		It("is deterministic", func() {
			other := engine.New(engine.WithDt(43200))
			Expect(eng.Init(mustScenario("chaotic"))).To(Succeed())
			Expect(other.Init(mustScenario("chaotic"))).To(Succeed())

			for i := 0; i < 250; i++ {
				eng.Tick()
				other.Tick()
				Expect(eng.Bodies()).To(Equal(other.Bodies()))
			}
			for i := 0; i < eng.Len(); i++ {
				Expect(eng.Trail(i)).To(Equal(other.Trail(i)))
			}
		})

		It("conserves momentum", func() {
			Expect(eng.Init(mustScenario("scattered"))).To(Succeed())
			p0 := physics.Momentum(eng.Bodies())
			for i := 0; i < 100; i++ {
				eng.Tick()
			}
			p1 := physics.Momentum(eng.Bodies())
			scale := 2.5e30 * 1.5e4
			Expect(p1.Sub(p0).Length() / scale).To(BeNumerically("<", 1e-9))
		})
	})

	Describe("trails", func() {
		It("records the projected position after each tick", func() {
			Expect(eng.Init(mustScenario("chaotic"))).To(Succeed())
			eng.Tick()

			proj := eng.Projector()
			for i, b := range eng.Bodies() {
				Expect(eng.Trail(i)).To(Equal([]trail.Point{proj.Project(b.Position)}))
			}
		})

		It("keeps only the newest points once full", func() {
			Expect(eng.Init(mustScenario("harmonious"))).To(Succeed())
			eng.Tick()
			eng.Tick()

			second := make([]trail.Point, eng.Len())
			for i := range second {
				second[i] = eng.Trail(i)[1]
			}

			for eng.Ticks() < trail.DefaultCapacity+1 {
				eng.Tick()
			}

			for i := 0; i < eng.Len(); i++ {
				tr := eng.Trail(i)
				Expect(tr).To(HaveLen(trail.DefaultCapacity))
				Expect(tr[0]).To(Equal(second[i]))
			}
		})

		It("honours a custom capacity", func() {
			small := engine.New(engine.WithTrailCapacity(5))
			Expect(small.Init(mustScenario("chaotic"))).To(Succeed())
			for i := 0; i < 12; i++ {
				small.Tick()
			}
			Expect(small.Trail(0)).To(HaveLen(5))
		})

		It("returns copies", func() {
			Expect(eng.Init(mustScenario("chaotic"))).To(Succeed())
			eng.Tick()
			tr := eng.Trail(0)
			tr[0] = trail.Point{X: -1, Y: -1}
			Expect(eng.Trail(0)[0]).NotTo(Equal(tr[0]))
		})
	})

	Describe("read-only views", func() {
		It("does not expose internal bodies", func() {
			Expect(eng.Init(mustScenario("chaotic"))).To(Succeed())
			bodies := eng.Bodies()
			bodies[0].Mass = -5
			bodies[0].Position = vec.New(1, 1, 1)
			Expect(eng.Bodies()[0].Mass).To(Equal(10.989e30))
			Expect(eng.Bodies()[0].Position).To(Equal(vec.New(0, 0, 0)))
		})

		It("does not expose the force model", func() {
			eng.Gravity().G = 0
			Expect(eng.Gravity().G).To(Equal(physics.G))
		})
	})

	Describe("Restart", func() {
		It("returns to the initial scenario", func() {
			Expect(eng.Init(mustScenario("unequal"))).To(Succeed())
			initial := eng.Bodies()
			for i := 0; i < 10; i++ {
				eng.Tick()
			}
			Expect(eng.Restart()).To(Succeed())
			Expect(eng.Bodies()).To(Equal(initial))
			Expect(eng.Ticks()).To(BeZero())
			Expect(eng.Trail(0)).To(BeEmpty())
		})

		It("ignores changes to the scenario made after Init", func() {
			sc := mustScenario("chaotic")
			Expect(eng.Init(sc)).To(Succeed())
			initial := eng.Bodies()

			sc.Specs[0].Mass = 0
			sc.Specs[1].Position = vec.New(1, 2, 3)
			eng.Tick()

			Expect(eng.Restart()).To(Succeed())
			Expect(eng.Bodies()).To(Equal(initial))
		})
	})

	Describe("observers", func() {
		It("receives every tick with simulated time", func() {
			rec := &recorder{}
			eng.AddObserver(rec)
			Expect(eng.Init(mustScenario("chaotic"))).To(Succeed())
			eng.Tick()
			eng.Tick()

			Expect(rec.times).To(Equal([]float64{43200, 86400}))
			Expect(rec.last).To(Equal(eng.Bodies()))
			rec.last[0].Mass = 0
			Expect(eng.Bodies()[0].Mass).NotTo(BeZero())
		})
	})

	It("builds from config", func() {
		cfg := config.DefaultConfig()
		cfg.Dt = 3600
		cfg.TrailCapacity = 3
		e, err := engine.FromConfig(cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(e.Dt()).To(Equal(3600.0))
		Expect(e.Init(mustScenario("chaotic"))).To(Succeed())
		for i := 0; i < 5; i++ {
			e.Tick()
		}
		Expect(e.Trail(1)).To(HaveLen(3))
	})

	DescribeTable("rejects an invalid config",
		func(mutate func(*config.Config)) {
			cfg := config.DefaultConfig()
			mutate(cfg)
			e, err := engine.FromConfig(cfg)
			Expect(err).To(MatchError(config.ErrInvalid))
			Expect(e).To(BeNil())
		},
		Entry("zero dt", func(c *config.Config) { c.Dt = 0 }),
		Entry("negative dt", func(c *config.Config) { c.Dt = -43200 }),
		Entry("zero scale", func(c *config.Config) { c.Scale = 0 }),
		Entry("zero trail capacity", func(c *config.Config) { c.TrailCapacity = 0 }),
	)

	It("rejects an unknown integrator", func() {
		cfg := config.DefaultConfig()
		cfg.Integrator = "leapfrog"
		_, err := engine.FromConfig(cfg)
		Expect(err).To(MatchError(integrators.ErrUnknown))
	})

	It("uses the configured integrator", func() {
		cfg := config.DefaultConfig()
		cfg.Integrator = "verlet"
		e, err := engine.FromConfig(cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(e.Init(mustScenario("chaotic"))).To(Succeed())
		e.Tick()

		ref := engine.New()
		Expect(ref.Init(mustScenario("chaotic"))).To(Succeed())
		ref.Tick()
		Expect(e.Bodies()[2].Position).NotTo(Equal(ref.Bodies()[2].Position))
	})
})

type recorder struct {
	times []float64
	last  []physics.Body
}

func (r *recorder) OnTick(bodies []physics.Body, t float64) {
	r.times = append(r.times, t)
	r.last = bodies
}
