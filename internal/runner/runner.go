// Package runner drives engines headlessly: single runs for the CLI and
// concurrent batches for benchmarking.
package runner

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/san-kum/threebody/internal/config"
	"github.com/san-kum/threebody/internal/engine"
	"github.com/san-kum/threebody/internal/metrics"
	"github.com/san-kum/threebody/internal/physics"
	"github.com/san-kum/threebody/internal/scenario"
	"golang.org/x/sync/errgroup"
)

// ErrDiverged indicates a body state became NaN or Inf during a run.
var ErrDiverged = errors.New("runner: state diverged (NaN or Inf detected)")

// Result summarises one run.
type Result struct {
	Scenario string
	Bodies   []physics.Body
	Ticks    int
	Time     float64
	Elapsed  time.Duration
	Metrics  map[string]float64
	Finite   bool
}

// TicksPerSecond is the wall-clock throughput of the run.
func (r Result) TicksPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Ticks) / r.Elapsed.Seconds()
}

// Run initialises an engine from cfg with sc and ticks it n times. ctx is
// checked between ticks. Extra observers see every tick after the default
// metrics.
func Run(ctx context.Context, cfg *config.Config, sc scenario.Scenario, n int, obs ...engine.Observer) (*Result, error) {
	if n < 0 {
		return nil, fmt.Errorf("runner: negative tick count %d", n)
	}

	e, err := engine.FromConfig(cfg)
	if err != nil {
		return nil, err
	}
	if err := e.Init(sc); err != nil {
		return nil, err
	}
	set := metrics.Default(e.Gravity())
	e.AddObserver(set)
	for _, o := range obs {
		e.AddObserver(o)
	}

	result := &Result{Scenario: sc.Name}
	start := time.Now()
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			result.fill(e, set, start)
			return result, ctx.Err()
		default:
		}
		e.Tick()
	}
	result.fill(e, set, start)
	return result, nil
}

func (r *Result) fill(e *engine.Engine, set *metrics.Set, start time.Time) {
	r.Elapsed = time.Since(start)
	r.Bodies = e.Bodies()
	r.Ticks = e.Ticks()
	r.Time = e.Time()
	r.Metrics = set.Values()
	r.Finite = physics.Valid(r.Bodies)
}

// Check returns ErrDiverged if the final state is not finite.
func (r *Result) Check() error {
	if !r.Finite {
		return fmt.Errorf("%w: scenario %q after %d ticks", ErrDiverged, r.Scenario, r.Ticks)
	}
	return nil
}

// Batch runs every scenario for n ticks on its own engine, at most
// GOMAXPROCS at a time. Results are in input order. The first error
// cancels the remaining runs.
func Batch(ctx context.Context, cfg *config.Config, scs []scenario.Scenario, n int) ([]*Result, error) {
	results := make([]*Result, len(scs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, sc := range scs {
		g.Go(func() error {
			r, err := Run(ctx, cfg, sc, n)
			if err != nil {
				return fmt.Errorf("scenario %s: %w", sc.Name, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
