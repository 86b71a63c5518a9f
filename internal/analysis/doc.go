// Package analysis characterises a trajectory beyond what a single run's
// metrics show.
//
//   - [LyapunovExponent]: largest Lyapunov exponent via trajectory separation
//   - [PowerSpectrum], [DominantPeriod]: frequency content of a sampled series
//
// # Chaos Detection
//
// A positive largest Lyapunov exponent indicates chaotic dynamics:
//
//	lambda, err := analysis.LyapunovExponent(ctx, gravity, integrators.NewRK4(), bodies, dt, ticks, analysis.DefaultPerturbation)
//	if lambda > 0 {
//	    // orbits are chaotic; 1/lambda is the e-folding time
//	}
package analysis
