// Package physics provides the gravitational model for the simulation.
//
// The package defines the body record and the Newtonian force model:
//
//   - [Body]: point mass with position, velocity and a display tag
//   - [Gravity]: pairwise acceleration over an ordered body set
//
// Bodies are identified by their index in the slice passed to
// [Gravity.Accelerations]; the returned accelerations use the same order.
//
// # Singularity Guard
//
// Pairs closer than [Gravity.MinDistance] contribute exactly zero
// acceleration to both bodies. The same cut-off applies to
// [Gravity.PotentialEnergy] so energy diagnostics agree with the forces the
// integrator actually sees.
//
//	g := physics.NewGravity()
//	acc := make([]vec.Vec3, len(bodies))
//	g.Accelerations(bodies, acc)
package physics
