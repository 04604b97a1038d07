// Package kinematics provides prescribed-motion models for immersed bodies.
//
// Each model implements the [Model] interface, producing the body's
// instantaneous translational and angular velocity (and, for deforming
// bodies, its shape) as a closed-form function of time:
//
//   - [FlappingFoil]: rigid heaving and pitching airfoil
//   - [Undulator]: traveling-wave body deformation (anguilliform swimmer)
//
// The external constraint solver drives models through a set-then-get
// convention: it calls SetVelocity/SetShape at the time it requires during
// its substeps, then reads the cached result back per refinement level via
// Velocity/Shape. Prescribed motion is identical on every level, so models
// store one state and serve it for any requested level.
package kinematics
