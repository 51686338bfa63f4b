// Package dynamo provides the core primitives shared by the scroll physics
// packages.
//
// The package defines the value types that flow through a single scroll axis:
//
//   - [Time], [Position], [Velocity]: scalar units (milliseconds, device units)
//   - [Event]: absolute axis position implied by a pan delta
//   - [Sample]: memoized point of an already-computed trajectory
//   - [Capabilities]: device predicates supplied by the caller
//   - [Edge]: which track boundary a bounce is sprung against
//
// # Invariant Errors
//
// Conditions that indicate a logic defect (NaN velocities, friction that
// accelerates, zero timestamps) are not returned as errors. They panic with an
// [*InvariantError] wrapping one of the sentinel errors below, so tests can
// recover the value and match it with [errors.Is].
//
// # Thread Safety
//
// Values in this package are plain data and safe to copy. The stateful types
// built on them (interpolators, scrollviews) are NOT thread-safe.
package dynamo
