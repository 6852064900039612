// Package physics is the rigid-body world: a body arena addressed by
// generation-checked [Handle]s, the integrator, the contact resolver, the
// constraint solver and the behaviour registry.
//
// One call to [World.Step] runs the whole pipeline synchronously:
//
//  1. integrate forces and move dynamic bodies
//  2. rebuild the quadtree from active collidable bodies
//  3. broad phase (quadtree candidate pairs)
//  4. narrow phase (exact contacts into manifolds)
//  5. behaviour callbacks (collision and trigger)
//  6. contact resolution (velocity iterations, then position correction)
//  7. constraints (distance, spring, hinge)
//  8. particle systems
//
// # Handles
//
// Manifolds, constraints and behaviours refer to bodies by [Handle]. Removing
// a body bumps its slot generation, so a stale handle resolves to "inactive"
// rather than to a recycled body. Callbacks may therefore remove bodies in
// the middle of a step.
//
// # Thread Safety
//
// A World is NOT thread-safe and is owned by the goroutine that steps it.
package physics
