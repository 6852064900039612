// Package collision implements colliders and the narrow phase.
//
// A [Collider] pairs a local [Shape] with a trigger flag and a [Material]; its
// world-space bounds are derived from the owning transform by
// [Collider.Refresh] and must be refreshed whenever that transform changes.
// [Detect] dispatches on the shape pair (box-box, circle-circle, box-circle)
// and returns a [Manifold] with a unit normal pointing from A to B.
package collision
