// Package vmath provides the 2D math primitives shared by the simulation:
//
//   - [Vector2D]: value-type vector with the usual arithmetic
//   - [AABB]: axis-aligned bounding box used by the spatial index and colliders
//   - [Transform]: position, rotation and scale owned by a body
//
// Operations that would divide by zero fall back to documented defaults
// (see [DefaultNormal]) instead of producing NaN, so a frame never halts on
// degenerate geometry.
package vmath
