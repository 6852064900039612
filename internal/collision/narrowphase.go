package collision

import "github.com/san-kum/physim/internal/vmath"

// Detect runs the exact test for a and b. Both colliders must have been
// refreshed against their current transforms.
func Detect(a, b *Collider) (Manifold, bool) {
	var (
		c  ContactPoint
		ok bool
	)

	switch {
	case a.Shape.Kind == ShapeBox && b.Shape.Kind == ShapeBox:
		c, ok = BoxBox(a.box, b.box)
	case a.Shape.Kind == ShapeCircle && b.Shape.Kind == ShapeCircle:
		c, ok = CircleCircle(a.center, a.radius, b.center, b.radius)
	case a.Shape.Kind == ShapeBox && b.Shape.Kind == ShapeCircle:
		c, ok = BoxCircle(a.box, b.center, b.radius)
	case a.Shape.Kind == ShapeCircle && b.Shape.Kind == ShapeBox:
		c, ok = BoxCircle(b.box, a.center, a.radius)
		c = c.Flip()
	}
	if !ok {
		return Manifold{}, false
	}

	friction, restitution := Combine(a.Material, b.Material)
	return Manifold{
		Contacts:    []ContactPoint{c},
		Friction:    friction,
		Restitution: restitution,
		Trigger:     a.Trigger || b.Trigger,
	}, true
}

// BoxBox separates along the axis of least overlap. The contact point is the
// midpoint of the two box centers, an approximation rather than the true
// contact region.
func BoxBox(a, b vmath.AABB) (ContactPoint, bool) {
	overlapX := min(a.Max.X, b.Max.X) - max(a.Min.X, b.Min.X)
	overlapY := min(a.Max.Y, b.Max.Y) - max(a.Min.Y, b.Min.Y)
	if overlapX <= 0 || overlapY <= 0 {
		return ContactPoint{}, false
	}

	var (
		normal      vmath.Vector2D
		penetration float64
	)
	if overlapX < overlapY {
		penetration = overlapX
		normal = vmath.Vec(1, 0)
		if a.Min.X >= b.Min.X {
			normal = vmath.Vec(-1, 0)
		}
	} else {
		penetration = overlapY
		normal = vmath.Vec(0, 1)
		if a.Min.Y >= b.Min.Y {
			normal = vmath.Vec(0, -1)
		}
	}

	point := a.Center().Lerp(b.Center(), 0.5)
	return newContact(point, normal, penetration), true
}

// CircleCircle uses vmath.DefaultNormal when the centers coincide.
func CircleCircle(ca vmath.Vector2D, ra float64, cb vmath.Vector2D, rb float64) (ContactPoint, bool) {
	d := cb.Sub(ca)
	sum := ra + rb
	distSq := d.LenSq()
	if distSq >= sum*sum {
		return ContactPoint{}, false
	}

	dist := d.Len()
	normal, ok := d.TryNormalize()
	if !ok {
		normal = vmath.DefaultNormal
		dist = 0
	}
	point := ca.Add(normal.Scale(ra))
	return newContact(point, normal, sum-dist), true
}

// BoxCircle tests a box (A) against a circle (B). The normal points from the
// closest point on the box to the circle center; a circle whose center lies
// inside the box gets vmath.DefaultNormal.
func BoxCircle(box vmath.AABB, center vmath.Vector2D, radius float64) (ContactPoint, bool) {
	closest := center.Clamp(box.Min, box.Max)
	d := center.Sub(closest)
	distSq := d.LenSq()
	if distSq >= radius*radius {
		return ContactPoint{}, false
	}

	dist := d.Len()
	normal, ok := d.TryNormalize()
	if !ok {
		normal = vmath.DefaultNormal
		dist = 0
	}
	return newContact(closest, normal, radius-dist), true
}
