package vmath

// AABB is an axis-aligned bounding box. Min is the lower-left corner in a
// Y-up world, Max the upper-right.
type AABB struct {
	Min, Max Vector2D
}

func NewAABB(min, max Vector2D) AABB {
	return AABB{Min: min, Max: max}
}

// AABBFromCenter builds a box from its center and half extents.
func AABBFromCenter(center, half Vector2D) AABB {
	return AABB{Min: center.Sub(half), Max: center.Add(half)}
}

// Overlaps reports strict overlap: boxes that only touch along an edge do not overlap.
func (a AABB) Overlaps(b AABB) bool {
	return a.Min.X < b.Max.X && a.Max.X > b.Min.X &&
		a.Min.Y < b.Max.Y && a.Max.Y > b.Min.Y
}

// Contains reports whether b lies entirely inside a (edges inclusive).
func (a AABB) Contains(b AABB) bool {
	return b.Min.X >= a.Min.X && b.Max.X <= a.Max.X &&
		b.Min.Y >= a.Min.Y && b.Max.Y <= a.Max.Y
}

func (a AABB) ContainsPoint(p Vector2D) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X && p.Y >= a.Min.Y && p.Y <= a.Max.Y
}

func (a AABB) Center() Vector2D {
	return Vector2D{X: (a.Min.X + a.Max.X) * 0.5, Y: (a.Min.Y + a.Max.Y) * 0.5}
}

func (a AABB) Width() float64  { return a.Max.X - a.Min.X }
func (a AABB) Height() float64 { return a.Max.Y - a.Min.Y }

func (a AABB) Area() float64 {
	return a.Width() * a.Height()
}

// Valid reports whether the box has positive, finite extent on both axes.
func (a AABB) Valid() bool {
	return a.Min.IsValid() && a.Max.IsValid() && a.Max.X > a.Min.X && a.Max.Y > a.Min.Y
}

func (a AABB) Expand(margin float64) AABB {
	return AABB{
		Min: Vector2D{X: a.Min.X - margin, Y: a.Min.Y - margin},
		Max: Vector2D{X: a.Max.X + margin, Y: a.Max.Y + margin},
	}
}

// Union returns the smallest box containing both a and b.
func (a AABB) Union(b AABB) AABB {
	return AABB{
		Min: Vector2D{X: min(a.Min.X, b.Min.X), Y: min(a.Min.Y, b.Min.Y)},
		Max: Vector2D{X: max(a.Max.X, b.Max.X), Y: max(a.Max.Y, b.Max.Y)},
	}
}

// Quadrants splits a into four equal boxes: SW, SE, NW, NE.
func (a AABB) Quadrants() [4]AABB {
	c := a.Center()
	return [4]AABB{
		{Min: a.Min, Max: c},
		{Min: Vector2D{X: c.X, Y: a.Min.Y}, Max: Vector2D{X: a.Max.X, Y: c.Y}},
		{Min: Vector2D{X: a.Min.X, Y: c.Y}, Max: Vector2D{X: c.X, Y: a.Max.Y}},
		{Min: c, Max: a.Max},
	}
}
