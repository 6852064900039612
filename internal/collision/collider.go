package collision

import (
	"math"

	"github.com/san-kum/physim/internal/vmath"
)

type Material struct {
	Friction    float64
	Restitution float64
}

// DefaultMaterial is a moderately rough, slightly bouncy surface.
var DefaultMaterial = Material{Friction: 0.4, Restitution: 0.2}

// Combine mixes two materials: geometric mean of friction, max of restitution.
func Combine(a, b Material) (friction, restitution float64) {
	return math.Sqrt(a.Friction * b.Friction), math.Max(a.Restitution, b.Restitution)
}

type Collider struct {
	Shape    Shape
	Trigger  bool
	Material Material

	// world-space state derived by Refresh
	box    vmath.AABB
	center vmath.Vector2D
	radius float64
}

func NewCollider(shape Shape, material Material, trigger bool) *Collider {
	return &Collider{Shape: shape, Material: material, Trigger: trigger}
}

// Refresh re-derives the world-space shape from t.
func (c *Collider) Refresh(t vmath.Transform) {
	s := t.EffectiveScale()
	sx, sy := math.Abs(s.X), math.Abs(s.Y)
	c.center = t.ToWorld(c.Shape.Offset)

	switch c.Shape.Kind {
	case ShapeBox:
		half := vmath.Vec(c.Shape.HalfExtents.X*sx, c.Shape.HalfExtents.Y*sy)
		c.box = vmath.AABBFromCenter(c.center, half)
		c.radius = 0
	case ShapeCircle:
		c.radius = c.Shape.Radius * math.Max(sx, sy)
		c.box = vmath.AABBFromCenter(c.center, vmath.Vec(c.radius, c.radius))
	}
}

// Bounds is the world-space AABB as of the last Refresh.
func (c *Collider) Bounds() vmath.AABB { return c.box }

// Center is the world-space shape center as of the last Refresh.
func (c *Collider) Center() vmath.Vector2D { return c.center }

// Radius is the world-space circle radius; zero for boxes.
func (c *Collider) Radius() float64 { return c.radius }
