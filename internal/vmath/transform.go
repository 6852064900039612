package vmath

import "github.com/go-gl/mathgl/mgl64"

// Transform is owned exclusively by its body.
type Transform struct {
	Position Vector2D
	Rotation float64 // radians
	Scale    Vector2D
}

func NewTransform(pos Vector2D) Transform {
	return Transform{Position: pos, Scale: Vector2D{X: 1, Y: 1}}
}

// Rotate applies the transform's rotation (but not translation or scale) to v.
func (t Transform) Rotate(v Vector2D) Vector2D {
	if t.Rotation == 0 {
		return v
	}
	r := mgl64.Rotate2D(t.Rotation).Mul2x1(mgl64.Vec2{v.X, v.Y})
	return Vector2D{X: r[0], Y: r[1]}
}

// ToWorld maps a point in local space to world space: scale, rotate, translate.
func (t Transform) ToWorld(local Vector2D) Vector2D {
	return t.Position.Add(t.Rotate(local.Mul(t.scale())))
}

// ToLocal is the inverse of ToWorld. Zero scale components map to zero.
func (t Transform) ToLocal(world Vector2D) Vector2D {
	d := world.Sub(t.Position)
	if t.Rotation != 0 {
		r := mgl64.Rotate2D(-t.Rotation).Mul2x1(mgl64.Vec2{d.X, d.Y})
		d = Vector2D{X: r[0], Y: r[1]}
	}
	s := t.scale()
	if s.X != 0 {
		d.X /= s.X
	} else {
		d.X = 0
	}
	if s.Y != 0 {
		d.Y /= s.Y
	} else {
		d.Y = 0
	}
	return d
}

// scale treats an all-zero Scale as identity so zero-value transforms behave.
func (t Transform) scale() Vector2D {
	if t.Scale.IsZero() {
		return Vector2D{X: 1, Y: 1}
	}
	return t.Scale
}

// EffectiveScale is the scale used when deriving shape extents.
func (t Transform) EffectiveScale() Vector2D {
	return t.scale()
}
