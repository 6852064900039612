package vmath

import "math"

// Epsilon is the length below which a vector is treated as zero.
const Epsilon = 1e-12

// DefaultNormal is returned when a direction is requested for a zero-length vector.
var DefaultNormal = Vector2D{X: 1, Y: 0}

type Vector2D struct {
	X, Y float64
}

func Vec(x, y float64) Vector2D {
	return Vector2D{X: x, Y: y}
}

func (v Vector2D) Add(o Vector2D) Vector2D {
	return Vector2D{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vector2D) Sub(o Vector2D) Vector2D {
	return Vector2D{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vector2D) Scale(f float64) Vector2D {
	return Vector2D{X: v.X * f, Y: v.Y * f}
}

// Mul multiplies component-wise.
func (v Vector2D) Mul(o Vector2D) Vector2D {
	return Vector2D{X: v.X * o.X, Y: v.Y * o.Y}
}

func (v Vector2D) Neg() Vector2D {
	return Vector2D{X: -v.X, Y: -v.Y}
}

func (v Vector2D) Dot(o Vector2D) float64 {
	return v.X*o.X + v.Y*o.Y
}

func (v Vector2D) Cross(o Vector2D) float64 {
	return v.X*o.Y - v.Y*o.X
}

func (v Vector2D) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

func (v Vector2D) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize returns the unit vector in the direction of v, or DefaultNormal
// when v has zero length.
func (v Vector2D) Normalize() Vector2D {
	n, ok := v.TryNormalize()
	if !ok {
		return DefaultNormal
	}
	return n
}

// TryNormalize reports false instead of substituting a fallback.
func (v Vector2D) TryNormalize() (Vector2D, bool) {
	l := v.Len()
	if l < Epsilon {
		return Vector2D{}, false
	}
	inv := 1.0 / l
	return Vector2D{X: v.X * inv, Y: v.Y * inv}, true
}

func (v Vector2D) Distance(o Vector2D) float64 {
	return v.Sub(o).Len()
}

func (v Vector2D) DistanceSq(o Vector2D) float64 {
	return v.Sub(o).LenSq()
}

func (v Vector2D) Lerp(o Vector2D, t float64) Vector2D {
	return Vector2D{X: v.X + (o.X-v.X)*t, Y: v.Y + (o.Y-v.Y)*t}
}

func (v Vector2D) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

func (v Vector2D) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Clamp limits each component to [lo, hi].
func (v Vector2D) Clamp(lo, hi Vector2D) Vector2D {
	return Vector2D{X: clamp(v.X, lo.X, hi.X), Y: clamp(v.Y, lo.Y, hi.Y)}
}

// Lerp interpolates scalars.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
