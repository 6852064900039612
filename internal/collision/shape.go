package collision

import (
	"fmt"
	"math"

	"github.com/san-kum/physim/internal/vmath"
)

type ShapeKind int

const (
	ShapeBox ShapeKind = iota
	ShapeCircle
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeBox:
		return "box"
	case ShapeCircle:
		return "circle"
	default:
		return fmt.Sprintf("shape(%d)", int(k))
	}
}

func (k ShapeKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *ShapeKind) UnmarshalText(b []byte) error {
	v, err := ParseShapeKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// ParseShapeKind accepts "box" and "circle".
func ParseShapeKind(s string) (ShapeKind, error) {
	switch s {
	case "box", "rect":
		return ShapeBox, nil
	case "circle":
		return ShapeCircle, nil
	}
	return 0, fmt.Errorf("unknown shape: %s", s)
}

// Shape is the local-space geometry of a collider. Boxes stay axis-aligned:
// rotation moves the center offset but does not rotate the box.
type Shape struct {
	Kind        ShapeKind
	HalfExtents vmath.Vector2D // box
	Radius      float64        // circle
	Offset      vmath.Vector2D // local center
}

func Box(width, height float64) Shape {
	return Shape{Kind: ShapeBox, HalfExtents: vmath.Vec(width/2, height/2)}
}

func Circle(radius float64) Shape {
	return Shape{Kind: ShapeCircle, Radius: radius}
}

// Valid reports whether the shape has positive extent.
func (s Shape) Valid() bool {
	switch s.Kind {
	case ShapeBox:
		return s.HalfExtents.X > 0 && s.HalfExtents.Y > 0
	case ShapeCircle:
		return s.Radius > 0
	}
	return false
}

// Area is used to derive mass from density.
func (s Shape) Area() float64 {
	switch s.Kind {
	case ShapeBox:
		return 4 * s.HalfExtents.X * s.HalfExtents.Y
	case ShapeCircle:
		return math.Pi * s.Radius * s.Radius
	}
	return 0
}
