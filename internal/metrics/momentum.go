package metrics

import (
	"github.com/san-kum/physim/internal/physics"
	"github.com/san-kum/physim/internal/vmath"
)

// Momentum reports the magnitude of total linear momentum at the last
// observation.
type Momentum struct {
	name string
	last vmath.Vector2D
}

func NewMomentum() *Momentum {
	return &Momentum{name: "momentum"}
}

func (m *Momentum) Name() string { return m.name }

func (m *Momentum) Observe(w *physics.World, t float64) {
	m.last = TotalMomentum(w)
}

func (m *Momentum) Value() float64         { return m.last.Len() }
func (m *Momentum) Vector() vmath.Vector2D { return m.last }
func (m *Momentum) Reset()                 { m.last = vmath.Vector2D{} }

func TotalMomentum(w *physics.World) vmath.Vector2D {
	var p vmath.Vector2D
	for _, b := range w.Bodies() {
		if !b.Dynamic() {
			continue
		}
		p = p.Add(b.Rigid.Velocity.Scale(b.Rigid.Mass()))
	}
	return p
}
