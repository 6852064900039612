package viz

import (
	"github.com/san-kum/physim/internal/collision"
	"github.com/san-kum/physim/internal/dynamo"
	"github.com/san-kum/physim/internal/physics"
	"github.com/san-kum/physim/internal/vmath"
)

// Extent is the union of every body's bounds in f, grown by margin on each
// side. An empty frame yields the zero box.
func Extent(f dynamo.Frame, margin float64) vmath.AABB {
	if len(f.Bodies) == 0 {
		return vmath.AABB{}
	}
	box := f.Bodies[0].Bounds
	for _, b := range f.Bodies[1:] {
		box = box.Union(b.Bounds)
	}
	return box.Expand(margin)
}

// DrawFrame draws the bodies of f. Static solids are filled, dynamic bodies
// and triggers are outlined, bodies without a collider are single dots.
func DrawFrame(c *Canvas, v Viewport, f dynamo.Frame) {
	for _, b := range f.Bodies {
		drawBody(c, v, b)
	}
}

func drawBody(c *Canvas, v Viewport, b dynamo.BodyState) {
	if b.Bounds.Width() == 0 && b.Bounds.Height() == 0 {
		c.Set(v.Project(b.Position))
		return
	}
	switch b.Shape {
	case collision.ShapeCircle:
		cx, cy := v.Project(b.Position)
		c.DrawCircle(cx, cy, v.Length(b.Bounds.Width()/2))
	default:
		x0, y0 := v.Project(b.Bounds.Min)
		x1, y1 := v.Project(b.Bounds.Max)
		if b.Static && !b.Trigger {
			c.FillRect(x0, y0, x1, y1)
		} else {
			c.DrawRect(x0, y0, x1, y1)
		}
	}
}

// DrawConstraints draws a segment between the anchors of every live
// constraint in w.
func DrawConstraints(c *Canvas, v Viewport, w *physics.World) {
	for _, con := range w.Constraints() {
		a, b, ok := w.WorldAnchors(con)
		if !ok {
			continue
		}
		x0, y0 := v.Project(a)
		x1, y1 := v.Project(b)
		c.DrawLine(x0, y0, x1, y1)
	}
}

func DrawParticles(c *Canvas, v Viewport, w *physics.World) {
	for _, ps := range w.Emitters() {
		for _, p := range ps.Particles() {
			c.Set(v.Project(p.Position))
		}
	}
}

// DrawWorld renders the current state of w onto a cleared canvas.
func DrawWorld(c *Canvas, v Viewport, w *physics.World) {
	c.Clear()
	DrawFrame(c, v, dynamo.Snapshot(w, w.Stats().Steps))
	DrawConstraints(c, v, w)
	DrawParticles(c, v, w)
}
