package physics

import (
	"fmt"

	"github.com/san-kum/physim/internal/vmath"
)

type ConstraintKind int

const (
	DistanceKind ConstraintKind = iota
	SpringKind
	HingeKind
)

func (k ConstraintKind) String() string {
	switch k {
	case DistanceKind:
		return "distance"
	case SpringKind:
		return "spring"
	case HingeKind:
		return "hinge"
	}
	return fmt.Sprintf("constraint(%d)", int(k))
}

func ParseConstraintKind(s string) (ConstraintKind, error) {
	switch s {
	case "distance":
		return DistanceKind, nil
	case "spring":
		return SpringKind, nil
	case "hinge":
		return HingeKind, nil
	}
	return 0, fmt.Errorf("unknown constraint: %s", s)
}

// hingeStiffness is the fraction of the anchor gap closed per solve.
const hingeStiffness = 0.5

// Constraint links two bodies through local anchor offsets. RestLength is used
// by Distance and Spring, Stiffness and Damping by Spring only.
type Constraint struct {
	Kind             ConstraintKind
	A, B             Handle
	AnchorA, AnchorB vmath.Vector2D
	RestLength       float64
	Stiffness        float64
	Damping          float64
}

func Distance(a, b Handle, restLength float64) Constraint {
	return Constraint{Kind: DistanceKind, A: a, B: b, RestLength: restLength}
}

func Spring(a, b Handle, restLength, stiffness, damping float64) Constraint {
	return Constraint{Kind: SpringKind, A: a, B: b, RestLength: restLength, Stiffness: stiffness, Damping: damping}
}

func Hinge(a, b Handle) Constraint {
	return Constraint{Kind: HingeKind, A: a, B: b}
}

// ConstraintID identifies a registered constraint. Its lifetime is managed
// by the caller; removing a body leaves its constraints inert.
type ConstraintID uint32

type constraintSlot struct {
	id ConstraintID
	c  Constraint
}

// AddConstraint registers c. Both ends must be live bodies with rigid bodies.
func (w *World) AddConstraint(c Constraint) (ConstraintID, error) {
	if c.Kind < DistanceKind || c.Kind > HingeKind {
		return 0, configError("kind", c.Kind, ErrOutOfRange)
	}
	for _, h := range []Handle{c.A, c.B} {
		b, ok := w.lookup(h)
		if !ok {
			return 0, configError("body", h, ErrInvalidHandle)
		}
		if b.Rigid == nil {
			return 0, configError("body", h, ErrNoRigidBody)
		}
	}
	if c.A == c.B {
		return 0, configError("body", c.B, ErrOutOfRange)
	}
	if c.RestLength < 0 {
		return 0, configError("rest_length", c.RestLength, ErrOutOfRange)
	}
	if c.Kind == SpringKind && (c.Stiffness < 0 || c.Damping < 0) {
		return 0, configError("stiffness", c.Stiffness, ErrOutOfRange)
	}

	id := w.nextCID
	w.nextCID++
	w.constraints = append(w.constraints, constraintSlot{id: id, c: c})
	w.log.V(1).Info("constraint added", "id", id, "kind", c.Kind, "a", c.A, "b", c.B)
	return id, nil
}

func (w *World) RemoveConstraint(id ConstraintID) bool {
	for i, s := range w.constraints {
		if s.id == id {
			w.constraints = append(w.constraints[:i], w.constraints[i+1:]...)
			return true
		}
	}
	return false
}

// Constraint returns a copy of the registered constraint.
func (w *World) Constraint(id ConstraintID) (Constraint, bool) {
	for _, s := range w.constraints {
		if s.id == id {
			return s.c, true
		}
	}
	return Constraint{}, false
}

// Constraints returns copies of every registered constraint in registration order.
func (w *World) Constraints() []Constraint {
	out := make([]Constraint, len(w.constraints))
	for i, s := range w.constraints {
		out[i] = s.c
	}
	return out
}

// ConstraintsFor returns the IDs of constraints referencing h.
func (w *World) ConstraintsFor(h Handle) []ConstraintID {
	var ids []ConstraintID
	for _, s := range w.constraints {
		if s.c.A == h || s.c.B == h {
			ids = append(ids, s.id)
		}
	}
	return ids
}

// WorldAnchors returns the constraint anchors in world space.
func (w *World) WorldAnchors(c Constraint) (vmath.Vector2D, vmath.Vector2D, bool) {
	a, okA := w.lookup(c.A)
	b, okB := w.lookup(c.B)
	if !okA || !okB {
		return vmath.Vector2D{}, vmath.Vector2D{}, false
	}
	return a.Transform.ToWorld(c.AnchorA), b.Transform.ToWorld(c.AnchorB), true
}

func (w *World) solveConstraints() {
	for i := range w.constraints {
		c := &w.constraints[i].c
		a, okA := w.lookup(c.A)
		b, okB := w.lookup(c.B)
		if !okA || !okB || !a.Active() || !b.Active() {
			continue
		}
		switch c.Kind {
		case DistanceKind:
			solveDistance(a, b, c)
		case SpringKind:
			solveSpring(a, b, c)
		case HingeKind:
			solveHinge(a, b, c)
		}
	}
}

// solveDistance moves each dynamic body by half the proportional correction.
// Coincident anchors have no direction and are left alone.
func solveDistance(a, b *Body, c *Constraint) {
	pa := a.Transform.ToWorld(c.AnchorA)
	pb := b.Transform.ToWorld(c.AnchorB)
	delta := pb.Sub(pa)
	length := delta.Len()
	if length < vmath.Epsilon {
		return
	}

	diff := (length - c.RestLength) / length
	correction := delta.Scale(diff * 0.5)

	switch da, db := a.Dynamic(), b.Dynamic(); {
	case da && db:
		a.translate(correction.Scale(0.5))
		b.translate(correction.Scale(-0.5))
	case da:
		a.translate(correction)
	case db:
		b.translate(correction.Neg())
	}
}

// solveSpring queues a damped Hookean force on both bodies; the integrator
// applies it on the next step.
func solveSpring(a, b *Body, c *Constraint) {
	pa := a.Transform.ToWorld(c.AnchorA)
	pb := b.Transform.ToWorld(c.AnchorB)
	dir, ok := pb.Sub(pa).TryNormalize()
	if !ok {
		return
	}
	length := pb.Distance(pa)

	relVel := b.Rigid.Velocity.Sub(a.Rigid.Velocity)
	magnitude := c.Stiffness*(length-c.RestLength) + c.Damping*relVel.Dot(dir)
	force := dir.Scale(magnitude)

	a.Rigid.AddForce(force)
	b.Rigid.AddForce(force.Neg())
}

// solveHinge pulls both anchors toward their midpoint. It does not constrain
// rotation. With one side static the dynamic anchor is pulled toward the
// static one instead.
func solveHinge(a, b *Body, c *Constraint) {
	pa := a.Transform.ToWorld(c.AnchorA)
	pb := b.Transform.ToWorld(c.AnchorB)

	switch da, db := a.Dynamic(), b.Dynamic(); {
	case da && db:
		mid := pa.Lerp(pb, 0.5)
		a.translate(mid.Sub(pa).Scale(hingeStiffness))
		b.translate(mid.Sub(pb).Scale(hingeStiffness))
	case da:
		a.translate(pb.Sub(pa).Scale(hingeStiffness))
	case db:
		b.translate(pa.Sub(pb).Scale(hingeStiffness))
	}
}
