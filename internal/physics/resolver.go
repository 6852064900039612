package physics

import "math"

// resolveContacts runs the velocity pass SolverIterations times, then one
// position-correction pass. Trigger manifolds and manifolds missing a rigid
// body on either side are skipped.
func (w *World) resolveContacts() {
	for it := 0; it < w.cfg.SolverIterations; it++ {
		for i := range w.manifolds {
			m := &w.manifolds[i]
			if m.Trigger {
				continue
			}
			a, b, ok := w.participants(m)
			if !ok {
				continue
			}
			resolveVelocity(a, b, m)
		}
	}

	for i := range w.manifolds {
		m := &w.manifolds[i]
		if m.Trigger {
			continue
		}
		a, b, ok := w.participants(m)
		if !ok {
			continue
		}
		correctPosition(a, b, m)
	}
}

// participants resolves both sides of m. Bodies removed or deactivated
// earlier in the step, or lacking a rigid body, make the manifold a no-op.
func (w *World) participants(m *Manifold) (*Body, *Body, bool) {
	a, okA := w.lookup(m.A)
	b, okB := w.lookup(m.B)
	if !okA || !okB || !a.Active() || !b.Active() {
		return nil, nil, false
	}
	if a.Rigid == nil || b.Rigid == nil {
		return nil, nil, false
	}
	return a, b, true
}

func resolveVelocity(a, b *Body, m *Manifold) {
	c, ok := m.First()
	if !ok {
		return
	}
	ra, rb := a.Rigid, b.Rigid
	invSum := ra.InvMass() + rb.InvMass()
	if invSum == 0 {
		return
	}

	n := c.Normal
	rv := rb.Velocity.Sub(ra.Velocity)
	vn := rv.Dot(n)
	if vn > 0 {
		return
	}

	j := -(1 + m.Restitution) * vn / invSum
	impulse := n.Scale(j)
	ra.ApplyImpulse(impulse.Neg())
	rb.ApplyImpulse(impulse)

	// Coulomb friction along the tangential relative velocity.
	rv = rb.Velocity.Sub(ra.Velocity)
	tangent, ok := rv.Sub(n.Scale(rv.Dot(n))).TryNormalize()
	if !ok {
		return
	}
	jt := -rv.Dot(tangent) / invSum
	limit := m.Friction * j
	jt = math.Max(-limit, math.Min(jt, limit))

	frictionImpulse := tangent.Scale(jt)
	ra.ApplyImpulse(frictionImpulse.Neg())
	rb.ApplyImpulse(frictionImpulse)
}

// correctPosition removes PositionPercent of the penetration beyond
// PositionSlop, split by inverse mass.
func correctPosition(a, b *Body, m *Manifold) {
	c, ok := m.First()
	if !ok {
		return
	}
	invA, invB := a.Rigid.InvMass(), b.Rigid.InvMass()
	invSum := invA + invB
	if invSum == 0 {
		return
	}

	depth := math.Max(c.Penetration-PositionSlop, 0) * PositionPercent / invSum
	if depth == 0 {
		return
	}
	correction := c.Normal.Scale(depth)
	if invA > 0 {
		a.translate(correction.Scale(-invA))
	}
	if invB > 0 {
		b.translate(correction.Scale(invB))
	}
}
