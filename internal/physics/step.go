package physics

import (
	"github.com/san-kum/physim/internal/collision"
)

// Step advances the world by dt seconds. The whole pipeline runs to
// completion; a dt that is not positive, NaN included, is a no-op. Clamping
// and time scaling are the host loop's job (see dynamo.Clock).
func (w *World) Step(dt float64) {
	if !(dt > 0) {
		return
	}

	w.integrate(dt)
	w.rebuildIndex()
	w.broadPhase()
	w.narrowPhase()
	w.dispatchBehaviors()
	w.resolveContacts()
	w.solveConstraints()
	w.updateParticles(dt)

	w.stats.Steps++
	w.stats.Time += dt
	w.collectStats()

	w.log.V(2).Info("step",
		"n", w.stats.Steps,
		"bodies", w.stats.ActiveBodies,
		"pairs", w.stats.CandidatePairs,
		"manifolds", w.stats.Manifolds,
		"triggers", w.stats.Triggers,
		"particles", w.stats.Particles,
	)
}

func (w *World) broadPhase() {
	w.pairs = w.tree.CandidatePairs(w.pairs[:0])
	// Callbacks may free and reuse slots later in the step.
	w.candidates = w.candidates[:0]
	for _, p := range w.pairs {
		w.candidates = append(w.candidates, [2]Handle{w.handleAt(p.A), w.handleAt(p.B)})
	}
}

// narrowPhase turns candidate pairs into manifolds. Pairs where neither side
// can move and neither side is a trigger are skipped.
func (w *World) narrowPhase() {
	w.manifolds = w.manifolds[:0]
	for _, p := range w.pairs {
		a, b := w.bodies[p.A], w.bodies[p.B]
		if a == nil || b == nil {
			continue
		}
		if !a.Dynamic() && !b.Dynamic() && !a.Collider.Trigger && !b.Collider.Trigger {
			continue
		}
		m, ok := collision.Detect(a.Collider, b.Collider)
		if !ok {
			continue
		}
		w.manifolds = append(w.manifolds, Manifold{A: a.handle, B: b.handle, Manifold: m})
	}
}

func (w *World) updateParticles(dt float64) {
	for _, ps := range w.emitters {
		ps.Update(dt)
	}
}

func (w *World) collectStats() {
	s := &w.stats
	s.Bodies, s.ActiveBodies = 0, 0
	for _, b := range w.bodies {
		if b == nil {
			continue
		}
		s.Bodies++
		if b.Active() {
			s.ActiveBodies++
		}
	}
	s.CandidatePairs = len(w.pairs)
	s.Manifolds, s.Triggers = 0, 0
	for i := range w.manifolds {
		if w.manifolds[i].Trigger {
			s.Triggers++
		} else {
			s.Manifolds++
		}
	}
	s.Constraints = len(w.constraints)
	s.Particles = 0
	for _, ps := range w.emitters {
		s.Particles += ps.Len()
	}
}
