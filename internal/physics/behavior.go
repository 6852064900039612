package physics

import "github.com/san-kum/physim/internal/collision"

// Behavior is any per-body script. What it reacts to is decided by the
// capability interfaces it implements: CollisionHandler, TriggerHandler.
type Behavior any

// CollisionHandler is notified of solid contacts. The contact normal points
// from self to other.
type CollisionHandler interface {
	OnCollision(w *World, self, other Handle, c collision.ContactPoint)
}

// TriggerHandler is notified when self overlaps other and either is a trigger.
type TriggerHandler interface {
	OnTrigger(w *World, self, other Handle)
}

type CollisionFunc func(w *World, self, other Handle, c collision.ContactPoint)

func (f CollisionFunc) OnCollision(w *World, self, other Handle, c collision.ContactPoint) {
	f(w, self, other, c)
}

type TriggerFunc func(w *World, self, other Handle)

func (f TriggerFunc) OnTrigger(w *World, self, other Handle) { f(w, self, other) }

// TriggerCounter counts bodies entering the zone. A body that stays inside
// is counted once; it counts again only after spending a step outside.
type TriggerCounter struct {
	Count   int
	Visitor map[Handle]int

	inside map[Handle]int // step each body was last seen overlapping
	step   int
}

func (t *TriggerCounter) OnTrigger(w *World, _, other Handle) {
	step := w.Stats().Steps
	if t.inside == nil {
		t.inside = make(map[Handle]int)
	}
	if t.Visitor == nil {
		t.Visitor = make(map[Handle]int)
	}
	if step != t.step {
		for h, last := range t.inside {
			if last < step-1 {
				delete(t.inside, h)
			}
		}
		t.step = step
	}

	last, ok := t.inside[other]
	t.inside[other] = step
	if ok && last >= step-1 {
		return
	}
	t.Count++
	t.Visitor[other]++
}

// RemoveOnTrigger deletes dynamic bodies that enter the zone. Static and
// collider-only bodies are left alone.
type RemoveOnTrigger struct{}

func (RemoveOnTrigger) OnTrigger(w *World, _, other Handle) {
	if b, ok := w.Body(other); ok && b.Rigid != nil && !b.Rigid.Static() {
		w.RemoveBody(other)
	}
}

// RemoveOnCollision deletes the body itself on its first solid contact.
type RemoveOnCollision struct{}

func (RemoveOnCollision) OnCollision(w *World, self, _ Handle, _ collision.ContactPoint) {
	w.RemoveBody(self)
}

// SetBehavior registers b for h, replacing any previous behaviour.
func (w *World) SetBehavior(h Handle, b Behavior) error {
	if !w.Contains(h) {
		return ErrInvalidHandle
	}
	if b == nil {
		delete(w.behaviors, h)
		return nil
	}
	w.behaviors[h] = b
	return nil
}

func (w *World) Behavior(h Handle) (Behavior, bool) {
	b, ok := w.behaviors[h]
	return b, ok
}

// dispatchBehaviors invokes callbacks for this step's manifolds in order.
// A body removed or deactivated by an earlier callback receives no further
// notifications, and neither does its partner for that manifold.
func (w *World) dispatchBehaviors() {
	if len(w.behaviors) == 0 {
		return
	}
	for i := range w.manifolds {
		m := w.manifolds[i]
		c, _ := m.First()
		w.notify(m.A, m.B, m.Trigger, c)
		w.notify(m.B, m.A, m.Trigger, c.Flip())
	}
}

func (w *World) notify(self, other Handle, trigger bool, c collision.ContactPoint) {
	if !w.IsActive(self) || !w.IsActive(other) {
		return
	}
	beh, ok := w.behaviors[self]
	if !ok {
		return
	}
	if trigger {
		if h, ok := beh.(TriggerHandler); ok {
			h.OnTrigger(w, self, other)
		}
		return
	}
	if h, ok := beh.(CollisionHandler); ok {
		h.OnCollision(w, self, other, c)
	}
}
