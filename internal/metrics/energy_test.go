package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/physim/internal/physics"
	"github.com/san-kum/physim/internal/vmath"
)

func newWorld(t *testing.T, gravity vmath.Vector2D) *physics.World {
	t.Helper()
	cfg := physics.DefaultConfig()
	cfg.Gravity = gravity
	cfg.Damping = 1
	w, err := physics.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return w
}

func TestKineticEnergy(t *testing.T) {
	w := newWorld(t, vmath.Vector2D{})
	w.MustAddBody(physics.BodyDef{Mass: 2, Velocity: vmath.Vec(3, 4)})
	w.MustAddBody(physics.StaticBox(vmath.Vec(0, -5), 10, 1))

	m := NewKineticEnergy()
	m.Observe(w, 0)

	// ½ · 2 · 25
	if math.Abs(m.Value()-25) > 1e-9 {
		t.Errorf("expected energy 25, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestEnergyDriftFreeFall(t *testing.T) {
	w := newWorld(t, vmath.Vec(0, -10))
	w.MustAddBody(physics.BodyDef{Mass: 1, Position: vmath.Vec(0, 50)})

	m := NewEnergyDrift()
	m.Observe(w, 0)
	for i := 0; i < 60; i++ {
		w.Step(1.0 / 60)
		m.Observe(w, w.Time())
	}

	// the trapezoid update is exact for constant acceleration
	if m.Value() > 1e-9 {
		t.Errorf("expected no drift in free fall, got %g", m.Value())
	}
}

func TestMomentumConservedInCollision(t *testing.T) {
	w := newWorld(t, vmath.Vector2D{})
	a := physics.Circle(vmath.Vec(0, 0), 1, 1)
	a.Velocity = vmath.Vec(2, 0)
	b := physics.Circle(vmath.Vec(1.9, 0.3), 1, 3)
	w.MustAddBody(a)
	w.MustAddBody(b)

	before := TotalMomentum(w)
	w.Step(0.01)
	after := TotalMomentum(w)

	if before.Distance(after) > 1e-9 {
		t.Errorf("expected momentum %v to be conserved, got %v", before, after)
	}

	m := NewMomentum()
	m.Observe(w, 0)
	if math.Abs(m.Value()-2) > 1e-9 {
		t.Errorf("expected momentum magnitude 2, got %f", m.Value())
	}
}

func TestContactMetrics(t *testing.T) {
	w := newWorld(t, vmath.Vector2D{})
	w.MustAddBody(physics.Box(vmath.Vec(0, 0), 2, 2, 1))
	w.MustAddBody(physics.Box(vmath.Vec(1.5, 0), 2, 2, 1))
	w.MustAddBody(physics.TriggerZone(vmath.Vec(0, 0), 8, 8))

	count := NewContactCount()
	pen := NewMaxPenetration()
	w.Step(0.01)
	count.Observe(w, w.Time())
	pen.Observe(w, w.Time())

	if count.Value() != 1 {
		t.Errorf("expected 1 contact, got %f", count.Value())
	}
	if math.Abs(pen.Value()-0.5) > 1e-9 {
		t.Errorf("expected penetration 0.5, got %f", pen.Value())
	}
}

func TestStability(t *testing.T) {
	w := newWorld(t, vmath.Vector2D{})
	h := w.MustAddBody(physics.BodyDef{Mass: 1, Velocity: vmath.Vec(1, 0)})

	s := NewStability(10)
	s.Observe(w, 0)
	b, _ := w.Body(h)
	b.Rigid.Velocity = vmath.Vec(50, 0)
	s.Observe(w, 0)

	if s.Value() != 0.5 {
		t.Errorf("expected stability 0.5, got %f", s.Value())
	}
	if s.TopSpeed() != 50 {
		t.Errorf("expected top speed 50, got %f", s.TopSpeed())
	}
	s.Reset()
	if s.Value() != 1 || s.TopSpeed() != 0 {
		t.Errorf("expected reset state, got %f %f", s.Value(), s.TopSpeed())
	}
}

func TestRegistry(t *testing.T) {
	for _, name := range Names() {
		m, err := New(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if m.Name() != name {
			t.Errorf("expected metric %q, got %q", name, m.Name())
		}
	}
	if _, err := New("nope"); err == nil {
		t.Error("expected error for unknown metric")
	}
	if len(All()) != len(Names()) {
		t.Errorf("expected %d metrics, got %d", len(Names()), len(All()))
	}
}
