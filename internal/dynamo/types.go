package dynamo

import (
	"github.com/san-kum/physim/internal/collision"
	"github.com/san-kum/physim/internal/physics"
	"github.com/san-kum/physim/internal/vmath"
)

type Metric interface {
	Name() string
	Observe(w *physics.World, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(w *physics.World, t float64)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(w *physics.World, t float64)

func (f ObserverFunc) OnStep(w *physics.World, t float64) { f(w, t) }

type Config struct {
	Dt            float64
	Duration      float64
	MaxFrameTime  float64
	TimeScale     float64
	RecordEvery   int // snapshot every n steps; 0 disables frames
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            1.0 / 60,
		Duration:      10.0,
		MaxFrameTime:  DefaultMaxFrameTime,
		TimeScale:     DefaultTimeScale,
		RecordEvery:   1,
		ValidateState: true,
	}
}

type Result struct {
	Frames     []Frame
	Metrics    map[string]float64
	Stats      physics.Stats
	StepsTaken int
	Time       float64
	Errors     []error
}

// BodyState is the renderer's view of one body.
type BodyState struct {
	Handle   physics.Handle
	Name     string
	Shape    collision.ShapeKind
	Static   bool
	Trigger  bool
	Mass     float64
	Position vmath.Vector2D
	Velocity vmath.Vector2D
	Bounds   vmath.AABB
}

type Frame struct {
	Step      int
	Time      float64
	Bodies    []BodyState
	Contacts  int
	Particles int
}

// Snapshot copies the active bodies of w. Bodies without a collider are
// reported with degenerate bounds at their position.
func Snapshot(w *physics.World, step int) Frame {
	st := w.Stats()
	f := Frame{Step: step, Time: w.Time(), Contacts: st.Manifolds, Particles: st.Particles}
	for _, b := range w.Bodies() {
		if !b.Active() {
			continue
		}
		bs := BodyState{
			Handle:   b.Handle(),
			Name:     b.Name,
			Position: b.Position(),
			Bounds:   b.Bounds(),
		}
		if b.Rigid != nil {
			bs.Static = b.Rigid.Static()
			bs.Mass = b.Rigid.Mass()
			bs.Velocity = b.Rigid.Velocity
		} else {
			bs.Static = true
		}
		if b.Collider != nil {
			bs.Shape = b.Collider.Shape.Kind
			bs.Trigger = b.Collider.Trigger
		}
		f.Bodies = append(f.Bodies, bs)
	}
	return f
}
