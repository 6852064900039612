package dynamo

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/physim/internal/physics"
	"github.com/san-kum/physim/internal/vmath"
)

type countMetric struct{ n int }

func (c *countMetric) Name() string                    { return "count" }
func (c *countMetric) Observe(*physics.World, float64) { c.n++ }
func (c *countMetric) Value() float64                  { return float64(c.n) }
func (c *countMetric) Reset()                          { c.n = 0 }

func fallingWorld(t *testing.T) (*physics.World, physics.Handle) {
	t.Helper()
	w, err := physics.New(physics.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	h := w.MustAddBody(physics.Circle(vmath.Vec(0, 10), 0.5, 1))
	return w, h
}

func TestSimulatorRun(t *testing.T) {
	w, h := fallingWorld(t)
	s := New(w)
	m := &countMetric{}
	s.AddMetric(m)

	observed := 0
	s.AddObserver(ObserverFunc(func(*physics.World, float64) { observed++ }))

	cfg := Config{Dt: 0.1, Duration: 1.0, MaxFrameTime: 0.1, TimeScale: 1, RecordEvery: 2}
	result, err := s.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.StepsTaken != 10 {
		t.Errorf("expected 10 steps, got %d", result.StepsTaken)
	}
	if len(result.Frames) != 6 {
		t.Errorf("expected 6 frames, got %d", len(result.Frames))
	}
	if result.Metrics["count"] != 10 || observed != 10 {
		t.Errorf("expected 10 observations, got metric=%f observer=%d", result.Metrics["count"], observed)
	}
	if math.Abs(result.Time-1.0) > 1e-9 {
		t.Errorf("expected t=1.0, got %f", result.Time)
	}

	b, _ := w.Body(h)
	first := result.Frames[0].Bodies[0].Position.Y
	if first != 10 || b.Position().Y >= first {
		t.Errorf("expected body to fall from 10, got %f -> %f", first, b.Position().Y)
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	w, _ := fallingWorld(t)
	s := New(w)

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero dt", Config{Dt: 0, Duration: 1.0, TimeScale: 1}},
		{"negative dt", Config{Dt: -0.1, Duration: 1.0, TimeScale: 1}},
		{"zero duration", Config{Dt: 0.1, Duration: 0, TimeScale: 1}},
		{"zero time scale", Config{Dt: 0.1, Duration: 1.0}},
		{"negative record interval", Config{Dt: 0.1, Duration: 1.0, TimeScale: 1, RecordEvery: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Run(context.Background(), tt.cfg)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestSimulatorCanceled(t *testing.T) {
	w, _ := fallingWorld(t)
	s := New(w)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := s.Run(ctx, DefaultConfig())
	if !errors.Is(err, ErrCanceled) {
		t.Errorf("expected ErrCanceled, got %v", err)
	}
	if result == nil || result.StepsTaken != 0 {
		t.Errorf("expected partial result with no steps, got %+v", result)
	}
}

func TestSimulatorDetectsDivergence(t *testing.T) {
	w, h := fallingWorld(t)
	b, _ := w.Body(h)
	b.Rigid.Velocity = vmath.Vec(math.NaN(), 0)

	result, err := New(w).Run(context.Background(), DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Errors) != 1 || !errors.Is(result.Errors[0], ErrUnstable) {
		t.Errorf("expected one ErrUnstable, got %v", result.Errors)
	}
	if result.StepsTaken != 1 {
		t.Errorf("expected run to stop after 1 step, got %d", result.StepsTaken)
	}
}

func TestRunWithCallbackStops(t *testing.T) {
	w, _ := fallingWorld(t)
	s := New(w)

	frames := 0
	err := s.RunWithCallback(context.Background(), DefaultConfig(), func(f Frame) bool {
		frames++
		return f.Step < 4
	})
	if err != nil {
		t.Fatal(err)
	}
	if frames != 5 {
		t.Errorf("expected 5 callbacks, got %d", frames)
	}
	if w.Stats().Steps != 4 {
		t.Errorf("expected 4 steps, got %d", w.Stats().Steps)
	}
}

func TestSnapshot(t *testing.T) {
	w, _ := fallingWorld(t)
	w.MustAddBody(physics.StaticBox(vmath.Vec(0, 0), 10, 1))
	w.MustAddBody(physics.TriggerZone(vmath.Vec(5, 5), 2, 2))
	hidden := w.MustAddBody(physics.Circle(vmath.Vec(-5, 0), 1, 1))
	_ = w.SetActive(hidden, false)

	f := Snapshot(w, 3)
	if f.Step != 3 || len(f.Bodies) != 3 {
		t.Fatalf("expected 3 bodies at step 3, got %d at %d", len(f.Bodies), f.Step)
	}
	if f.Bodies[0].Static || !f.Bodies[1].Static {
		t.Errorf("unexpected static flags: %+v", f.Bodies)
	}
	if !f.Bodies[2].Trigger || !f.Bodies[2].Static {
		t.Errorf("expected static trigger zone, got %+v", f.Bodies[2])
	}
}

func TestEnsemble(t *testing.T) {
	build := func(seed int64) (*physics.World, error) {
		w, err := physics.New(physics.DefaultConfig())
		if err != nil {
			return nil, err
		}
		w.MustAddBody(physics.Circle(vmath.Vec(float64(seed), 0), 0.5, 1))
		return w, nil
	}
	metrics := func() []Metric { return []Metric{&countMetric{}} }

	cfg := DefaultConfig()
	cfg.Duration = 0.5
	results, err := NewEnsemble(build, metrics, 4, 10).Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	for i, r := range results {
		if got := r.Frames[0].Bodies[0].Position.X; got != float64(10+i) {
			t.Errorf("run %d: expected seed position %d, got %f", i, 10+i, got)
		}
		if r.Metrics["count"] != 30 {
			t.Errorf("run %d: expected 30 observations, got %f", i, r.Metrics["count"])
		}
	}
}
