package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/physim/internal/config"
	"github.com/san-kum/physim/internal/physics"
)

func TestRegistryList(t *testing.T) {
	r := NewRegistry()
	names := r.List()
	want := []string{"billiards", "bridge", "chain", "fountain", "pendulum", "stack"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("expected %s at %d, got %s", want[i], i, names[i])
		}
		if r.Describe(names[i]) == "" {
			t.Errorf("%s has no description", names[i])
		}
	}
	if _, err := r.Get("nope"); err == nil {
		t.Error("expected error for unknown scene")
	}
}

func TestEveryPresetBuilds(t *testing.T) {
	for scene := range config.Presets {
		for _, name := range config.ListPresets(scene) {
			cfg := config.GetPreset(scene, name)
			s, err := Build(cfg)
			if err != nil {
				t.Errorf("%s/%s: %v", scene, name, err)
				continue
			}
			if s.World.BodyCount() == 0 {
				t.Errorf("%s/%s: empty world", scene, name)
			}
			for i := 0; i < 30; i++ {
				s.World.Step(cfg.Dt)
			}
			for _, b := range s.World.Bodies() {
				if !b.Position().IsValid() {
					t.Errorf("%s/%s: %s diverged", scene, name, b.Name)
				}
			}
		}
	}
}

func TestExpandKeepsExplicitEntries(t *testing.T) {
	cfg := config.GetPreset("stack", "small")
	cfg.Bodies = []config.BodyConfig{{Name: "extra", Shape: "circle", Radius: 1, Mass: 1, Position: config.Vec2{10, 10}}}

	out, err := Default.Expand(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if out.Scene != "" {
		t.Errorf("expected expanded config without scene, got %q", out.Scene)
	}
	// floor + 5 boxes + sensor + extra
	if len(out.Bodies) != 8 {
		t.Fatalf("expected 8 bodies, got %d", len(out.Bodies))
	}
	if out.Bodies[7].Name != "extra" {
		t.Errorf("expected explicit body last, got %s", out.Bodies[7].Name)
	}
	if len(cfg.Bodies) != 1 {
		t.Error("Expand modified its input")
	}
}

func TestBuildExplicitScene(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Scene = ""
	cfg.Bodies = []config.BodyConfig{
		{Name: "pivot", Shape: "none", Static: true, Position: config.Vec2{0, 5}},
		{Name: "bob", Shape: "circle", Radius: 0.25, Mass: 1, Position: config.Vec2{3, 1}},
		{Name: "zone", Shape: "box", Width: 4, Height: 4, Collider: true, Trigger: true,
			Behavior: config.BehaviorCountTriggers, Position: config.Vec2{20, 20}},
	}
	cfg.Constraints = []config.ConstraintConfig{{Kind: "distance", A: "pivot", B: "bob"}}
	cfg.Emitters = []config.EmitterConfig{{Rate: 5, LifeMin: 1, LifeMax: 1, StartColor: "#ffffff"}}

	s, err := Build(cfg)
	if err != nil {
		t.Fatal(err)
	}

	cs := s.World.Constraints()
	if len(cs) != 1 || math.Abs(cs[0].RestLength-5) > 1e-9 {
		t.Errorf("expected rest length 5 from initial distance, got %+v", cs)
	}
	if _, ok := s.Counters["zone"]; !ok {
		t.Error("expected trigger counter for zone")
	}
	if len(s.Emitters) != 1 || s.Emitters[0].Config().Gravity != cfg.World.Gravity.V() {
		t.Errorf("expected emitter to inherit world gravity, got %+v", s.Emitters)
	}
	h, ok := s.Handle("bob")
	if !ok || !s.World.Contains(h) {
		t.Error("bob not registered")
	}
	b, _ := s.World.Body(h)
	if b.Collider == nil || b.Collider.Radius() != 0.25 {
		t.Errorf("unexpected collider %+v", b.Collider)
	}
}

func TestBuildRejectsInvalid(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Scene = ""
	cfg.Bodies = []config.BodyConfig{{Name: "ghost", Shape: "circle", Radius: 1}}

	if _, err := Build(cfg); !errors.Is(err, physics.ErrConfiguration) {
		t.Errorf("expected ErrConfiguration, got %v", err)
	}

	cfg = config.DefaultConfig()
	cfg.Scene = "volcano"
	if _, err := Build(cfg); err == nil {
		t.Error("expected error for unknown scene")
	}
}

func TestBilliardsPocketsRemoveBalls(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Scene = ""
	cfg.World.Gravity = config.Vec2{0, 0}
	cfg.Bodies = []config.BodyConfig{
		{Name: "pocket", Shape: "circle", Radius: 1, Collider: true, Trigger: true,
			Behavior: config.BehaviorRemoveOnTrigger},
		{Name: "ball", Shape: "circle", Radius: 0.5, Mass: 1, Position: config.Vec2{3, 0}, Velocity: config.Vec2{-10, 0}},
	}

	s, err := Build(cfg)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 60; i++ {
		s.World.Step(cfg.Dt)
	}
	if s.World.Contains(s.Handles["ball"]) {
		t.Error("ball should have dropped into the pocket")
	}
}
