package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/physim/internal/physics"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Scene != "stack" {
		t.Errorf("expected scene stack, got %s", cfg.Scene)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("stack", "small")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Params.Count != 5 {
		t.Errorf("expected count 5, got %d", cfg.Params.Count)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("preset invalid: %v", err)
	}

	cfg.Params.Count = 99
	if Presets["stack"]["small"].Params.Count != 5 {
		t.Error("GetPreset returned the shared preset")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("stack", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "small"); cfg != nil {
		t.Error("expected nil for nonexistent scene")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("chain")
	if len(presets) != 2 || presets[0] != "long" || presets[1] != "rope" {
		t.Errorf("expected [long rope], got %v", presets)
	}
	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent scene")
	}
}

func TestAllPresetsValid(t *testing.T) {
	for scene := range Presets {
		for _, name := range ListPresets(scene) {
			if err := GetPreset(scene, name).Validate(); err != nil {
				t.Errorf("%s/%s: %v", scene, name, err)
			}
		}
	}
}

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")

	rest := 2.5
	cfg := DefaultConfig()
	cfg.Scene = ""
	cfg.Bodies = []BodyConfig{
		{Name: "floor", Shape: "box", Width: 20, Height: 1, Static: true},
		{Name: "ball", Shape: "circle", Radius: 0.5, Mass: 1, Position: Vec2{0, 5},
			Material: &MaterialConfig{Friction: 0.1, Restitution: 0.9}},
	}
	cfg.Constraints = []ConstraintConfig{{Kind: "distance", A: "floor", B: "ball", RestLength: &rest}}
	cfg.Emitters = []EmitterConfig{{Rate: 10, LifeMin: 1, LifeMax: 2, StartColor: "#ff8000"}}

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if len(got.Bodies) != 2 || got.Bodies[1].Position != (Vec2{0, 5}) {
		t.Errorf("bodies not preserved: %+v", got.Bodies)
	}
	if got.Bodies[1].Material == nil || got.Bodies[1].Material.Restitution != 0.9 {
		t.Errorf("material not preserved: %+v", got.Bodies[1].Material)
	}
	if got.Constraints[0].RestLength == nil || *got.Constraints[0].RestLength != 2.5 {
		t.Errorf("rest length not preserved: %+v", got.Constraints[0])
	}
	if err := got.Validate(); err != nil {
		t.Errorf("round-tripped config invalid: %v", err)
	}
}

func TestLoadFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := "scene: chain\nworld:\n  gravity: [0, -1]\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.World.Gravity != (Vec2{0, -1}) {
		t.Errorf("expected gravity [0 -1], got %v", cfg.World.Gravity)
	}
	if cfg.World.SolverIterations != DefaultSolverIterations || cfg.Dt != DefaultDt {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		mut  func(*Config)
	}{
		{"zero dt", func(c *Config) { c.Dt = 0 }},
		{"bad bounds", func(c *Config) { c.World.BoundsMax = c.World.BoundsMin }},
		{"bad damping", func(c *Config) { c.World.Damping = 2 }},
		{"unknown shape", func(c *Config) { c.Bodies = []BodyConfig{{Shape: "hexagon", Mass: 1}} }},
		{"massless dynamic", func(c *Config) { c.Bodies = []BodyConfig{{Shape: "circle", Radius: 1}} }},
		{"zero radius", func(c *Config) { c.Bodies = []BodyConfig{{Shape: "circle", Mass: 1}} }},
		{"duplicate name", func(c *Config) {
			c.Bodies = []BodyConfig{{Name: "a", Static: true}, {Name: "a", Static: true}}
		}},
		{"unknown behavior", func(c *Config) {
			c.Bodies = []BodyConfig{{Shape: "box", Width: 1, Height: 1, Static: true, Behavior: "explode"}}
		}},
		{"unknown constraint body", func(c *Config) {
			c.Scene = ""
			c.Constraints = []ConstraintConfig{{Kind: "distance", A: "x", B: "y"}}
		}},
		{"unknown constraint kind", func(c *Config) { c.Constraints = []ConstraintConfig{{Kind: "weld"}} }},
		{"bad emitter life", func(c *Config) { c.Emitters = []EmitterConfig{{Rate: 1, LifeMin: 2, LifeMax: 1}} }},
		{"bad emitter color", func(c *Config) {
			c.Emitters = []EmitterConfig{{Rate: 1, LifeMin: 1, LifeMax: 1, EndColor: "nope"}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mut(cfg)
			if err := cfg.Validate(); !errors.Is(err, physics.ErrConfiguration) {
				t.Errorf("expected ErrConfiguration, got %v", err)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	fallback := color.RGBA{R: 1, G: 2, B: 3, A: 255}

	c, err := ParseColor("#ff8000", fallback)
	if err != nil {
		t.Fatal(err)
	}
	if c != (color.RGBA{R: 255, G: 128, B: 0, A: 255}) {
		t.Errorf("expected orange, got %v", c)
	}
	if c, _ := ParseColor("", fallback); c != fallback {
		t.Errorf("expected fallback, got %v", c)
	}
}

func TestParams(t *testing.T) {
	cfg := DefaultConfig()
	for _, name := range ParamNames() {
		if err := cfg.SetParam(name, 3.4); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		got, err := cfg.Param(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		want := 3.4
		if name == "count" || name == "iterations" {
			want = 3
		}
		if got != want {
			t.Errorf("%s: expected %v, got %v", name, want, got)
		}
	}
	if cfg.World.Gravity != (Vec2{3.4, 3.4}) {
		t.Errorf("expected gravity [3.4 3.4], got %v", cfg.World.Gravity)
	}
	if err := cfg.SetParam("nope", 1); err == nil {
		t.Error("expected error for unknown parameter")
	}
	if _, err := cfg.Param("nope"); err == nil {
		t.Error("expected error for unknown parameter")
	}
}
