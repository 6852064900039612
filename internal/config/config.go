package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/physim/internal/vmath"
)

const (
	DefaultDt               = 1.0 / 60
	DefaultDuration         = 10.0
	DefaultSeed             = 1
	DefaultDamping          = 0.99
	DefaultSolverIterations = 6
	DefaultExtent           = 100.0
	DefaultMaxObjects       = 4
	DefaultMaxLevels        = 5
	DefaultMaxFrameTime     = 0.1
	DefaultTimeScale        = 1.0
	DefaultGravityY         = -9.81
)

// Vec2 is written as a flow sequence: [x, y].
type Vec2 [2]float64

func (v Vec2) V() vmath.Vector2D { return vmath.Vec(v[0], v[1]) }

func FromVector(v vmath.Vector2D) Vec2 { return Vec2{v.X, v.Y} }

type Config struct {
	Scene       string             `yaml:"scene,omitempty"`
	Params      SceneParams        `yaml:"params,omitempty"`
	Dt          float64            `yaml:"dt"`
	Duration    float64            `yaml:"duration"`
	Seed        int64              `yaml:"seed"`
	World       WorldConfig        `yaml:"world"`
	Bodies      []BodyConfig       `yaml:"bodies,omitempty"`
	Constraints []ConstraintConfig `yaml:"constraints,omitempty"`
	Emitters    []EmitterConfig    `yaml:"emitters,omitempty"`
}

// SceneParams tune a generated scene. Zero values select the generator's defaults.
type SceneParams struct {
	Count   int     `yaml:"count,omitempty"`
	Size    float64 `yaml:"size,omitempty"`
	Spacing float64 `yaml:"spacing,omitempty"`
	Speed   float64 `yaml:"speed,omitempty"`
}

type WorldConfig struct {
	Gravity          Vec2    `yaml:"gravity,flow"`
	Damping          float64 `yaml:"damping"`
	SolverIterations int     `yaml:"solver_iterations"`
	BoundsMin        Vec2    `yaml:"bounds_min,flow"`
	BoundsMax        Vec2    `yaml:"bounds_max,flow"`
	MaxObjects       int     `yaml:"quadtree_max_objects"`
	MaxLevels        int     `yaml:"quadtree_max_levels"`
	MaxFrameTime     float64 `yaml:"max_frame_time"`
	TimeScale        float64 `yaml:"time_scale"`
}

type MaterialConfig struct {
	Friction    float64 `yaml:"friction"`
	Restitution float64 `yaml:"restitution"`
}

type BodyConfig struct {
	Name     string          `yaml:"name,omitempty"`
	Shape    string          `yaml:"shape"` // box, circle or none
	Width    float64         `yaml:"width,omitempty"`
	Height   float64         `yaml:"height,omitempty"`
	Radius   float64         `yaml:"radius,omitempty"`
	Position Vec2            `yaml:"position,flow"`
	Velocity Vec2            `yaml:"velocity,flow,omitempty"`
	Rotation float64         `yaml:"rotation,omitempty"`
	Scale    Vec2            `yaml:"scale,flow,omitempty"`
	Mass     float64         `yaml:"mass,omitempty"`
	Static   bool            `yaml:"static,omitempty"`
	Trigger  bool            `yaml:"trigger,omitempty"`
	Collider bool            `yaml:"collider_only,omitempty"`
	Inactive bool            `yaml:"inactive,omitempty"`
	Material *MaterialConfig `yaml:"material,omitempty"`
	Behavior string          `yaml:"behavior,omitempty"`
}

type ConstraintConfig struct {
	Kind       string   `yaml:"kind"`
	A          string   `yaml:"a"`
	B          string   `yaml:"b"`
	AnchorA    Vec2     `yaml:"anchor_a,flow,omitempty"`
	AnchorB    Vec2     `yaml:"anchor_b,flow,omitempty"`
	RestLength *float64 `yaml:"rest_length,omitempty"` // nil uses the initial anchor distance
	Stiffness  float64  `yaml:"stiffness,omitempty"`
	Damping    float64  `yaml:"damping,omitempty"`
}

type EmitterConfig struct {
	Position         Vec2    `yaml:"position,flow"`
	Rate             float64 `yaml:"rate"`
	LifeMin          float64 `yaml:"life_min"`
	LifeMax          float64 `yaml:"life_max"`
	Gravity          *Vec2   `yaml:"gravity,flow,omitempty"` // nil inherits world gravity
	Velocity         Vec2    `yaml:"velocity,flow"`
	VelocityVariance Vec2    `yaml:"velocity_variance,flow,omitempty"`
	StartSize        float64 `yaml:"start_size"`
	EndSize          float64 `yaml:"end_size"`
	StartColor       string  `yaml:"start_color,omitempty"`
	EndColor         string  `yaml:"end_color,omitempty"`
	MaxParticles     int     `yaml:"max_particles,omitempty"`
}

func DefaultWorld() WorldConfig {
	return WorldConfig{
		Gravity:          Vec2{0, DefaultGravityY},
		Damping:          DefaultDamping,
		SolverIterations: DefaultSolverIterations,
		BoundsMin:        Vec2{-DefaultExtent, -DefaultExtent},
		BoundsMax:        Vec2{DefaultExtent, DefaultExtent},
		MaxObjects:       DefaultMaxObjects,
		MaxLevels:        DefaultMaxLevels,
		MaxFrameTime:     DefaultMaxFrameTime,
		TimeScale:        DefaultTimeScale,
	}
}

func DefaultConfig() *Config {
	return &Config{
		Scene:    "stack",
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Seed:     DefaultSeed,
		World:    DefaultWorld(),
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{Dt: DefaultDt, Duration: DefaultDuration, Seed: DefaultSeed, World: DefaultWorld()}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy, so presets can be customised without mutating
// the shared table.
func (c *Config) Clone() *Config {
	out := *c
	out.Bodies = append([]BodyConfig(nil), c.Bodies...)
	out.Constraints = append([]ConstraintConfig(nil), c.Constraints...)
	out.Emitters = append([]EmitterConfig(nil), c.Emitters...)
	return &out
}
