package config

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/physim/internal/collision"
	"github.com/san-kum/physim/internal/physics"
	"github.com/san-kum/physim/internal/vmath"
)

// Behaviours a body may name in a scene file.
const (
	BehaviorRemoveOnTrigger   = "remove_on_trigger"
	BehaviorRemoveOnCollision = "remove_on_collision"
	BehaviorCountTriggers     = "count_triggers"
)

// Physics converts the world section into a physics configuration.
func (w WorldConfig) Physics() physics.Config {
	return physics.Config{
		Gravity:            w.Gravity.V(),
		Damping:            w.Damping,
		SolverIterations:   w.SolverIterations,
		Bounds:             vmath.NewAABB(w.BoundsMin.V(), w.BoundsMax.V()),
		QuadtreeMaxObjects: w.MaxObjects,
		QuadtreeMaxLevels:  w.MaxLevels,
	}
}

// Validate reports the first problem found. Every error matches
// physics.ErrConfiguration.
func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return invalid("dt", c.Dt, "must be positive")
	}
	if c.Duration <= 0 {
		return invalid("duration", c.Duration, "must be positive")
	}
	if c.World.TimeScale <= 0 {
		return invalid("world.time_scale", c.World.TimeScale, "must be positive")
	}
	if c.World.MaxFrameTime < 0 {
		return invalid("world.max_frame_time", c.World.MaxFrameTime, "must not be negative")
	}
	if err := c.World.Physics().Validate(); err != nil {
		return err
	}

	names := make(map[string]bool, len(c.Bodies))
	for i, b := range c.Bodies {
		if err := b.validate(); err != nil {
			return fmt.Errorf("bodies[%d]: %w", i, err)
		}
		if b.Name == "" {
			continue
		}
		if names[b.Name] {
			return invalid(fmt.Sprintf("bodies[%d].name", i), b.Name, "duplicate")
		}
		names[b.Name] = true
	}

	for i, cc := range c.Constraints {
		if _, err := physics.ParseConstraintKind(cc.Kind); err != nil {
			return invalid(fmt.Sprintf("constraints[%d].kind", i), cc.Kind, "unknown")
		}
		if c.Scene == "" && (!names[cc.A] || !names[cc.B]) {
			return invalid(fmt.Sprintf("constraints[%d]", i), cc.A+"/"+cc.B, "references an unknown body")
		}
		if cc.RestLength != nil && *cc.RestLength < 0 {
			return invalid(fmt.Sprintf("constraints[%d].rest_length", i), *cc.RestLength, "must not be negative")
		}
		if cc.Stiffness < 0 || cc.Damping < 0 {
			return invalid(fmt.Sprintf("constraints[%d].stiffness", i), cc.Stiffness, "must not be negative")
		}
	}

	for i, e := range c.Emitters {
		if err := e.validate(); err != nil {
			return fmt.Errorf("emitters[%d]: %w", i, err)
		}
	}
	return nil
}

func (b BodyConfig) validate() error {
	switch b.Shape {
	case "none", "":
		if b.Collider {
			return invalid("shape", b.Shape, "collider-only body needs a shape")
		}
	default:
		kind, err := collision.ParseShapeKind(b.Shape)
		if err != nil {
			return invalid("shape", b.Shape, "unknown")
		}
		if kind == collision.ShapeBox && (b.Width <= 0 || b.Height <= 0) {
			return invalid("width/height", Vec2{b.Width, b.Height}, "must be positive")
		}
		if kind == collision.ShapeCircle && b.Radius <= 0 {
			return invalid("radius", b.Radius, "must be positive")
		}
	}
	if !b.Static && !b.Collider && b.Mass <= 0 {
		return invalid("mass", b.Mass, "dynamic body needs positive mass")
	}
	switch b.Behavior {
	case "", BehaviorRemoveOnTrigger, BehaviorRemoveOnCollision, BehaviorCountTriggers:
	default:
		return invalid("behavior", b.Behavior, "unknown")
	}
	return nil
}

func (e EmitterConfig) validate() error {
	if e.Rate < 0 {
		return invalid("rate", e.Rate, "must not be negative")
	}
	if e.LifeMin <= 0 || e.LifeMax < e.LifeMin {
		return invalid("life", Vec2{e.LifeMin, e.LifeMax}, "need 0 < life_min <= life_max")
	}
	if e.MaxParticles < 0 {
		return invalid("max_particles", e.MaxParticles, "must not be negative")
	}
	for _, s := range []string{e.StartColor, e.EndColor} {
		if _, err := ParseColor(s, color.RGBA{}); err != nil {
			return invalid("color", s, err.Error())
		}
	}
	return nil
}

// ParseColor reads a hex colour such as "#ffcc40". An empty string yields fallback.
func ParseColor(s string, fallback color.RGBA) (color.RGBA, error) {
	if s == "" {
		return fallback, nil
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return fallback, err
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

func invalid(field string, value any, reason string) error {
	return fmt.Errorf("%w: %s=%v: %s", physics.ErrConfiguration, field, value, reason)
}
