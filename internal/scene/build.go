package scene

import (
	"fmt"
	"math/rand"

	"github.com/san-kum/physim/internal/collision"
	"github.com/san-kum/physim/internal/config"
	"github.com/san-kum/physim/internal/particles"
	"github.com/san-kum/physim/internal/physics"
	"github.com/san-kum/physim/internal/vmath"
)

// Scene is a built world plus the names it was built from.
type Scene struct {
	World    *physics.World
	Config   *config.Config // expanded
	Handles  map[string]physics.Handle
	Counters map[string]*physics.TriggerCounter
	Emitters []*particles.System
}

// Build expands cfg with the default registry and populates a new world.
func Build(cfg *config.Config, opts ...physics.Option) (*Scene, error) {
	return Default.Build(cfg, opts...)
}

func (r *Registry) Build(cfg *config.Config, opts ...physics.Option) (*Scene, error) {
	expanded, err := r.Expand(cfg)
	if err != nil {
		return nil, err
	}
	if err := expanded.Validate(); err != nil {
		return nil, err
	}

	opts = append([]physics.Option{physics.WithRand(rand.New(rand.NewSource(expanded.Seed)))}, opts...)
	w, err := physics.New(expanded.World.Physics(), opts...)
	if err != nil {
		return nil, err
	}

	s := &Scene{
		World:    w,
		Config:   expanded,
		Handles:  make(map[string]physics.Handle, len(expanded.Bodies)),
		Counters: make(map[string]*physics.TriggerCounter),
	}

	for i, bc := range expanded.Bodies {
		name := bc.Name
		if name == "" {
			name = fmt.Sprintf("body-%d", i)
		}
		h, err := w.AddBody(bodyDef(name, bc))
		if err != nil {
			return nil, fmt.Errorf("body %s: %w", name, err)
		}
		s.Handles[name] = h
		if err := s.attachBehavior(name, h, bc.Behavior); err != nil {
			return nil, err
		}
	}

	for i, cc := range expanded.Constraints {
		c, err := s.constraint(cc)
		if err != nil {
			return nil, fmt.Errorf("constraint %d: %w", i, err)
		}
		if _, err := w.AddConstraint(c); err != nil {
			return nil, fmt.Errorf("constraint %d: %w", i, err)
		}
	}

	gravity := expanded.World.Gravity.V()
	for i, ec := range expanded.Emitters {
		pc, err := emitterConfig(ec, gravity)
		if err != nil {
			return nil, fmt.Errorf("emitter %d: %w", i, err)
		}
		s.Emitters = append(s.Emitters, w.AddEmitter(pc))
	}

	return s, nil
}

// Handle looks up a body by name.
func (s *Scene) Handle(name string) (physics.Handle, bool) {
	h, ok := s.Handles[name]
	return h, ok
}

func bodyDef(name string, bc config.BodyConfig) physics.BodyDef {
	def := physics.BodyDef{
		Name:        name,
		Position:    bc.Position.V(),
		Rotation:    bc.Rotation,
		Scale:       bc.Scale.V(),
		Velocity:    bc.Velocity.V(),
		Mass:        bc.Mass,
		Static:      bc.Static,
		Trigger:     bc.Trigger,
		NoRigidBody: bc.Collider,
		Inactive:    bc.Inactive,
		Material:    collision.DefaultMaterial,
	}
	if bc.Material != nil {
		def.Material = collision.Material{Friction: bc.Material.Friction, Restitution: bc.Material.Restitution}
	}

	switch bc.Shape {
	case "box":
		s := collision.Box(bc.Width, bc.Height)
		def.Shape = &s
	case "circle":
		s := collision.Circle(bc.Radius)
		def.Shape = &s
	}
	return def
}

func (s *Scene) attachBehavior(name string, h physics.Handle, behavior string) error {
	var b physics.Behavior
	switch behavior {
	case "":
		return nil
	case config.BehaviorRemoveOnTrigger:
		b = physics.RemoveOnTrigger{}
	case config.BehaviorRemoveOnCollision:
		b = physics.RemoveOnCollision{}
	case config.BehaviorCountTriggers:
		counter := &physics.TriggerCounter{}
		s.Counters[name] = counter
		b = counter
	default:
		return fmt.Errorf("unknown behavior: %s", behavior)
	}
	return s.World.SetBehavior(h, b)
}

func (s *Scene) constraint(cc config.ConstraintConfig) (physics.Constraint, error) {
	kind, err := physics.ParseConstraintKind(cc.Kind)
	if err != nil {
		return physics.Constraint{}, err
	}
	a, okA := s.Handles[cc.A]
	b, okB := s.Handles[cc.B]
	if !okA || !okB {
		return physics.Constraint{}, fmt.Errorf("%w: unknown body %q or %q", physics.ErrInvalidHandle, cc.A, cc.B)
	}

	c := physics.Constraint{
		Kind:      kind,
		A:         a,
		B:         b,
		AnchorA:   cc.AnchorA.V(),
		AnchorB:   cc.AnchorB.V(),
		Stiffness: cc.Stiffness,
		Damping:   cc.Damping,
	}
	if cc.RestLength != nil {
		c.RestLength = *cc.RestLength
	} else if pa, pb, ok := s.World.WorldAnchors(c); ok {
		c.RestLength = pa.Distance(pb)
	}
	return c, nil
}

func emitterConfig(ec config.EmitterConfig, worldGravity vmath.Vector2D) (particles.EmitterConfig, error) {
	def := particles.DefaultEmitterConfig()
	start, err := config.ParseColor(ec.StartColor, def.StartColor)
	if err != nil {
		return def, err
	}
	end, err := config.ParseColor(ec.EndColor, def.EndColor)
	if err != nil {
		return def, err
	}

	gravity := worldGravity
	if ec.Gravity != nil {
		gravity = ec.Gravity.V()
	}
	return particles.EmitterConfig{
		Position:         ec.Position.V(),
		Rate:             ec.Rate,
		LifeMin:          ec.LifeMin,
		LifeMax:          ec.LifeMax,
		Gravity:          gravity,
		Velocity:         ec.Velocity.V(),
		VelocityVariance: ec.VelocityVariance.V(),
		StartSize:        ec.StartSize,
		EndSize:          ec.EndSize,
		StartColor:       start,
		EndColor:         end,
		MaxParticles:     ec.MaxParticles,
	}, nil
}
