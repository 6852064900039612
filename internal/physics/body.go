package physics

import (
	"github.com/san-kum/physim/internal/collision"
	"github.com/san-kum/physim/internal/vmath"
)

// RigidBody carries the dynamic state of a body. Static rigid bodies have an
// inverse mass of zero and are never moved by integration or resolution.
type RigidBody struct {
	Velocity     vmath.Vector2D
	Acceleration vmath.Vector2D
	Friction     float64
	Restitution  float64

	mass    float64
	invMass float64
	static  bool
	forces  []vmath.Vector2D
}

func newRigidBody(mass float64, static bool, mat collision.Material) *RigidBody {
	rb := &RigidBody{Friction: mat.Friction, Restitution: mat.Restitution, static: static}
	rb.mass = mass
	if !static && mass > 0 {
		rb.invMass = 1 / mass
	}
	return rb
}

func (rb *RigidBody) Mass() float64 { return rb.mass }
func (rb *RigidBody) Static() bool  { return rb.static }

// InvMass is 0 for static bodies.
func (rb *RigidBody) InvMass() float64 {
	if rb.static {
		return 0
	}
	return rb.invMass
}

// SetMass changes the mass of a dynamic body.
func (rb *RigidBody) SetMass(mass float64) error {
	if rb.static {
		rb.mass = mass
		return nil
	}
	if mass <= 0 {
		return configError("mass", mass, ErrNonPositiveMass)
	}
	rb.mass, rb.invMass = mass, 1/mass
	return nil
}

// AddForce queues a force for the next integration step.
func (rb *RigidBody) AddForce(f vmath.Vector2D) {
	if rb.static {
		return
	}
	rb.forces = append(rb.forces, f)
}

// NetForce sums the queued forces.
func (rb *RigidBody) NetForce() vmath.Vector2D {
	var sum vmath.Vector2D
	for _, f := range rb.forces {
		sum = sum.Add(f)
	}
	return sum
}

// PendingForces is the number of queued forces.
func (rb *RigidBody) PendingForces() int { return len(rb.forces) }

func (rb *RigidBody) clearForces() { rb.forces = rb.forces[:0] }

// SetVelocity overwrites the velocity of a dynamic body.
func (rb *RigidBody) SetVelocity(v vmath.Vector2D) {
	if rb.static {
		return
	}
	rb.Velocity = v
}

// ApplyImpulse changes velocity immediately by impulse / mass.
func (rb *RigidBody) ApplyImpulse(impulse vmath.Vector2D) {
	if rb.static {
		return
	}
	rb.Velocity = rb.Velocity.Add(impulse.Scale(rb.invMass))
}

// Body is an arena entry. Either part may be absent: a collider-only body is a
// trigger zone or fixed scenery, a rigid-body-only body never collides.
type Body struct {
	Name      string
	Transform vmath.Transform
	Rigid     *RigidBody
	Collider  *collision.Collider

	handle Handle
	active bool
	alive  bool
}

func (b *Body) Handle() Handle { return b.handle }

// Active reports whether the body takes part in the simulation. Removed
// bodies are never active.
func (b *Body) Active() bool { return b.alive && b.active }

// Dynamic reports whether the body can be moved by the solver.
func (b *Body) Dynamic() bool {
	return b.Active() && b.Rigid != nil && !b.Rigid.static
}

// Position is shorthand for Transform.Position.
func (b *Body) Position() vmath.Vector2D { return b.Transform.Position }

// Bounds returns the collider AABB, or a degenerate box at the position for
// bodies without a collider.
func (b *Body) Bounds() vmath.AABB {
	if b.Collider == nil {
		return vmath.NewAABB(b.Transform.Position, b.Transform.Position)
	}
	return b.Collider.Bounds()
}

// RefreshBounds re-derives collider bounds from the current transform. It
// must run after every transform change and before the next detection pass.
func (b *Body) RefreshBounds() {
	if b.Collider != nil {
		b.Collider.Refresh(b.Transform)
	}
}

func (b *Body) translate(d vmath.Vector2D) {
	b.Transform.Position = b.Transform.Position.Add(d)
	b.RefreshBounds()
}

// BodyDef describes a body to add to a World.
type BodyDef struct {
	Name     string
	Position vmath.Vector2D
	Rotation float64
	Scale    vmath.Vector2D // zero means (1, 1)
	Velocity vmath.Vector2D

	Mass   float64
	Static bool

	// Shape is nil for bodies without a collider.
	Shape    *collision.Shape
	Trigger  bool
	Material collision.Material

	// NoRigidBody creates a collider-only body.
	NoRigidBody bool
	Inactive    bool
}

func (d BodyDef) validate() error {
	if d.NoRigidBody && d.Shape == nil {
		return configError("shape", nil, ErrInvalidShape)
	}
	if !d.NoRigidBody && !d.Static && d.Mass <= 0 {
		return configError("mass", d.Mass, ErrNonPositiveMass)
	}
	if d.Shape != nil && !d.Shape.Valid() {
		return configError("shape", d.Shape.Kind, ErrInvalidShape)
	}
	if d.Material.Friction < 0 {
		return configError("friction", d.Material.Friction, ErrOutOfRange)
	}
	if d.Material.Restitution < 0 {
		return configError("restitution", d.Material.Restitution, ErrOutOfRange)
	}
	return nil
}

func (d BodyDef) build() *Body {
	scale := d.Scale
	if scale.IsZero() {
		scale = vmath.Vec(1, 1)
	}
	b := &Body{
		Name:      d.Name,
		Transform: vmath.Transform{Position: d.Position, Rotation: d.Rotation, Scale: scale},
		active:    !d.Inactive,
		alive:     true,
	}
	if !d.NoRigidBody {
		b.Rigid = newRigidBody(d.Mass, d.Static, d.Material)
		if !d.Static {
			b.Rigid.Velocity = d.Velocity
		}
	}
	if d.Shape != nil {
		b.Collider = collision.NewCollider(*d.Shape, d.Material, d.Trigger)
		b.Collider.Refresh(b.Transform)
	}
	return b
}

// Circle returns a definition for a dynamic circle.
func Circle(pos vmath.Vector2D, radius, mass float64) BodyDef {
	s := collision.Circle(radius)
	return BodyDef{Position: pos, Mass: mass, Shape: &s, Material: collision.DefaultMaterial}
}

// Box returns a definition for a dynamic box.
func Box(pos vmath.Vector2D, width, height, mass float64) BodyDef {
	s := collision.Box(width, height)
	return BodyDef{Position: pos, Mass: mass, Shape: &s, Material: collision.DefaultMaterial}
}

// StaticBox returns a definition for immovable scenery.
func StaticBox(pos vmath.Vector2D, width, height float64) BodyDef {
	d := Box(pos, width, height, 0)
	d.Static = true
	return d
}

// TriggerZone returns a collider-only box that reports overlaps but never collides.
func TriggerZone(pos vmath.Vector2D, width, height float64) BodyDef {
	s := collision.Box(width, height)
	return BodyDef{Position: pos, Shape: &s, Trigger: true, NoRigidBody: true}
}
