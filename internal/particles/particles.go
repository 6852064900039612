// Package particles is a lightweight emitter/integrator driven by the same
// clock as the rigid-body world. Particles never interact with bodies or
// colliders.
package particles

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/san-kum/physim/internal/vmath"
)

type Particle struct {
	Position vmath.Vector2D
	Velocity vmath.Vector2D
	Life     float64
	MaxLife  float64
	Color    color.RGBA
	Size     float64
}

type EmitterConfig struct {
	Position         vmath.Vector2D
	Rate             float64 // particles per second
	LifeMin, LifeMax float64
	Gravity          vmath.Vector2D
	Velocity         vmath.Vector2D
	VelocityVariance vmath.Vector2D // uniform in [-v, +v] per axis
	StartSize        float64
	EndSize          float64
	StartColor       color.RGBA
	EndColor         color.RGBA
	MaxParticles     int // 0 means unbounded
}

func DefaultEmitterConfig() EmitterConfig {
	return EmitterConfig{
		Rate:             20,
		LifeMin:          1,
		LifeMax:          2,
		Gravity:          vmath.Vec(0, -9.81),
		Velocity:         vmath.Vec(0, 5),
		VelocityVariance: vmath.Vec(1, 1),
		StartSize:        1,
		EndSize:          0.1,
		StartColor:       color.RGBA{R: 255, G: 200, B: 64, A: 255},
		EndColor:         color.RGBA{R: 128, G: 32, B: 0, A: 255},
	}
}

// System owns its particles; the list grows and shrinks as particles are
// emitted and expire.
type System struct {
	cfg       EmitterConfig
	particles []Particle
	active    bool
	rng       *rand.Rand
}

// New returns an active system. A nil rng is replaced by a fixed-seed source
// so runs stay reproducible.
func New(cfg EmitterConfig, rng *rand.Rand) *System {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &System{cfg: cfg, active: true, rng: rng}
}

func (s *System) Config() EmitterConfig        { return s.cfg }
func (s *System) Active() bool                 { return s.active }
func (s *System) SetActive(active bool)        { s.active = active }
func (s *System) SetPosition(p vmath.Vector2D) { s.cfg.Position = p }
func (s *System) Len() int                     { return len(s.particles) }

// Particles exposes the live list for read-only consumers such as renderers.
// The slice is only valid until the next Update.
func (s *System) Particles() []Particle { return s.particles }

// Add inserts a particle as-is.
func (s *System) Add(p Particle) {
	if s.full() {
		return
	}
	s.particles = append(s.particles, p)
}

// Burst emits n particles immediately.
func (s *System) Burst(n int) {
	for i := 0; i < n; i++ {
		s.emit()
	}
}

// Clear removes every particle.
func (s *System) Clear() {
	s.particles = s.particles[:0]
}

// Update emits new particles when active, then advances and expires all of them.
func (s *System) Update(dt float64) {
	if dt <= 0 {
		return
	}

	if s.active && s.cfg.Rate > 0 {
		count := s.cfg.Rate * dt
		whole, frac := math.Modf(count)
		for i := 0; i < int(whole); i++ {
			s.emit()
		}
		if frac > 0 && s.rng.Float64() < frac {
			s.emit()
		}
	}

	gdt := s.cfg.Gravity.Scale(dt)
	for i := 0; i < len(s.particles); {
		p := &s.particles[i]
		p.Life -= dt
		if p.Life <= 0 {
			last := len(s.particles) - 1
			s.particles[i] = s.particles[last]
			s.particles = s.particles[:last]
			continue
		}

		p.Velocity = p.Velocity.Add(gdt)
		p.Position = p.Position.Add(p.Velocity.Scale(dt))

		ratio := 1.0
		if p.MaxLife > 0 {
			ratio = p.Life / p.MaxLife
		}
		p.Size = vmath.Lerp(s.cfg.StartSize, s.cfg.EndSize, 1-ratio)
		if ratio > 0.5 {
			p.Color = s.cfg.StartColor
		} else {
			p.Color = s.cfg.EndColor
		}
		i++
	}
}

func (s *System) emit() {
	if s.full() {
		return
	}
	life := s.cfg.LifeMin
	if s.cfg.LifeMax > s.cfg.LifeMin {
		life += s.rng.Float64() * (s.cfg.LifeMax - s.cfg.LifeMin)
	}
	if life <= 0 {
		return
	}
	jitter := vmath.Vec(
		(s.rng.Float64()*2-1)*s.cfg.VelocityVariance.X,
		(s.rng.Float64()*2-1)*s.cfg.VelocityVariance.Y,
	)
	s.particles = append(s.particles, Particle{
		Position: s.cfg.Position,
		Velocity: s.cfg.Velocity.Add(jitter),
		Life:     life,
		MaxLife:  life,
		Color:    s.cfg.StartColor,
		Size:     s.cfg.StartSize,
	})
}

func (s *System) full() bool {
	return s.cfg.MaxParticles > 0 && len(s.particles) >= s.cfg.MaxParticles
}
