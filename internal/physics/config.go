package physics

import (
	"math"

	"github.com/san-kum/physim/internal/spatial"
	"github.com/san-kum/physim/internal/vmath"
)

const (
	DefaultDamping          = 0.99
	DefaultSolverIterations = 6
	DefaultWorldExtent      = 100.0

	// PositionSlop is the penetration left uncorrected to avoid jitter.
	PositionSlop = 0.01
	// PositionPercent is the share of the remaining penetration removed per step.
	PositionPercent = 0.8
)

var DefaultGravity = vmath.Vec(0, -9.81)

// Config is fixed at construction. Damping is the fraction of velocity
// retained per second, in [0, 1].
type Config struct {
	Gravity            vmath.Vector2D
	Damping            float64
	SolverIterations   int
	Bounds             vmath.AABB
	QuadtreeMaxObjects int
	QuadtreeMaxLevels  int
}

func DefaultConfig() Config {
	return Config{
		Gravity:            DefaultGravity,
		Damping:            DefaultDamping,
		SolverIterations:   DefaultSolverIterations,
		Bounds:             vmath.NewAABB(vmath.Vec(-DefaultWorldExtent, -DefaultWorldExtent), vmath.Vec(DefaultWorldExtent, DefaultWorldExtent)),
		QuadtreeMaxObjects: spatial.DefaultMaxObjects,
		QuadtreeMaxLevels:  spatial.DefaultMaxLevels,
	}
}

func (c Config) Validate() error {
	if !c.Bounds.Valid() {
		return configError("bounds", c.Bounds, ErrInvalidBounds)
	}
	if math.IsNaN(c.Damping) || c.Damping < 0 || c.Damping > 1 {
		return configError("damping", c.Damping, ErrOutOfRange)
	}
	if c.SolverIterations < 1 {
		return configError("solver_iterations", c.SolverIterations, ErrOutOfRange)
	}
	if c.QuadtreeMaxObjects < 1 {
		return configError("quadtree_max_objects", c.QuadtreeMaxObjects, ErrOutOfRange)
	}
	if c.QuadtreeMaxLevels < 0 {
		return configError("quadtree_max_levels", c.QuadtreeMaxLevels, ErrOutOfRange)
	}
	if !c.Gravity.IsValid() {
		return configError("gravity", c.Gravity, ErrOutOfRange)
	}
	return nil
}
