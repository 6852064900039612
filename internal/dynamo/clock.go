package dynamo

import "math"

const (
	// DefaultMaxFrameTime bounds a single step after a slow frame.
	DefaultMaxFrameTime = 0.1
	DefaultTimeScale    = 1.0
)

// Stepper is the single entry point a host loop needs.
type Stepper interface {
	Step(dt float64)
}

// Clock turns wall-clock frame times into simulation steps. Pausing skips the
// step entirely; it never interrupts one.
type Clock struct {
	MaxFrameTime float64
	TimeScale    float64

	paused  bool
	elapsed float64
	frames  int
}

func NewClock() *Clock {
	return &Clock{MaxFrameTime: DefaultMaxFrameTime, TimeScale: DefaultTimeScale}
}

func (c *Clock) Pause()       { c.paused = true }
func (c *Clock) Resume()      { c.paused = false }
func (c *Clock) Paused() bool { return c.paused }

// Toggle flips the paused state and returns the new value.
func (c *Clock) Toggle() bool {
	c.paused = !c.paused
	return c.paused
}

// SetTimeScale changes the multiplier applied after clamping. Negative and
// non-finite scales are rejected.
func (c *Clock) SetTimeScale(scale float64) error {
	if scale < 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return invalidConfig("time scale must be non-negative and finite, got %f", scale)
	}
	c.TimeScale = scale
	return nil
}

// Scaled clamps frame to MaxFrameTime and applies TimeScale. A non-positive
// MaxFrameTime disables clamping. Non-positive and NaN frames yield zero.
func (c *Clock) Scaled(frame float64) float64 {
	if !(frame > 0) {
		return 0
	}
	if c.MaxFrameTime > 0 {
		frame = math.Min(frame, c.MaxFrameTime)
	}
	return frame * c.TimeScale
}

// Advance steps s by the scaled frame time and returns the dt actually
// simulated, which is zero while paused.
func (c *Clock) Advance(s Stepper, frame float64) float64 {
	if c.paused {
		return 0
	}
	dt := c.Scaled(frame)
	if !(dt > 0) || math.IsInf(dt, 0) {
		return 0
	}
	s.Step(dt)
	c.elapsed += dt
	c.frames++
	return dt
}

// Elapsed is the simulated time advanced through this clock.
func (c *Clock) Elapsed() float64 { return c.elapsed }

// Frames is the number of steps taken through this clock.
func (c *Clock) Frames() int { return c.frames }
