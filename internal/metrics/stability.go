package metrics

import (
	"github.com/san-kum/physim/internal/physics"
)

// Stability is the fraction of observed steps in which every dynamic body
// stayed inside the world bounds and under the speed limit. It also keeps the
// highest speed seen, which is usually the first sign of a blow-up.
type Stability struct {
	limit    float64
	steps    int
	bad      int
	topSpeed float64
}

func NewStability(speedLimit float64) *Stability {
	return &Stability{limit: speedLimit}
}

func (s *Stability) Name() string { return "stability" }

func (s *Stability) Observe(w *physics.World, t float64) {
	s.steps++
	bounds := w.Config().Bounds
	ok := true
	for _, b := range w.Bodies() {
		if !b.Dynamic() {
			continue
		}
		speed := b.Rigid.Velocity.Len()
		s.topSpeed = max(s.topSpeed, speed)
		if speed > s.limit || !bounds.ContainsPoint(b.Position()) {
			ok = false
		}
	}
	if !ok {
		s.bad++
	}
}

func (s *Stability) Value() float64 {
	if s.steps == 0 {
		return 1
	}
	return float64(s.steps-s.bad) / float64(s.steps)
}

// TopSpeed is the fastest dynamic body speed observed since the last Reset.
func (s *Stability) TopSpeed() float64 { return s.topSpeed }

func (s *Stability) Reset() {
	*s = Stability{limit: s.limit}
}
