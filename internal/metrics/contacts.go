package metrics

import (
	"math"

	"github.com/san-kum/physim/internal/physics"
)

// ContactCount is the mean number of solid contacts per step.
type ContactCount struct {
	name    string
	sum     int
	samples int
}

func NewContactCount() *ContactCount {
	return &ContactCount{name: "contacts"}
}

func (c *ContactCount) Name() string {
	return c.name
}

func (c *ContactCount) Observe(w *physics.World, t float64) {
	c.sum += w.Stats().Manifolds
	c.samples++
}

func (c *ContactCount) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return float64(c.sum) / float64(c.samples)
}

func (c *ContactCount) Reset() {
	c.sum = 0
	c.samples = 0
}

// MaxPenetration is the deepest solid contact seen, measured at detection
// time before correction.
type MaxPenetration struct {
	name  string
	depth float64
}

func NewMaxPenetration() *MaxPenetration {
	return &MaxPenetration{name: "max_penetration"}
}

func (p *MaxPenetration) Name() string {
	return p.name
}

func (p *MaxPenetration) Observe(w *physics.World, t float64) {
	for _, m := range w.Manifolds() {
		if m.Trigger {
			continue
		}
		for _, c := range m.Contacts {
			p.depth = math.Max(p.depth, c.Penetration)
		}
	}
}

func (p *MaxPenetration) Value() float64 { return p.depth }
func (p *MaxPenetration) Reset()         { p.depth = 0 }
