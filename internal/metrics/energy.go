package metrics

import (
	"math"

	"github.com/san-kum/physim/internal/physics"
)

// KineticEnergy reports the mean total kinetic energy of dynamic bodies.
type KineticEnergy struct {
	name    string
	samples int
	total   float64
	last    float64
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(w *physics.World, t float64) {
	e.last = Kinetic(w)
	e.total += e.last
	e.samples++
}

func (e *KineticEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

// Last is the most recent sample.
func (e *KineticEnergy) Last() float64 { return e.last }

func (e *KineticEnergy) Reset() {
	e.total = 0
	e.last = 0
	e.samples = 0
}

// EnergyDrift tracks the largest relative change of kinetic plus
// gravitational potential energy from the first observation.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	currentEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(w *physics.World, t float64) {
	energy := Kinetic(w) + Potential(w)

	if e.samples == 0 {
		e.initialEnergy = energy
	}

	e.currentEnergy = energy
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

// Kinetic sums ½mv² over active dynamic bodies.
func Kinetic(w *physics.World) float64 {
	sum := 0.0
	for _, b := range w.Bodies() {
		if !b.Dynamic() {
			continue
		}
		sum += 0.5 * b.Rigid.Mass() * b.Rigid.Velocity.LenSq()
	}
	return sum
}

// Potential sums -m g·p over active dynamic bodies, zero at the origin.
func Potential(w *physics.World) float64 {
	g := w.Config().Gravity
	sum := 0.0
	for _, b := range w.Bodies() {
		if !b.Dynamic() {
			continue
		}
		sum -= b.Rigid.Mass() * g.Dot(b.Position())
	}
	return sum
}
