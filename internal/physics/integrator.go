package physics

import "math"

// integrate applies gravity and queued forces to every active dynamic body,
// then advances velocity (semi-implicit) and position (trapezoidal, using the
// mean of old and new velocity). Static bodies are skipped entirely.
func (w *World) integrate(dt float64) {
	damping := math.Pow(w.cfg.Damping, dt)
	for _, b := range w.bodies {
		if b == nil || !b.Dynamic() {
			continue
		}
		rb := b.Rigid

		rb.AddForce(w.cfg.Gravity.Scale(rb.mass))
		rb.Acceleration = rb.NetForce().Scale(rb.invMass)

		old := rb.Velocity
		rb.Velocity = rb.Velocity.Add(rb.Acceleration.Scale(dt)).Scale(damping)

		avg := old.Add(rb.Velocity).Scale(0.5)
		b.Transform.Position = b.Transform.Position.Add(avg.Scale(dt))

		rb.clearForces()
		b.RefreshBounds()
	}
}
