package physics_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/physim/internal/particles"
	"github.com/san-kum/physim/internal/physics"
	"github.com/san-kum/physim/internal/vmath"
)

const frame = 1.0 / 60

var _ = Describe("World", func() {
	var w *physics.World

	BeforeEach(func() {
		var err error
		w, err = physics.New(physics.DefaultConfig())
		Expect(err).NotTo(HaveOccurred())
	})

	stepFor := func(seconds float64) {
		for t := 0.0; t < seconds; t += frame {
			w.Step(frame)
		}
	}

	Context("a ball dropped on a floor", func() {
		var floor, ball physics.Handle

		BeforeEach(func() {
			floor = w.MustAddBody(physics.StaticBox(vmath.Vec(0, -1), 20, 2))
			ball = w.MustAddBody(physics.Circle(vmath.Vec(0, 2), 0.5, 1))
		})

		It("comes to rest on the surface", func() {
			stepFor(5)

			b, ok := w.Body(ball)
			Expect(ok).To(BeTrue())
			Expect(b.Position().Y).To(BeNumerically("~", 0.5, 0.05))
			Expect(b.Position().X).To(BeNumerically("~", 0, 1e-9))
			Expect(b.Rigid.Velocity.Len()).To(BeNumerically("<", 0.5))
		})

		It("never moves the floor", func() {
			stepFor(2)

			f, _ := w.Body(floor)
			Expect(f.Position()).To(Equal(vmath.Vec(0, -1)))
			Expect(f.Rigid.Velocity.IsZero()).To(BeTrue())
		})
	})

	Context("a removal zone below a falling ball", func() {
		It("removes the ball once it enters", func() {
			zone := w.MustAddBody(physics.TriggerZone(vmath.Vec(0, -5), 10, 2))
			Expect(w.SetBehavior(zone, physics.RemoveOnTrigger{})).To(Succeed())
			ball := w.MustAddBody(physics.Circle(vmath.Vec(0, 0), 0.5, 1))

			stepFor(2)

			Expect(w.Contains(ball)).To(BeFalse())
			Expect(w.Contains(zone)).To(BeTrue())
			Expect(w.BodyCount()).To(Equal(1))
		})
	})

	Context("a pendulum on a distance constraint", func() {
		It("keeps the bob close to its rest length", func() {
			pivot := w.MustAddBody(physics.BodyDef{Static: true})
			bob := w.MustAddBody(physics.BodyDef{Mass: 1, Position: vmath.Vec(2, 0)})
			_, err := w.AddConstraint(physics.Distance(pivot, bob, 2))
			Expect(err).NotTo(HaveOccurred())

			stepFor(1)

			b, _ := w.Body(bob)
			Expect(b.Position().Len()).To(BeNumerically("~", 2, 0.3))
			Expect(b.Position().Y).To(BeNumerically("<", 0))
		})
	})

	Context("an emitter", func() {
		It("is stepped with the world and never collides", func() {
			cfg := particles.DefaultEmitterConfig()
			cfg.Rate = 60
			ps := w.AddEmitter(cfg)
			w.MustAddBody(physics.StaticBox(vmath.Vec(0, 0), 4, 4))

			stepFor(0.5)

			Expect(ps.Len()).To(BeNumerically(">", 0))
			Expect(w.Stats().Particles).To(Equal(ps.Len()))
			Expect(w.Manifolds()).To(BeEmpty())
		})
	})
})
