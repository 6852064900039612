package physics

import (
	"math/rand"

	"github.com/go-logr/logr"

	"github.com/san-kum/physim/internal/collision"
	"github.com/san-kum/physim/internal/particles"
	"github.com/san-kum/physim/internal/spatial"
	"github.com/san-kum/physim/internal/vmath"
)

// Manifold is a narrow-phase result between two bodies. It lives for one step.
type Manifold struct {
	A, B Handle
	collision.Manifold
}

// Stats summarises the most recent step.
type Stats struct {
	Steps          int
	Time           float64
	Bodies         int
	ActiveBodies   int
	CandidatePairs int
	Manifolds      int
	Triggers       int
	Constraints    int
	Particles      int
}

type Option func(*World)

func WithLogger(log logr.Logger) Option {
	return func(w *World) { w.log = log }
}

// WithRand sets the source shared by particle systems created through AddEmitter.
func WithRand(rng *rand.Rand) Option {
	return func(w *World) { w.rng = rng }
}

type World struct {
	cfg Config
	log logr.Logger
	rng *rand.Rand

	bodies []*Body
	gens   []uint32
	free   []uint32

	constraints []constraintSlot
	nextCID     ConstraintID
	behaviors   map[Handle]Behavior
	emitters    []*particles.System

	// per-step derived state
	tree       *spatial.Quadtree
	items      []spatial.Item
	pairs      []spatial.Pair
	candidates [][2]Handle
	manifolds  []Manifold
	indexStale bool

	stats Stats
}

// New validates cfg and returns an empty world.
func New(cfg Config, opts ...Option) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w := &World{
		cfg:       cfg,
		log:       logr.Discard(),
		behaviors: make(map[Handle]Behavior),
		tree:      spatial.New(cfg.Bounds, cfg.QuadtreeMaxObjects, cfg.QuadtreeMaxLevels),
		nextCID:   1,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.rng == nil {
		w.rng = rand.New(rand.NewSource(1))
	}
	return w, nil
}

func (w *World) Config() Config { return w.cfg }

// SetGravity replaces the world gravity.
func (w *World) SetGravity(g vmath.Vector2D) { w.cfg.Gravity = g }

// AddBody validates def and places the new body in the arena.
func (w *World) AddBody(def BodyDef) (Handle, error) {
	if err := def.validate(); err != nil {
		return NoHandle, err
	}
	b := def.build()

	var idx uint32
	if n := len(w.free); n > 0 {
		idx = w.free[n-1]
		w.free = w.free[:n-1]
		w.bodies[idx] = b
	} else {
		idx = uint32(len(w.bodies))
		w.bodies = append(w.bodies, b)
		w.gens = append(w.gens, 0)
	}
	w.gens[idx]++
	b.handle = Handle{index: idx, gen: w.gens[idx]}
	w.indexStale = true

	w.log.V(1).Info("body added", "handle", b.handle, "name", b.Name, "static", def.Static, "trigger", def.Trigger)
	return b.handle, nil
}

// MustAddBody panics on error. Intended for tests and fixed scenes.
func (w *World) MustAddBody(def BodyDef) Handle {
	h, err := w.AddBody(def)
	if err != nil {
		panic(err)
	}
	return h
}

// RemoveBody frees the slot. Existing handles to it become stale. Constraints
// referencing it stay registered and are skipped until the caller removes
// them. Safe to call from callbacks.
func (w *World) RemoveBody(h Handle) bool {
	b, ok := w.lookup(h)
	if !ok {
		return false
	}
	b.alive = false
	w.bodies[h.index] = nil
	w.gens[h.index]++
	w.free = append(w.free, h.index)
	delete(w.behaviors, h)
	w.indexStale = true

	w.log.V(1).Info("body removed", "handle", h, "name", b.Name)
	return true
}

func (w *World) lookup(h Handle) (*Body, bool) {
	if !h.Valid() || int(h.index) >= len(w.bodies) {
		return nil, false
	}
	if w.gens[h.index] != h.gen {
		return nil, false
	}
	b := w.bodies[h.index]
	if b == nil {
		return nil, false
	}
	return b, true
}

// Body resolves a handle. Stale handles report false.
func (w *World) Body(h Handle) (*Body, bool) {
	return w.lookup(h)
}

// Contains reports whether h refers to a live body.
func (w *World) Contains(h Handle) bool {
	_, ok := w.lookup(h)
	return ok
}

// IsActive reports false for stale handles as well as deactivated bodies.
func (w *World) IsActive(h Handle) bool {
	b, ok := w.lookup(h)
	return ok && b.Active()
}

func (w *World) SetActive(h Handle, active bool) error {
	b, ok := w.lookup(h)
	if !ok {
		return ErrInvalidHandle
	}
	b.active = active
	w.indexStale = true
	return nil
}

// SetTransform moves a body directly and refreshes its bounds.
func (w *World) SetTransform(h Handle, t vmath.Transform) error {
	b, ok := w.lookup(h)
	if !ok {
		return ErrInvalidHandle
	}
	b.Transform = t
	b.RefreshBounds()
	w.indexStale = true
	return nil
}

// SetPosition is SetTransform with only the position changed.
func (w *World) SetPosition(h Handle, p vmath.Vector2D) error {
	b, ok := w.lookup(h)
	if !ok {
		return ErrInvalidHandle
	}
	t := b.Transform
	t.Position = p
	return w.SetTransform(h, t)
}

// Bodies returns the live bodies in slot order. The slice is freshly allocated.
func (w *World) Bodies() []*Body {
	out := make([]*Body, 0, len(w.bodies))
	for _, b := range w.bodies {
		if b != nil {
			out = append(out, b)
		}
	}
	return out
}

// BodyCount is the number of live bodies.
func (w *World) BodyCount() int {
	return len(w.bodies) - len(w.free)
}

// AddEmitter creates a particle system stepped with the world.
func (w *World) AddEmitter(cfg particles.EmitterConfig) *particles.System {
	ps := particles.New(cfg, w.rng)
	w.emitters = append(w.emitters, ps)
	w.log.V(1).Info("emitter added", "position", cfg.Position, "rate", cfg.Rate)
	return ps
}

// RemoveEmitter detaches ps from the world.
func (w *World) RemoveEmitter(ps *particles.System) bool {
	for i, e := range w.emitters {
		if e == ps {
			w.emitters = append(w.emitters[:i], w.emitters[i+1:]...)
			return true
		}
	}
	return false
}

func (w *World) Emitters() []*particles.System { return w.emitters }

// Manifolds returns the manifolds of the most recent step.
func (w *World) Manifolds() []Manifold { return w.manifolds }

// CandidatePairs returns the broad-phase pairs of the most recent step, as
// the handles the bodies had when the pairs were found.
func (w *World) CandidatePairs() [][2]Handle {
	out := make([][2]Handle, len(w.candidates))
	copy(out, w.candidates)
	return out
}

func (w *World) Stats() Stats { return w.stats }

// Time is the simulated time accumulated by Step.
func (w *World) Time() float64 { return w.stats.Time }

// QueryAABB returns the active collidable bodies whose bounds overlap area.
func (w *World) QueryAABB(area vmath.AABB) []Handle {
	w.ensureIndex()
	ids := w.tree.Query(area, nil)
	return w.handlesFor(ids)
}

// QueryPoint returns the active collidable bodies whose bounds contain p.
func (w *World) QueryPoint(p vmath.Vector2D) []Handle {
	w.ensureIndex()
	ids := w.tree.QueryPoint(p, nil)
	return w.handlesFor(ids)
}

// Quadtree exposes the index built by the most recent step or query.
func (w *World) Quadtree() *spatial.Quadtree { return w.tree }

func (w *World) handlesFor(ids []int) []Handle {
	out := make([]Handle, 0, len(ids))
	for _, id := range ids {
		if h := w.handleAt(id); w.IsActive(h) {
			out = append(out, h)
		}
	}
	return out
}

func (w *World) handleAt(idx int) Handle {
	if idx < 0 || idx >= len(w.bodies) {
		return NoHandle
	}
	return Handle{index: uint32(idx), gen: w.gens[idx]}
}

func (w *World) ensureIndex() {
	if w.indexStale {
		w.rebuildIndex()
	}
}

// rebuildIndex inserts every active body with a collider, keyed by slot.
func (w *World) rebuildIndex() {
	w.items = w.items[:0]
	for i, b := range w.bodies {
		if b == nil || !b.Active() || b.Collider == nil {
			continue
		}
		w.items = append(w.items, spatial.Item{ID: i, Bounds: b.Collider.Bounds()})
	}
	w.tree.Rebuild(w.cfg.Bounds, w.items)
	w.indexStale = false
}
