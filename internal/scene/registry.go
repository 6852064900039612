package scene

import (
	"fmt"
	"sort"

	"github.com/san-kum/physim/internal/config"
)

// Generator appends bodies, constraints and emitters to cfg. It may also
// adjust the world section, for example to disable gravity.
type Generator func(cfg *config.Config)

type entry struct {
	description string
	generate    Generator
}

type Registry struct {
	scenes map[string]entry
}

func NewRegistry() *Registry {
	r := &Registry{scenes: make(map[string]entry)}

	r.Register("stack", "boxes stacked on a floor", generateStack)
	r.Register("billiards", "a rack of balls broken by a cue ball, pockets remove balls", generateBilliards)
	r.Register("chain", "a rope of circles linked by distance constraints", generateChain)
	r.Register("fountain", "a particle fountain over a floor with a crate", generateFountain)
	r.Register("pendulum", "one or more bobs on distance constraints (Newton's cradle)", generatePendulum)
	r.Register("bridge", "planks joined by springs, hinged to two pillars", generateBridge)

	return r
}

// Default is the registry used by Build.
var Default = NewRegistry()

func (r *Registry) Register(name, description string, g Generator) {
	r.scenes[name] = entry{description: description, generate: g}
}

func (r *Registry) Get(name string) (Generator, error) {
	e, ok := r.scenes[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene: %s", name)
	}
	return e.generate, nil
}

func (r *Registry) Describe(name string) string {
	return r.scenes[name].description
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.scenes))
	for name := range r.scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Expand returns a copy of cfg with the named generator applied ahead of any
// explicit entries. The result has no scene name and validates on its own.
func (r *Registry) Expand(cfg *config.Config) (*config.Config, error) {
	out := cfg.Clone()
	if cfg.Scene == "" {
		return out, nil
	}
	gen, err := r.Get(cfg.Scene)
	if err != nil {
		return nil, err
	}

	generated := cfg.Clone()
	generated.Bodies, generated.Constraints, generated.Emitters = nil, nil, nil
	gen(generated)

	out.World = generated.World
	out.Bodies = append(generated.Bodies, cfg.Bodies...)
	out.Constraints = append(generated.Constraints, cfg.Constraints...)
	out.Emitters = append(generated.Emitters, cfg.Emitters...)
	out.Scene = ""
	out.Params = config.SceneParams{}
	return out, nil
}
