package metrics

import (
	"fmt"
	"sort"

	"github.com/san-kum/physim/internal/dynamo"
)

// DefaultSpeedLimit is the stability threshold used by the registry.
const DefaultSpeedLimit = 100.0

var registry = map[string]func() dynamo.Metric{
	"kinetic_energy":  func() dynamo.Metric { return NewKineticEnergy() },
	"energy_drift":    func() dynamo.Metric { return NewEnergyDrift() },
	"momentum":        func() dynamo.Metric { return NewMomentum() },
	"contacts":        func() dynamo.Metric { return NewContactCount() },
	"max_penetration": func() dynamo.Metric { return NewMaxPenetration() },
	"stability":       func() dynamo.Metric { return NewStability(DefaultSpeedLimit) },
}

// New returns a fresh metric by name.
func New(name string) (dynamo.Metric, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return f(), nil
}

// All returns one fresh instance of every registered metric, sorted by name.
func All() []dynamo.Metric {
	out := make([]dynamo.Metric, 0, len(registry))
	for _, name := range Names() {
		out = append(out, registry[name]())
	}
	return out
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
