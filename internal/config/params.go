package config

import (
	"fmt"
	"math"
	"sort"
)

type param struct {
	get func(c *Config) float64
	set func(c *Config, v float64)
}

// params are the scalar knobs that sweeps and searches may vary.
var params = map[string]param{
	"count": {
		get: func(c *Config) float64 { return float64(c.Params.Count) },
		set: func(c *Config, v float64) { c.Params.Count = int(math.Round(v)) },
	},
	"size": {
		get: func(c *Config) float64 { return c.Params.Size },
		set: func(c *Config, v float64) { c.Params.Size = v },
	},
	"spacing": {
		get: func(c *Config) float64 { return c.Params.Spacing },
		set: func(c *Config, v float64) { c.Params.Spacing = v },
	},
	"speed": {
		get: func(c *Config) float64 { return c.Params.Speed },
		set: func(c *Config, v float64) { c.Params.Speed = v },
	},
	"dt": {
		get: func(c *Config) float64 { return c.Dt },
		set: func(c *Config, v float64) { c.Dt = v },
	},
	"duration": {
		get: func(c *Config) float64 { return c.Duration },
		set: func(c *Config, v float64) { c.Duration = v },
	},
	"damping": {
		get: func(c *Config) float64 { return c.World.Damping },
		set: func(c *Config, v float64) { c.World.Damping = v },
	},
	"gravity_x": {
		get: func(c *Config) float64 { return c.World.Gravity[0] },
		set: func(c *Config, v float64) { c.World.Gravity[0] = v },
	},
	"gravity_y": {
		get: func(c *Config) float64 { return c.World.Gravity[1] },
		set: func(c *Config, v float64) { c.World.Gravity[1] = v },
	},
	"iterations": {
		get: func(c *Config) float64 { return float64(c.World.SolverIterations) },
		set: func(c *Config, v float64) { c.World.SolverIterations = int(math.Round(v)) },
	},
}

// ParamNames returns the names accepted by Param and SetParam, sorted.
func ParamNames() []string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Config) Param(name string) (float64, error) {
	p, ok := params[name]
	if !ok {
		return 0, fmt.Errorf("unknown parameter: %s", name)
	}
	return p.get(c), nil
}

// SetParam assigns a named scalar. Integer parameters are rounded.
func (c *Config) SetParam(name string, v float64) error {
	p, ok := params[name]
	if !ok {
		return fmt.Errorf("unknown parameter: %s", name)
	}
	p.set(c, v)
	return nil
}
