package storage

import (
	"fmt"
	"sort"
)

// Fields selectable by Series.
var Fields = []string{"x", "y", "vx", "vy", "speed", "ke"}

// Series extracts one value per recorded step. With an empty body name the
// field is summed over all dynamic bodies, which is only meaningful for "ke"
// and "speed".
func Series(samples []Sample, body, field string) ([]float64, []float64, error) {
	value, err := fieldFunc(field)
	if err != nil {
		return nil, nil, err
	}

	byStep := make(map[int]float64)
	times := make(map[int]float64)
	for _, smp := range samples {
		if body != "" && smp.Name != body && smp.Body != body {
			continue
		}
		if body == "" && smp.Static {
			continue
		}
		byStep[smp.Step] += value(smp)
		times[smp.Step] = smp.Time
	}
	if len(byStep) == 0 {
		return nil, nil, fmt.Errorf("no samples for body %q", body)
	}

	steps := make([]int, 0, len(byStep))
	for s := range byStep {
		steps = append(steps, s)
	}
	sort.Ints(steps)

	ts := make([]float64, len(steps))
	vs := make([]float64, len(steps))
	for i, s := range steps {
		ts[i] = times[s]
		vs[i] = byStep[s]
	}
	return ts, vs, nil
}

func fieldFunc(field string) (func(Sample) float64, error) {
	switch field {
	case "x":
		return func(s Sample) float64 { return s.Position.X }, nil
	case "y":
		return func(s Sample) float64 { return s.Position.Y }, nil
	case "vx":
		return func(s Sample) float64 { return s.Velocity.X }, nil
	case "vy":
		return func(s Sample) float64 { return s.Velocity.Y }, nil
	case "speed":
		return func(s Sample) float64 { return s.Velocity.Len() }, nil
	case "ke":
		return func(s Sample) float64 { return 0.5 * s.Mass * s.Velocity.LenSq() }, nil
	}
	return nil, fmt.Errorf("unknown field: %s", field)
}
