package scene

import (
	"fmt"
	"math"

	"github.com/san-kum/physim/internal/config"
)

func orDefault(v, def float64) float64 {
	if v <= 0 {
		return def
	}
	return v
}

func countOr(n, def int) int {
	if n <= 0 {
		return def
	}
	return n
}

func floor(width float64) config.BodyConfig {
	return config.BodyConfig{
		Name: "floor", Shape: "box", Width: width, Height: 2,
		Position: config.Vec2{0, -1}, Static: true,
	}
}

func generateStack(cfg *config.Config) {
	n := countOr(cfg.Params.Count, 5)
	size := orDefault(cfg.Params.Size, 1)
	gap := orDefault(cfg.Params.Spacing, 0.01)

	cfg.Bodies = append(cfg.Bodies, floor(40))
	for i := 0; i < n; i++ {
		cfg.Bodies = append(cfg.Bodies, config.BodyConfig{
			Name:     fmt.Sprintf("box-%d", i),
			Shape:    "box",
			Width:    size,
			Height:   size,
			Position: config.Vec2{0, size/2 + float64(i)*(size+gap)},
			Mass:     1,
		})
	}
	height := float64(n) * (size + gap)
	cfg.Bodies = append(cfg.Bodies, config.BodyConfig{
		Name: "sensor", Shape: "box", Width: size * 3, Height: height,
		Position: config.Vec2{0, height / 2}, Collider: true, Trigger: true,
		Behavior: config.BehaviorCountTriggers,
	})
}

func generateBilliards(cfg *config.Config) {
	n := countOr(cfg.Params.Count, 15)
	r := orDefault(cfg.Params.Size, 0.5)
	speed := orDefault(cfg.Params.Speed, 10)

	cfg.World.Gravity = config.Vec2{0, 0}
	cfg.World.Damping = 0.6

	const halfW, halfH, wall = 15.0, 8.0, 1.0
	cushions := []struct {
		name string
		pos  config.Vec2
		w, h float64
	}{
		{"cushion-top", config.Vec2{0, halfH + wall/2}, 2*halfW + 2*wall, wall},
		{"cushion-bottom", config.Vec2{0, -halfH - wall/2}, 2*halfW + 2*wall, wall},
		{"cushion-left", config.Vec2{-halfW - wall/2, 0}, wall, 2 * halfH},
		{"cushion-right", config.Vec2{halfW + wall/2, 0}, wall, 2 * halfH},
	}
	felt := &config.MaterialConfig{Friction: 0.05, Restitution: 0.9}
	for _, c := range cushions {
		cfg.Bodies = append(cfg.Bodies, config.BodyConfig{
			Name: c.name, Shape: "box", Width: c.w, Height: c.h,
			Position: c.pos, Static: true, Material: felt,
		})
	}
	for i, corner := range []config.Vec2{{-halfW, -halfH}, {halfW, -halfH}, {-halfW, halfH}, {halfW, halfH}} {
		cfg.Bodies = append(cfg.Bodies, config.BodyConfig{
			Name: fmt.Sprintf("pocket-%d", i), Shape: "circle", Radius: 1.2 * r,
			Position: corner, Collider: true, Trigger: true,
			Behavior: config.BehaviorRemoveOnTrigger,
		})
	}

	ball := &config.MaterialConfig{Friction: 0.05, Restitution: 0.95}
	apex := 5.0
	row, col := 0, 0
	for i := 0; i < n; i++ {
		x := apex + float64(row)*r*math.Sqrt(3)
		y := (float64(col) - float64(row)/2) * 2 * r
		cfg.Bodies = append(cfg.Bodies, config.BodyConfig{
			Name: fmt.Sprintf("ball-%d", i+1), Shape: "circle", Radius: r,
			Position: config.Vec2{x, y}, Mass: 1, Material: ball,
		})
		col++
		if col > row {
			row++
			col = 0
		}
	}
	cfg.Bodies = append(cfg.Bodies, config.BodyConfig{
		Name: "cue", Shape: "circle", Radius: r, Mass: 1,
		Position: config.Vec2{-8, 0}, Velocity: config.Vec2{speed, 0}, Material: ball,
	})
}

func generateChain(cfg *config.Config) {
	n := countOr(cfg.Params.Count, 8)
	spacing := orDefault(cfg.Params.Spacing, 1)
	r := orDefault(cfg.Params.Size, spacing / 4)

	top := config.Vec2{0, 10}
	cfg.Bodies = append(cfg.Bodies, config.BodyConfig{Name: "anchor", Shape: "none", Position: top, Static: true})
	prev := "anchor"
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("link-%d", i)
		cfg.Bodies = append(cfg.Bodies, config.BodyConfig{
			Name: name, Shape: "circle", Radius: r, Mass: 0.5,
			Position: config.Vec2{top[0] + float64(i+1)*spacing, top[1]},
		})
		cfg.Constraints = append(cfg.Constraints, config.ConstraintConfig{Kind: "distance", A: prev, B: name})
		prev = name
	}
	cfg.Bodies = append(cfg.Bodies, floor(40))
}

func generateFountain(cfg *config.Config) {
	rate := float64(countOr(cfg.Params.Count, 40))
	speed := orDefault(cfg.Params.Speed, 8)

	cfg.Bodies = append(cfg.Bodies,
		floor(40),
		config.BodyConfig{Name: "crate", Shape: "box", Width: 2, Height: 2, Position: config.Vec2{4, 1}, Mass: 5},
	)
	cfg.Emitters = append(cfg.Emitters, config.EmitterConfig{
		Position:         config.Vec2{0, 0.5},
		Rate:             rate,
		LifeMin:          1,
		LifeMax:          2.5,
		Velocity:         config.Vec2{0, speed},
		VelocityVariance: config.Vec2{2, 1},
		StartSize:        0.4,
		EndSize:          0.05,
		StartColor:       "#5fd7ff",
		EndColor:         "#005f87",
		MaxParticles:     2000,
	})
}

func generatePendulum(cfg *config.Config) {
	n := countOr(cfg.Params.Count, 1)
	length := orDefault(cfg.Params.Spacing, 4)
	r := orDefault(cfg.Params.Size, 0.5)

	elastic := &config.MaterialConfig{Friction: 0, Restitution: 1}
	const pivotY = 8.0
	swing := math.Pi / 3
	for i := 0; i < n; i++ {
		x := (float64(i) - float64(n-1)/2) * 2 * r
		pivot := fmt.Sprintf("pivot-%d", i)
		bob := fmt.Sprintf("bob-%d", i)

		pos := config.Vec2{x, pivotY - length}
		if i == 0 {
			pos = config.Vec2{x - length*math.Sin(swing), pivotY - length*math.Cos(swing)}
		}
		cfg.Bodies = append(cfg.Bodies,
			config.BodyConfig{Name: pivot, Shape: "none", Position: config.Vec2{x, pivotY}, Static: true},
			config.BodyConfig{Name: bob, Shape: "circle", Radius: r, Mass: 1, Position: pos, Material: elastic},
		)
		rest := length
		cfg.Constraints = append(cfg.Constraints, config.ConstraintConfig{
			Kind: "distance", A: pivot, B: bob, RestLength: &rest,
		})
	}
}

func generateBridge(cfg *config.Config) {
	n := countOr(cfg.Params.Count, 8)
	plank := orDefault(cfg.Params.Size, 1.5)
	drop := cfg.Params.Speed

	const gap, deck, thickness = 0.1, 4.0, 0.3
	span := float64(n)*plank + float64(n-1)*gap
	left := -span / 2

	cfg.Bodies = append(cfg.Bodies,
		config.BodyConfig{Name: "pillar-left", Shape: "box", Width: 1, Height: deck,
			Position: config.Vec2{left - 0.5, deck / 2}, Static: true},
		config.BodyConfig{Name: "pillar-right", Shape: "box", Width: 1, Height: deck,
			Position: config.Vec2{-left + 0.5, deck / 2}, Static: true},
	)

	for i := 0; i < n; i++ {
		name := fmt.Sprintf("plank-%d", i)
		x := left + plank/2 + float64(i)*(plank+gap)
		cfg.Bodies = append(cfg.Bodies, config.BodyConfig{
			Name: name, Shape: "box", Width: plank, Height: thickness,
			Position: config.Vec2{x, deck - thickness/2}, Mass: 1,
		})
		if i == 0 {
			continue
		}
		rest := gap
		cfg.Constraints = append(cfg.Constraints, config.ConstraintConfig{
			Kind: "spring", A: fmt.Sprintf("plank-%d", i-1), B: name,
			AnchorA: config.Vec2{plank / 2, 0}, AnchorB: config.Vec2{-plank / 2, 0},
			RestLength: &rest, Stiffness: 150, Damping: 4,
		})
	}

	cfg.Constraints = append(cfg.Constraints,
		config.ConstraintConfig{Kind: "hinge", A: "pillar-left", B: "plank-0",
			AnchorA: config.Vec2{0.5, deck/2 - thickness/2}, AnchorB: config.Vec2{-plank / 2, 0}},
		config.ConstraintConfig{Kind: "hinge", A: "pillar-right", B: fmt.Sprintf("plank-%d", n-1),
			AnchorA: config.Vec2{-0.5, deck/2 - thickness/2}, AnchorB: config.Vec2{plank / 2, 0}},
	)

	cfg.Bodies = append(cfg.Bodies, config.BodyConfig{
		Name: "load", Shape: "circle", Radius: 0.5, Mass: 2,
		Position: config.Vec2{0, deck + 3}, Velocity: config.Vec2{0, -drop},
	})
}
