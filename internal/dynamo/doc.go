// Package dynamo drives a physics world from a host loop.
//
// The package defines the pieces that sit between a caller and
// [physics.World.Step]:
//
//   - [Clock]: frame-time clamping, time scaling, pause/resume
//   - [Simulator]: fixed-step runs with metrics, observers and snapshots
//   - [Frame]: read-only snapshot of bodies for renderers and storage
//   - [Ensemble]: independent runs of freshly built worlds, one per seed
//
// # Example
//
//	w, _ := scene.Build(cfg)
//	s := dynamo.New(w)
//	s.AddMetric(metrics.NewKineticEnergy())
//	result, _ := s.Run(ctx, dynamo.DefaultConfig())
//
// # Thread Safety
//
// A Simulator and the world it owns are NOT thread-safe. A step always runs
// to completion; cancellation is observed between steps only. [Ensemble]
// gives every goroutine its own world.
package dynamo
