package experiment

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/san-kum/physim/internal/config"
	"github.com/san-kum/physim/internal/dynamo"
	"github.com/san-kum/physim/internal/physics"
	"github.com/san-kum/physim/internal/scene"
)

// Experiment is one scene run in fixed steps with a set of metrics attached.
type Experiment struct {
	cfg       *config.Config
	log       logr.Logger
	scene     *scene.Scene
	simulator *dynamo.Simulator

	// RecordEvery overrides the snapshot interval. Zero records every step
	// and a negative value records nothing.
	RecordEvery int
}

func New(cfg *config.Config, log logr.Logger) *Experiment {
	return &Experiment{cfg: cfg, log: log}
}

// Setup builds the scene and attaches metrics. It may be called again to
// start over from the initial state.
func (e *Experiment) Setup(metrics []dynamo.Metric) error {
	sc, err := scene.Build(e.cfg, physics.WithLogger(e.log.WithName("physics")))
	if err != nil {
		return err
	}
	e.scene = sc
	e.simulator = dynamo.New(sc.World)
	e.simulator.SetLogger(e.log.WithName("dynamo"))
	for _, m := range metrics {
		e.simulator.AddMetric(m)
	}
	return nil
}

// SimConfig is the fixed-step run configuration for the scene. Batch runs
// ignore the world's time scale.
func (e *Experiment) SimConfig() dynamo.Config {
	cfg := dynamo.DefaultConfig()
	cfg.Dt = e.cfg.Dt
	cfg.Duration = e.cfg.Duration
	if e.cfg.World.MaxFrameTime > 0 {
		cfg.MaxFrameTime = e.cfg.World.MaxFrameTime
	}
	switch {
	case e.RecordEvery > 0:
		cfg.RecordEvery = e.RecordEvery
	case e.RecordEvery < 0:
		cfg.RecordEvery = 0
	}
	return cfg
}

func (e *Experiment) Run(ctx context.Context) (*dynamo.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulator.Run(ctx, e.SimConfig())
}

// Scene returns the built scene, or nil before Setup.
func (e *Experiment) Scene() *scene.Scene { return e.scene }

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *dynamo.Simulator {
	return e.simulator
}

// Factory builds independent copies of the scene that differ only in seed,
// for use with dynamo.Ensemble.
func (e *Experiment) Factory() dynamo.WorldFactory {
	return func(seed int64) (*physics.World, error) {
		cfg := e.cfg.Clone()
		cfg.Seed = seed
		sc, err := scene.Build(cfg)
		if err != nil {
			return nil, err
		}
		return sc.World, nil
	}
}
