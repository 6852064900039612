package dynamo

import (
	"context"
	"math"

	"github.com/go-logr/logr"

	"github.com/san-kum/physim/internal/physics"
)

type Simulator struct {
	world     *physics.World
	metrics   []Metric
	observers []Observer
	log       logr.Logger
}

func New(world *physics.World) *Simulator {
	return &Simulator{
		world:     world,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		log:       logr.Discard(),
	}
}

func (s *Simulator) World() *physics.World     { return s.world }
func (s *Simulator) AddMetric(m Metric)        { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer)    { s.observers = append(s.observers, o) }
func (s *Simulator) SetLogger(log logr.Logger) { s.log = log }

// Run advances the world in fixed steps of cfg.Dt until cfg.Duration has been
// simulated. The context is checked between steps; on cancellation the partial
// result is returned together with an error matching ErrCanceled.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	clock := &Clock{MaxFrameTime: cfg.MaxFrameTime, TimeScale: cfg.TimeScale}
	steps := int(math.Round(cfg.Duration / cfg.Dt))
	result := &Result{
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}
	if cfg.RecordEvery > 0 {
		result.Frames = make([]Frame, 0, steps/cfg.RecordEvery+1)
		result.Frames = append(result.Frames, Snapshot(s.world, 0))
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	s.log.V(1).Info("run started", "dt", cfg.Dt, "steps", steps, "bodies", s.world.BodyCount())

	for i := 1; i <= steps; i++ {
		select {
		case <-ctx.Done():
			s.finish(result)
			return result, &SimulationError{Step: i, Time: s.world.Time(), Wrapped: ErrCanceled}
		default:
		}

		clock.Advance(s.world, cfg.Dt)
		result.StepsTaken++
		t := s.world.Time()

		for _, m := range s.metrics {
			m.Observe(s.world, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(s.world, t)
		}

		if cfg.RecordEvery > 0 && i%cfg.RecordEvery == 0 {
			result.Frames = append(result.Frames, Snapshot(s.world, i))
		}

		if cfg.ValidateState && !stateValid(s.world) {
			err := &SimulationError{Step: i, Time: t, Wrapped: ErrUnstable}
			result.Errors = append(result.Errors, err)
			s.log.Error(err, "run aborted")
			break
		}
	}

	s.finish(result)
	s.log.V(1).Info("run finished", "steps", result.StepsTaken, "time", result.Time)
	return result, nil
}

// RunWithCallback steps like Run but hands each snapshot to callback instead
// of recording it. Returning false from callback stops the run.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, callback func(Frame) bool) error {
	if err := s.validateConfig(cfg); err != nil {
		return err
	}

	clock := &Clock{MaxFrameTime: cfg.MaxFrameTime, TimeScale: cfg.TimeScale}
	step := 0
	for s.world.Time() < cfg.Duration {
		select {
		case <-ctx.Done():
			return &SimulationError{Step: step, Time: s.world.Time(), Wrapped: ErrCanceled}
		default:
		}

		if !callback(Snapshot(s.world, step)) {
			return nil
		}

		if clock.Advance(s.world, cfg.Dt) == 0 {
			return nil
		}
		step++

		if cfg.ValidateState && !stateValid(s.world) {
			return &SimulationError{Step: step, Time: s.world.Time(), Wrapped: ErrUnstable}
		}
	}
	return nil
}

func (s *Simulator) finish(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	result.Stats = s.world.Stats()
	result.Time = s.world.Time()
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return invalidConfig("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return invalidConfig("duration must be positive, got %f", cfg.Duration)
	}
	if cfg.TimeScale <= 0 {
		return invalidConfig("time scale must be positive, got %f", cfg.TimeScale)
	}
	if cfg.RecordEvery < 0 {
		return invalidConfig("record interval must not be negative, got %d", cfg.RecordEvery)
	}
	return nil
}

func stateValid(w *physics.World) bool {
	for _, b := range w.Bodies() {
		if !b.Position().IsValid() {
			return false
		}
		if b.Rigid != nil && !b.Rigid.Velocity.IsValid() {
			return false
		}
	}
	return true
}
