// Package sim drives a scene headlessly: a fixed number of steps with
// per-step snapshots, metric observation and state validation, plus the
// fixed-timestep accumulator used by the real-time front-ends.
package sim

import (
	"context"
	"errors"
	"fmt"

	"github.com/san-kum/ballsim/internal/metrics"
	"github.com/san-kum/ballsim/internal/phys"
	"github.com/san-kum/ballsim/internal/scene"
)

var (
	ErrInvalidConfig = errors.New("sim: dt and duration must be positive")
	ErrInvalidState  = errors.New("sim: invalid body state (NaN or Inf detected)")
)

// StepError wraps a failure with the step it occurred at.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error { return e.Wrapped }

type Config struct {
	Dt       float64
	Duration float64
}

// BodyState is a per-step snapshot of one body's kinematic state.
type BodyState struct {
	Pos phys.Vec3
	Vel phys.Vec3
}

type Result struct {
	Times      []float64
	Frames     [][]BodyState
	Metrics    map[string]float64
	StepsTaken int
	Errors     []error
}

// Runner executes a scene for a configured span of simulated time.
type Runner struct {
	scene   *scene.Scene
	metrics []metrics.Metric
}

func New(sc *scene.Scene) *Runner {
	return &Runner{scene: sc}
}

func (r *Runner) AddMetric(m metrics.Metric) {
	r.metrics = append(r.metrics, m)
}

// Run steps the scene duration/dt times, snapshotting body state after each
// step. It checks for cancellation between steps and stops early if any body
// state degrades to NaN/Inf, recording the failure in Result.Errors.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if cfg.Dt <= 0 || cfg.Duration <= 0 {
		return nil, ErrInvalidConfig
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Times:   make([]float64, 0, steps+1),
		Frames:  make([][]BodyState, 0, steps+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	world := r.scene.World()
	t := 0.0
	result.Times = append(result.Times, t)
	result.Frames = append(result.Frames, snapshot(world))

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		r.scene.Step(cfg.Dt)
		t += cfg.Dt

		if !world.IsValid() {
			result.Errors = append(result.Errors, &StepError{Step: i, Time: t, Wrapped: ErrInvalidState})
			break
		}

		for _, m := range r.metrics {
			m.Observe(world, t)
		}

		result.StepsTaken++
		result.Times = append(result.Times, t)
		result.Frames = append(result.Frames, snapshot(world))
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func snapshot(w *phys.World) []BodyState {
	frame := make([]BodyState, w.Len())
	for i, b := range w.Bodies() {
		frame[i] = BodyState{Pos: b.Pos, Vel: b.Vel}
	}
	return frame
}
