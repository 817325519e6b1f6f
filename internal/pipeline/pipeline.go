package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/hjangles/llscan/internal/model"
)

// Step is one stage of the per-file processing. A step reads what earlier
// steps stored in the ScanFile and adds its own result to it.
type Step interface {
	// Do runs the step. Any error aborts the pipeline for this file and,
	// through the Runner, the whole scan.
	Do(ctx context.Context, file *model.ScanFile) error

	// Name identifies the step in logs and in ScanFile.PerformedSteps.
	Name() string
}

// StepError reports which step failed for which file.
type StepError struct {
	File string
	Step string
	Err  error
}

// Error prefixes the cause with the file path only; the step name is for logs.
func (e *StepError) Error() string {
	return e.File + ": " + e.Err.Error()
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Pipeline runs its steps in order against one ScanFile.
type Pipeline struct {
	steps  []Step
	logger *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger. slog.Default is used otherwise.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates an empty pipeline.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// AddStep appends a step.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends steps in the given order.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs every step against file and stops at the first failure,
// which is returned as a *StepError. A cancelled context is checked before
// each step and returned as is. Failures are logged at debug level only;
// reporting them is up to the caller.
func (p *Pipeline) Execute(ctx context.Context, file *model.ScanFile) error {
	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			p.logger.Debug("pipeline cancelled", "step", step.Name(), "file", file.Path, "reason", err)
			return err
		}

		start := time.Now()
		err := step.Do(ctx, file)
		elapsed := time.Since(start)

		if err != nil {
			p.logger.Debug("step failed",
				"step", step.Name(),
				"file", file.Path,
				"elapsed", elapsed,
				"error", err,
			)
			return &StepError{File: file.Path, Step: step.Name(), Err: err}
		}

		p.logger.Debug("step done", "step", step.Name(), "file", file.Path, "elapsed", elapsed)
		file.PerformedSteps = append(file.PerformedSteps, step.Name())
	}
	return nil
}

// Len returns the number of steps.
func (p *Pipeline) Len() int {
	return len(p.steps)
}

// StepNames returns the step names in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, 0, len(p.steps))
	for _, step := range p.steps {
		names = append(names, step.Name())
	}
	return names
}
