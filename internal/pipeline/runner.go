package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hjangles/llscan/internal/model"
	"github.com/hjangles/llscan/internal/rootfile"
)

// ErrNoInput is returned when the runner is given no files.
var ErrNoInput = errors.New("no input files")

// Runner processes scan-result files one after another into a ResultSet.
type Runner struct {
	reader rootfile.ObjectReader
	tracer Tracer
	logger *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithRunnerLogger sets a custom logger for the runner and its pipelines.
func WithRunnerLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithTracer sets the diagnostic tracer.
func WithTracer(tracer Tracer) RunnerOption {
	return func(r *Runner) {
		if tracer != nil {
			r.tracer = tracer
		}
	}
}

// NewRunner creates a runner that reads files through reader.
func NewRunner(reader rootfile.ObjectReader, opts ...RunnerOption) *Runner {
	r := &Runner{
		reader: reader,
		tracer: nopTracer{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// newPipeline builds the per-file pipeline recording into set.
func (r *Runner) newPipeline(set *model.ResultSet) *Pipeline {
	p := New(WithLogger(r.logger))
	p.AddSteps(
		NewParameterStep(),
		NewObjectsStep(r.reader, WithObjectsLogger(r.logger)),
		NewExtractStep(r.tracer),
		NewRecordStep(set),
	)
	return p
}

// Run processes paths in order and returns the aggregated set together with
// the per-file records. The first failing file aborts the run and no set is
// returned.
func (r *Runner) Run(ctx context.Context, paths []string) (*model.ResultSet, []*model.ScanFile, error) {
	if len(paths) == 0 {
		return nil, nil, ErrNoInput
	}

	r.logger.Info("starting scan",
		"files", len(paths),
	)
	startTime := time.Now()

	set := model.NewResultSet()
	files := make([]*model.ScanFile, 0, len(paths))
	p := r.newPipeline(set)

	for i, path := range paths {
		r.tracer.Input(path)

		file := model.NewScanFile(path)
		if err := p.Execute(ctx, file); err != nil {
			return nil, nil, err
		}
		files = append(files, file)

		r.logger.Debug("file processed",
			"file", path,
			"phi", file.Phi,
			"objects", len(file.Objects),
			"index", i+1,
			"total", len(paths),
		)
	}

	r.logger.Info("scan complete",
		"files", len(paths),
		"ranges", set.Len(),
		"points", set.PointCount(),
		"elapsed", time.Since(startTime),
	)

	return set, files, nil
}
