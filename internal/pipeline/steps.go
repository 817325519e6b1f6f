package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hjangles/llscan/internal/model"
	"github.com/hjangles/llscan/internal/rootfile"
)

// Tracer receives the diagnostic trace of a scan run.
type Tracer interface {
	// Input is called once per file before it is processed.
	Input(path string)
	// Object is called once per stored object before it is parsed.
	Object(name string)
}

type nopTracer struct{}

func (nopTracer) Input(string)  {}
func (nopTracer) Object(string) {}

// ParameterStep parses the scan parameter from the file name.
type ParameterStep struct{}

// NewParameterStep creates a new scan-parameter step.
func NewParameterStep() *ParameterStep {
	return &ParameterStep{}
}

// Name returns the step name.
func (s *ParameterStep) Name() string {
	return "parameter"
}

// Do stores the parsed scan parameter in file.Phi.
func (s *ParameterStep) Do(_ context.Context, file *model.ScanFile) error {
	phi, err := model.ParseScanParameter(file.Path)
	if err != nil {
		return err
	}
	file.Phi = phi
	return nil
}

// ObjectsStep lists every stored object of the file.
type ObjectsStep struct {
	reader rootfile.ObjectReader
	logger *slog.Logger
}

// ObjectsStepOption configures an ObjectsStep.
type ObjectsStepOption func(*ObjectsStep)

// WithObjectsLogger sets a custom logger for the objects step.
func WithObjectsLogger(logger *slog.Logger) ObjectsStepOption {
	return func(s *ObjectsStep) {
		s.logger = logger
	}
}

// NewObjectsStep creates a step reading objects through reader.
func NewObjectsStep(reader rootfile.ObjectReader, opts ...ObjectsStepOption) *ObjectsStep {
	s := &ObjectsStep{
		reader: reader,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *ObjectsStep) Name() string {
	return "objects"
}

// Do stores the objects in file.Objects, in key order.
func (s *ObjectsStep) Do(ctx context.Context, file *model.ScanFile) error {
	objects, err := s.reader.ReadObjects(ctx, file.Path)
	if err != nil {
		return err
	}
	file.Objects = objects

	s.logger.Debug("objects read",
		"file", file.Path,
		"objects", len(objects),
	)
	return nil
}

// ExtractStep turns every stored object into a scan point.
type ExtractStep struct {
	tracer Tracer
}

// NewExtractStep creates an extract step. A nil tracer disables tracing.
func NewExtractStep(tracer Tracer) *ExtractStep {
	if tracer == nil {
		tracer = nopTracer{}
	}
	return &ExtractStep{tracer: tracer}
}

// Name returns the step name.
func (s *ExtractStep) Name() string {
	return "extract"
}

// Do appends one point per object to file.Points. The object name is traced
// before it is parsed, so a failing object is the last name in the trace.
func (s *ExtractStep) Do(ctx context.Context, file *model.ScanFile) error {
	points := make([]model.ScanPoint, 0, len(file.Objects))
	for _, obj := range file.Objects {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.tracer.Object(obj.Name)

		p, err := model.ExtractPoint(obj, file.Phi)
		if err != nil {
			return err
		}
		points = append(points, p)
	}
	file.Points = points
	return nil
}

// ErrNilResultSet is returned by RecordStep when it has nowhere to record.
var ErrNilResultSet = errors.New("result set is nil")

// RecordStep adds the extracted points to a shared ResultSet.
type RecordStep struct {
	set *model.ResultSet
}

// NewRecordStep creates a step recording into set.
func NewRecordStep(set *model.ResultSet) *RecordStep {
	return &RecordStep{set: set}
}

// Name returns the step name.
func (s *RecordStep) Name() string {
	return "record"
}

// Do records file.Points, last write wins.
func (s *RecordStep) Do(_ context.Context, file *model.ScanFile) error {
	if s.set == nil {
		return ErrNilResultSet
	}
	s.set.AddAll(file.Points)
	return nil
}
