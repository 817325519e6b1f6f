package config

import (
	"errors"

	"github.com/hjangles/llscan/internal/model"
)

// Configuration validation errors.
// These errors are returned by Config.Validate() and ValidateHistogram() so
// that callers can use errors.Is() while users get a readable message.
var (
	// ErrNoInput is returned when the scan reporter is given no files.
	ErrNoInput = errors.New("no input files")

	// ErrInvalidThreshold is returned when the plot threshold is not a
	// positive number. The baseline point has adjusted value 0 and must
	// always be plotted.
	ErrInvalidThreshold = errors.New("invalid threshold: must be a positive number")

	// ErrNoOutput is returned when the PDF output path is empty.
	ErrNoOutput = errors.New("no output file specified")

	// ErrUnknownReportFormat is returned for a --report value other than
	// text, json or markdown.
	ErrUnknownReportFormat = errors.New("unknown report format: use text, json or markdown")

	// ErrReportFileWithoutFormat is returned when --report-file is set
	// without --report.
	ErrReportFileWithoutFormat = errors.New("--report-file requires --report")

	// ErrInvalidBins is returned when the histogram has no bins.
	ErrInvalidBins = model.ErrInvalidBins

	// ErrInvalidRange is returned when the histogram range is empty or inverted.
	ErrInvalidRange = model.ErrInvalidRange
)
