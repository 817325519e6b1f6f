package config

import (
	"math"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/hjangles/llscan/internal/model"
)

// Default configuration values.
const (
	// DefaultThreshold is the exclusive upper limit on the baseline-subtracted
	// log-likelihood of plotted points. Points at or above it are printed in
	// the trace but left out of the plot.
	DefaultThreshold = 10.0

	// DefaultOutput is the multi-page PDF written by the scan reporter,
	// relative to the working directory.
	DefaultOutput = "scan.pdf"

	// AppName is the application name used for XDG directory paths.
	AppName = "llscan"
)

// Report formats accepted by --report.
const (
	ReportNone     = ""
	ReportText     = "text"
	ReportJSON     = "json"
	ReportMarkdown = "markdown"
)

// Config holds all configuration options for llscan.
// It is populated from CLI flags and the optional config file and passed
// through the application rather than kept in global state.
type Config struct {
	// Inputs are the scan-result files, in command-line order.
	Inputs []string

	// Threshold is the exclusive upper limit on plotted adjusted values.
	Threshold float64

	// Output is the path of the multi-page PDF.
	Output string

	// Quiet disables the stdout diagnostic trace.
	Quiet bool

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ReportFormat selects the summary written after a scan: one of
	// ReportText, ReportJSON, ReportMarkdown or ReportNone.
	ReportFormat string

	// ReportFile is the output file path for the report.
	// When empty the report goes to stdout.
	ReportFile string

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .llscan in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// DBDir is the directory holding the run history database.
	// Defaults to the XDG data directory (~/.local/share/llscan on Linux).
	DBDir string

	// SaveToDB indicates whether successful scans are stored in the history.
	SaveToDB bool

	// Histogram describes what the extractor bins.
	Histogram model.HistogramSpec

	// Preview is an optional image path for the extracted histogram.
	Preview string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Threshold: DefaultThreshold,
		Output:    DefaultOutput,
		DBDir:     XDGDataDir(),
		SaveToDB:  true,
		Histogram: model.DefaultHistogramSpec(),
	}
}

// XDGDataDir returns the XDG data directory for llscan.
// On Linux: ~/.local/share/llscan
// On macOS: ~/Library/Application Support/llscan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for llscan.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the scan reporter settings.
// It returns the first problem found.
func (c *Config) Validate() error {
	if len(c.Inputs) == 0 {
		return ErrNoInput
	}

	if math.IsNaN(c.Threshold) || c.Threshold <= 0 {
		return ErrInvalidThreshold
	}

	if c.Output == "" {
		return ErrNoOutput
	}

	switch c.ReportFormat {
	case ReportNone, ReportText, ReportJSON, ReportMarkdown:
	default:
		return ErrUnknownReportFormat
	}

	if c.ReportFile != "" && c.ReportFormat == ReportNone {
		return ErrReportFileWithoutFormat
	}

	return nil
}

// ValidateHistogram checks the histogram extractor settings.
func (c *Config) ValidateHistogram() error {
	return c.Histogram.Validate()
}
