package config

// Flag names the config file can supply values for. A value from the file
// is used only when the matching flag was not set on the command line.
const (
	FlagThreshold  = "threshold"
	FlagOutput     = "output"
	FlagReport     = "report"
	FlagReportFile = "report-file"
	FlagNoHistory  = "no-history"
	FlagDBDir      = "db-dir"
	FlagTree       = "tree"
	FlagExpr       = "expr"
	FlagBins       = "bins"
	FlagMin        = "min"
	FlagMax        = "max"
	FlagName       = "name"
	FlagPreview    = "preview"
)

// ScanSection holds the scan reporter settings of the config file.
// Pointer fields distinguish "absent" from a zero value.
type ScanSection struct {
	// Threshold overrides DefaultThreshold.
	Threshold *float64 `yaml:"threshold,omitempty"`

	// Output overrides DefaultOutput.
	Output string `yaml:"output,omitempty"`

	// Report is the default --report format.
	Report string `yaml:"report,omitempty"`

	// ReportFile is the default --report-file.
	ReportFile string `yaml:"reportFile,omitempty"`

	// History enables or disables the run history.
	History *bool `yaml:"history,omitempty"`

	// DBDir overrides the history database directory.
	DBDir string `yaml:"dbDir,omitempty"`
}

// HistogramSection holds the histogram extractor settings of the config file.
type HistogramSection struct {
	Name       string   `yaml:"name,omitempty"`
	Tree       string   `yaml:"tree,omitempty"`
	Expression string   `yaml:"expression,omitempty"`
	Bins       *int     `yaml:"bins,omitempty"`
	Min        *float64 `yaml:"min,omitempty"`
	Max        *float64 `yaml:"max,omitempty"`
	Preview    string   `yaml:"preview,omitempty"`
}

// File represents the structure of the .llscan configuration file.
type File struct {
	Scan      ScanSection      `yaml:"scan,omitempty"`
	Histogram HistogramSection `yaml:"histogram,omitempty"`
}

// ApplyScan copies scan settings from the file into cfg. isSet reports
// whether a flag was given explicitly; such flags keep their value.
func (cf *File) ApplyScan(cfg *Config, isSet func(flag string) bool) {
	s := cf.Scan
	if s.Threshold != nil && !isSet(FlagThreshold) {
		cfg.Threshold = *s.Threshold
	}
	if s.Output != "" && !isSet(FlagOutput) {
		cfg.Output = s.Output
	}
	if s.Report != "" && !isSet(FlagReport) {
		cfg.ReportFormat = s.Report
	}
	if s.ReportFile != "" && !isSet(FlagReportFile) {
		cfg.ReportFile = s.ReportFile
	}
	if s.History != nil && !isSet(FlagNoHistory) {
		cfg.SaveToDB = *s.History
	}
	if s.DBDir != "" && !isSet(FlagDBDir) {
		cfg.DBDir = s.DBDir
	}
}

// ApplyHistogram copies histogram settings from the file into cfg.
func (cf *File) ApplyHistogram(cfg *Config, isSet func(flag string) bool) {
	h := cf.Histogram
	if h.Name != "" && !isSet(FlagName) {
		cfg.Histogram.Name = h.Name
	}
	if h.Tree != "" && !isSet(FlagTree) {
		cfg.Histogram.Tree = h.Tree
	}
	if h.Expression != "" && !isSet(FlagExpr) {
		cfg.Histogram.Expression = h.Expression
	}
	if h.Bins != nil && !isSet(FlagBins) {
		cfg.Histogram.Bins = *h.Bins
	}
	if h.Min != nil && !isSet(FlagMin) {
		cfg.Histogram.Min = *h.Min
	}
	if h.Max != nil && !isSet(FlagMax) {
		cfg.Histogram.Max = *h.Max
	}
	if h.Preview != "" && !isSet(FlagPreview) {
		cfg.Preview = h.Preview
	}
}
