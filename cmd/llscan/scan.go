package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/hjangles/llscan/internal/config"
	"github.com/hjangles/llscan/internal/database"
	"github.com/hjangles/llscan/internal/log"
	"github.com/hjangles/llscan/internal/model"
	"github.com/hjangles/llscan/internal/pipeline"
	"github.com/hjangles/llscan/internal/plot"
	"github.com/hjangles/llscan/internal/report"
	"github.com/hjangles/llscan/internal/rootfile"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [flags] <file>...",
		Short: "Plot profile-likelihood curves from scan result files",
		Long: `Scan reads likelihood-scan result files named <phi>.root, where phi is the
scan parameter. Every object in a file carries an hj_mass[low,high) range in
its name and a "-logl" function whose title holds the negative
log-likelihood, e.g. "-logl=12.5".

For each mass range the points are sorted by phi and shifted so that the
smallest phi sits at zero. Points below the threshold are drawn, one page per
range, into a single PDF.

Examples:
  # Plot every scan point in the current directory
  llscan scan *.root

  # Use a tighter threshold and a different output file
  llscan scan -t 3 -o narrow.pdf scans/*.root

  # Write a Markdown summary next to the PDF
  llscan scan --report markdown --report-file scan.md scans/*.root

Configuration file (.llscan) example:
  scan:
    threshold: 10
    output: scan.pdf
    report: text`,
		Args: cobra.ArbitraryArgs,
		RunE: runScanCmd,
	}

	cmd.Flags().Float64P(config.FlagThreshold, "t", config.DefaultThreshold,
		"Points with an adjusted value at or above this are not plotted")
	cmd.Flags().StringP(config.FlagOutput, "o", config.DefaultOutput,
		"Output PDF path")
	cmd.Flags().BoolP("quiet", "q", false,
		"Do not print the diagnostic trace")

	// Report flags
	cmd.Flags().StringP(config.FlagReport, "r", "",
		"Write a run summary: text, json or markdown")
	cmd.Flags().String(config.FlagReportFile, "",
		"Write the summary to this file instead of stdout (creates directories if needed)")

	cmd.Flags().Bool(config.FlagNoHistory, false,
		"Do not save the run to the history database")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildScanConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runScan(ctx, cfg, logger, cmd.OutOrStdout())
}

// buildScanConfig creates a Config from cobra command flags and the
// configuration file. Explicitly set flags win over the file.
func buildScanConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.Threshold, err = cmd.Flags().GetFloat64(config.FlagThreshold)
	if err != nil {
		return nil, err
	}

	cfg.Output, err = cmd.Flags().GetString(config.FlagOutput)
	if err != nil {
		return nil, err
	}

	cfg.Quiet, err = cmd.Flags().GetBool("quiet")
	if err != nil {
		return nil, err
	}

	cfg.ReportFormat, err = cmd.Flags().GetString(config.FlagReport)
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString(config.FlagReportFile)
	if err != nil {
		return nil, err
	}

	noHistory, err := cmd.Flags().GetBool(config.FlagNoHistory)
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noHistory

	dbDir, err := cmd.Flags().GetString(config.FlagDBDir)
	if err != nil {
		return nil, err
	}
	if dbDir != "" {
		cfg.DBDir = dbDir
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cf, err := loadConfigFile(cmd)
	if err != nil {
		return nil, err
	}
	cf.ApplyScan(cfg, cmd.Flags().Changed)

	cfg.Verbose = getVerboseFlag(cmd)
	cfg.Inputs = args

	return cfg, nil
}

// runScan reads every input, renders the PDF and then writes the optional
// report and history entry. Nothing is rendered when any input fails.
func runScan(ctx context.Context, cfg *config.Config, logger *slog.Logger, out io.Writer) error {
	traceOut := out
	if cfg.Quiet {
		traceOut = io.Discard
	}
	tracer := log.NewTracer(traceOut)

	runner := pipeline.NewRunner(rootfile.NewGrootReader(),
		pipeline.WithRunnerLogger(logger),
		pipeline.WithTracer(tracer),
	)

	set, _, err := runner.Run(ctx, cfg.Inputs)
	if err != nil {
		return err
	}

	summary := model.NewScanSummary(cfg.Inputs, cfg.Output, cfg.Threshold, set)
	for _, c := range summary.Curves {
		tracer.Curve(c)
	}

	if err := plot.NewRenderer().RenderFile(cfg.Output, summary.Curves); err != nil {
		if errors.Is(err, plot.ErrNoCurves) {
			return fmt.Errorf("no mass ranges found in %d input file(s)", len(cfg.Inputs))
		}
		return err
	}
	logPDF(logger, cfg.Output, len(summary.Curves))

	if err := outputReport(cfg, summary, out); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if err := saveRun(ctx, cfg, summary, set, logger); err != nil {
		logger.Error("failed to save run", "db", cfg.DBDir, "error", err)
	}

	return nil
}

// logPDF logs the rendered document with its size.
func logPDF(logger *slog.Logger, path string, pages int) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	logger.Info("pdf written",
		"output", path,
		"pages", pages,
		"size", humanize.Bytes(uint64(info.Size())), //nolint:gosec // file sizes are never negative
	)
}

// outputReport writes the summary in the configured format, if any.
func outputReport(cfg *config.Config, summary *model.ScanSummary, stdout io.Writer) error {
	if cfg.ReportFormat == config.ReportNone {
		return nil
	}

	output := stdout
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	var w report.Writer
	switch cfg.ReportFormat {
	case config.ReportJSON:
		w = report.NewJSONWriter(output, report.WithPrettyPrint(), report.WithVersion(getVersion()))
	case config.ReportText:
		w = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	default:
		var err error
		w, err = report.New(cfg.ReportFormat, output)
		if err != nil {
			return err
		}
	}

	_, err := w.Write(summary)
	return err
}

// saveRun stores the run in the history database if enabled.
func saveRun(ctx context.Context, cfg *config.Config, summary *model.ScanSummary, set *model.ResultSet, logger *slog.Logger) error {
	if !cfg.SaveToDB {
		return nil
	}

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	id, err := db.SaveRun(ctx, summary, set)
	if err != nil {
		return err
	}

	logger.Info("run saved to history", "id", id, "db", db.Path())
	return nil
}
