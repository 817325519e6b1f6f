package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/hjangles/llscan/internal/database"
	"github.com/hjangles/llscan/internal/log"
	"github.com/hjangles/llscan/internal/model"
)

// NewCompareCmd creates the compare command.
// This command compares two runs stored in the history database.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [id-a id-b]",
		Short: "Compare the result sets of two stored runs",
		Long: `Compare checks whether two scan runs produced the same result set and
lists the mass ranges and points that were added, removed or changed.

Without arguments the latest two runs are compared. Running a scan twice on
the same files must report them as identical.

Examples:
  # Compare the latest two runs
  llscan compare

  # Compare run 3 with run 7
  llscan compare 3 7

  # Machine-readable output
  llscan compare --json`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return errors.New("compare takes no arguments or exactly two run ids")
			}
			return nil
		},
		RunE: runCompareCmd,
	}

	cmd.Flags().BoolP("json", "j", false, "Output comparison result in JSON format")
	cmd.Flags().String("color", "auto", "Colorize output: auto, always or never")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		return err
	}
	enabled, err := colorEnabled(colorMode)
	if err != nil {
		return err
	}

	// Validate ids before opening the database
	var ids []int64
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid run id %q", arg)
		}
		ids = append(ids, id)
	}

	dbDir, err := resolveDBDir(cmd)
	if err != nil {
		return err
	}

	db, err := database.Open(dbDir, database.ReadOnlyOptions())
	if errors.Is(err, database.ErrNoHistory) {
		return errors.New("at least 2 runs are required for comparison (found 0)")
	}
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	previous, current, err := selectRuns(cmd, db, ids)
	if err != nil {
		return err
	}

	result := compareRuns(previous, current)
	if jsonOutput {
		return outputComparisonJSON(cmd.OutOrStdout(), result)
	}
	outputComparisonText(cmd.OutOrStdout(), result, newStyles(enabled))
	return nil
}

// selectRuns loads the two runs to compare, older first.
func selectRuns(cmd *cobra.Command, db *database.RunDB, ids []int64) (*database.Run, *database.Run, error) {
	ctx := cmd.Context()

	if len(ids) == 2 {
		a, err := db.GetRun(ctx, ids[0])
		if err != nil {
			return nil, nil, err
		}
		b, err := db.GetRun(ctx, ids[1])
		if err != nil {
			return nil, nil, err
		}
		return a, b, nil
	}

	runs, err := db.LatestRuns(ctx, 2)
	if err != nil {
		return nil, nil, err
	}
	if len(runs) < 2 {
		return nil, nil, fmt.Errorf("at least 2 runs are required for comparison (found %d)", len(runs))
	}
	return runs[1], runs[0], nil
}

// RunInfo identifies one side of a comparison.
type RunInfo struct {
	ID          int64     `json:"id"`
	DateScanned time.Time `json:"date_scanned"`
	Inputs      int       `json:"inputs"`
	Points      int       `json:"points"`
	Digest      string    `json:"digest"`
}

// ComparisonResult holds the result of comparing two runs.
type ComparisonResult struct {
	Previous   RunInfo          `json:"previous"`
	Current    RunInfo          `json:"current"`
	Comparison model.Comparison `json:"comparison"`
}

// compareRuns compares the result sets of two runs.
func compareRuns(previous, current *database.Run) *ComparisonResult {
	return &ComparisonResult{
		Previous:   runInfo(previous),
		Current:    runInfo(current),
		Comparison: model.Compare(previous.Results, current.Results),
	}
}

func runInfo(r *database.Run) RunInfo {
	return RunInfo{
		ID:          r.ID,
		DateScanned: r.Timestamp,
		Inputs:      len(r.Summary.Inputs),
		Points:      r.Results.PointCount(),
		Digest:      r.Results.Digest(),
	}
}

// outputComparisonJSON outputs the comparison result in JSON format.
func outputComparisonJSON(out io.Writer, result *ComparisonResult) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// styles holds the color formatters of the text output.
type styles struct {
	heading *color.Color
	same    *color.Color
	added   *color.Color
	removed *color.Color
	changed *color.Color
}

// newStyles creates color formatters; enabled=false prints plain text.
func newStyles(enabled bool) *styles {
	s := &styles{
		heading: color.New(color.Bold),
		same:    color.New(color.Bold, color.FgHiGreen),
		added:   color.New(color.FgGreen),
		removed: color.New(color.FgRed),
		changed: color.New(color.FgYellow),
	}

	for _, c := range []*color.Color{s.heading, s.same, s.added, s.removed, s.changed} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

// colorEnabled resolves the --color flag. In auto mode colors are used when
// stdout is a terminal and NO_COLOR is unset.
func colorEnabled(mode string) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		if os.Getenv("NO_COLOR") != "" {
			return false, nil
		}
		fd := os.Stdout.Fd()
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd), nil
	default:
		return false, fmt.Errorf("invalid --color value %q: use auto, always or never", mode)
	}
}

// outputComparisonText outputs the comparison result in human-readable text format.
func outputComparisonText(out io.Writer, result *ComparisonResult, s *styles) {
	s.heading.Fprintf(out, "Run Comparison: #%d -> #%d\n", result.Previous.ID, result.Current.ID)
	fmt.Fprintln(out, strings.Repeat("=", 60))

	fmt.Fprintf(out, "\nPrevious run: #%-4d %s  %d file(s), %d point(s)  %s\n",
		result.Previous.ID,
		result.Previous.DateScanned.Format("2006-01-02 15:04:05"),
		result.Previous.Inputs, result.Previous.Points, result.Previous.Digest)
	fmt.Fprintf(out, "Current run:  #%-4d %s  %d file(s), %d point(s)  %s\n\n",
		result.Current.ID,
		result.Current.DateScanned.Format("2006-01-02 15:04:05"),
		result.Current.Inputs, result.Current.Points, result.Current.Digest)

	c := result.Comparison
	switch {
	case c.Identical:
		s.same.Fprintln(out, "Result sets are identical.")
		return
	case c.Reordered:
		s.changed.Fprintln(out, "Result sets hold the same values; mass ranges appear in a different order.")
		return
	}

	if len(c.AddedRanges) > 0 {
		fmt.Fprintf(out, "Added mass ranges (%d):\n", len(c.AddedRanges))
		for _, r := range c.AddedRanges {
			s.added.Fprintf(out, "  [+] %s\n", r)
		}
	}
	if len(c.RemovedRanges) > 0 {
		fmt.Fprintf(out, "Removed mass ranges (%d):\n", len(c.RemovedRanges))
		for _, r := range c.RemovedRanges {
			s.removed.Fprintf(out, "  [-] %s\n", r)
		}
	}
	if len(c.AddedPoints) > 0 {
		fmt.Fprintf(out, "Added points (%d):\n", len(c.AddedPoints))
		for _, p := range c.AddedPoints {
			s.added.Fprintf(out, "  [+] %s phi=%s logL=%s\n", p.Range, log.FormatNumber(p.Phi), log.FormatNumber(p.LogL))
		}
	}
	if len(c.RemovedPoints) > 0 {
		fmt.Fprintf(out, "Removed points (%d):\n", len(c.RemovedPoints))
		for _, p := range c.RemovedPoints {
			s.removed.Fprintf(out, "  [-] %s phi=%s logL=%s\n", p.Range, log.FormatNumber(p.Phi), log.FormatNumber(p.LogL))
		}
	}
	if len(c.ChangedPoints) > 0 {
		fmt.Fprintf(out, "Changed points (%d):\n", len(c.ChangedPoints))
		for _, p := range c.ChangedPoints {
			s.changed.Fprintf(out, "  [~] %s phi=%s logL %s -> %s\n",
				p.Range, log.FormatNumber(p.Phi), log.FormatNumber(p.Before), log.FormatNumber(p.After))
		}
	}
}
