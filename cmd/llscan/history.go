package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/hjangles/llscan/internal/config"
	"github.com/hjangles/llscan/internal/database"
	"github.com/hjangles/llscan/internal/report"
)

// digestPrefixLen is how much of a digest the history listing shows.
const digestPrefixLen = 12

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored scan runs",
		Long: `History lists the scan runs saved in the history database, newest first.

Examples:
  # List all runs
  llscan history

  # Print the stored summary of run 3
  llscan history --show 3

  # Print it as Markdown
  llscan history --show 3 --report markdown`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().Int64P("show", "s", 0, "Print the summary of the run with this id")
	cmd.Flags().StringP(config.FlagReport, "r", config.ReportText,
		"Summary format for --show: text, json or markdown")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	showID, err := cmd.Flags().GetInt64("show")
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString(config.FlagReport)
	if err != nil {
		return err
	}

	dbDir, err := resolveDBDir(cmd)
	if err != nil {
		return err
	}

	db, err := database.Open(dbDir, database.ReadOnlyOptions())
	if errors.Is(err, database.ErrNoHistory) {
		if showID > 0 {
			return fmt.Errorf("%w: %d", database.ErrRunNotFound, showID)
		}
		listRuns(cmd.OutOrStdout(), nil)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if showID > 0 {
		run, err := db.GetRun(cmd.Context(), showID)
		if err != nil {
			return err
		}
		var w report.Writer
		if format == config.ReportText {
			w = report.NewSimpleWriter(cmd.OutOrStdout(), report.WithVerbose(true))
		} else if w, err = report.New(format, cmd.OutOrStdout()); err != nil {
			return err
		}
		_, err = w.Write(run.Summary)
		return err
	}

	runs, err := db.ListRuns(cmd.Context())
	if err != nil {
		return err
	}
	listRuns(cmd.OutOrStdout(), runs)
	return nil
}

// listRuns prints one line per run.
func listRuns(out io.Writer, runs []database.RunMetadata) {
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs found in the history.")
		fmt.Fprintln(out, "\nUse 'llscan scan <file>...' to record a run.")
		return
	}

	fmt.Fprintf(out, "Scan history (%d runs):\n\n", len(runs))
	fmt.Fprintf(out, "  %-6s  %-16s  %5s  %6s  %6s  %s\n", "ID", "When", "Files", "Ranges", "Points", "Digest")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 64))

	for _, meta := range runs {
		digest := meta.Digest
		if len(digest) > digestPrefixLen {
			digest = digest[:digestPrefixLen]
		}
		fmt.Fprintf(out, "  %-6d  %-16s  %5d  %6d  %6d  %s\n",
			meta.ID,
			humanize.Time(meta.Timestamp),
			len(meta.Inputs),
			meta.RangeCount,
			meta.PointCount,
			digest,
		)
	}

	fmt.Fprintln(out, "\nUse 'llscan history --show <id>' to print a run.")
	fmt.Fprintln(out, "Use 'llscan compare' to compare the latest two runs.")
}
