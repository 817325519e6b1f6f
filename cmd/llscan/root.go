package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/hjangles/llscan/internal/config"
	"github.com/hjangles/llscan/internal/log"
)

// Exit statuses.
const (
	exitUsage   = 1
	exitFailure = 2
)

// exitError carries a specific exit status. A silent exitError prints nothing.
type exitError struct {
	code   int
	silent bool
	err    error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

// errUsage is returned for a wrong positional argument count of hist.
var errUsage = &exitError{code: exitUsage, silent: true}

// NewRootCmd creates the root command for llscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "llscan",
		Short: "Profile-likelihood scan plots and histogram extraction for ROOT files",
		Long: `llscan reads the ROOT files written by a likelihood scan, groups the
negative log-likelihoods by hj_mass range and draws one profile-likelihood
curve per range into a multi-page PDF.

It can also fill a histogram from a tree branch and write it to a new ROOT
file, keep a history of scan runs and compare two runs.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .llscan in current or home directory)")
	cmd.PersistentFlags().String("log-format", "text", "Log format on stderr: text or json")
	cmd.PersistentFlags().String(config.FlagDBDir, "",
		"Run history directory (default: XDG data directory)")

	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewHistCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command and exits with the status matching the error.
func Execute() {
	os.Exit(run(NewRootCmd(), os.Args[1:], os.Stderr))
}

// run executes cmd with args and returns the exit status.
func run(cmd *cobra.Command, args []string, stderr io.Writer) int {
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err == nil {
		return 0
	}

	var ee *exitError
	if errors.As(err, &ee) {
		if !ee.silent {
			fmt.Fprintln(stderr, err)
		}
		return ee.code
	}
	fmt.Fprintln(stderr, err)
	return exitFailure
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates the stderr logger selected by --log-format and -v.
func setupLogger(cmd *cobra.Command) *slog.Logger {
	verbose := getVerboseFlag(cmd)
	format, _ := cmd.Flags().GetString("log-format") //nolint:errcheck // persistent flag is always defined
	if format == "json" {
		return log.NewJSONLogger(cmd.ErrOrStderr(), verbose)
	}
	return log.NewLogger(cmd.ErrOrStderr(), verbose)
}

// loadConfigFile finds and loads the configuration file.
// If the user explicitly specified a path, a missing file is an error.
// Otherwise a missing file yields an empty configuration.
func loadConfigFile(cmd *cobra.Command) (*config.File, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	found := config.FindConfigFile(path)
	if found == "" {
		if path != "" {
			return nil, fmt.Errorf("configuration file not found: %s", path)
		}
		return &config.File{}, nil
	}

	cf, err := config.LoadConfigFile(found)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", found, err)
	}
	return cf, nil
}

// resolveDBDir returns the history directory: --db-dir, then the config
// file, then the XDG data directory.
func resolveDBDir(cmd *cobra.Command) (string, error) {
	cfg := config.NewConfig()
	dir, err := cmd.Flags().GetString(config.FlagDBDir)
	if err != nil {
		return "", err
	}
	if dir != "" {
		return dir, nil
	}

	cf, err := loadConfigFile(cmd)
	if err != nil {
		return "", err
	}
	cf.ApplyScan(cfg, cmd.Flags().Changed)
	return cfg.DBDir, nil
}
