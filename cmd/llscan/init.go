package main

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hjangles/llscan/internal/config"
)

//go:embed templates/llscan.yaml
var configTemplate []byte

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with the default settings",
		Long: `Init writes a commented configuration file holding the default scan and
histogram settings. Uncomment and edit a value to change it; command line
flags still win over the file.

Examples:
  # Create .llscan in the current directory
  llscan init

  # Create the per-user file picked up from any directory
  llscan init --user

  # Print the template instead of writing it
  llscan init --stdout`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile, "Path of the file to write")
	cmd.Flags().Bool("user", false, "Write "+config.XDGConfigFile+" in the user configuration directory")
	cmd.Flags().Bool("stdout", false, "Print the template to stdout")
	cmd.Flags().BoolP("force", "f", false, "Overwrite an existing file")
	cmd.MarkFlagsMutuallyExclusive("output", "user", "stdout")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	toStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}
	if toStdout {
		_, err := cmd.OutOrStdout().Write(configTemplate)
		return err
	}

	path, err := initTarget(cmd)
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", path)
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, configTemplate, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created configuration file: %s\n", path)
	fmt.Fprintln(cmd.OutOrStdout(), "Edit the scan: section for the threshold, output PDF and report, and the histogram: section for the tree, expression and binning.")
	return nil
}

// initTarget resolves where init writes the file.
func initTarget(cmd *cobra.Command) (string, error) {
	user, err := cmd.Flags().GetBool("user")
	if err != nil {
		return "", err
	}
	if user {
		return filepath.Join(config.XDGConfigDir(), config.XDGConfigFile), nil
	}
	return cmd.Flags().GetString("output")
}
