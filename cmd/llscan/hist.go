package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hjangles/llscan/internal/config"
	"github.com/hjangles/llscan/internal/hist"
	"github.com/hjangles/llscan/internal/plot"
)

// NewHistCmd creates the hist command.
func NewHistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hist [flags] <input> <output>",
		Short: "Fill a histogram from a tree branch and write it to a ROOT file",
		Long: `Hist opens the "angles" tree of <input>, prints its entry count, fills
h_cos_theta with abs(cos_theta) in 50 bins over [0,1] and writes it to
<output>, replacing the file.

The tree, expression, binning and histogram name can be changed with flags
or in the histogram section of the configuration file. An expression is a
branch name or one of abs, cos, sin, sqrt, sq, neg applied to a branch.

Exactly two arguments are required; any other count exits with status 1
without output.

Examples:
  llscan hist events.root h.root

  # Bin phi instead and save a PNG preview
  llscan hist --expr phi --min -3.1416 --max 3.1416 --name h_phi \
    --preview h_phi.png events.root h.root`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errUsage
			}
			return nil
		},
		RunE: runHistCmd,
	}

	spec := config.NewConfig().Histogram
	cmd.Flags().String(config.FlagTree, spec.Tree, "Name of the input tree")
	cmd.Flags().String(config.FlagExpr, spec.Expression, "Quantity to bin: branch or fn(branch)")
	cmd.Flags().Int(config.FlagBins, spec.Bins, "Number of bins")
	cmd.Flags().Float64(config.FlagMin, spec.Min, "Lower edge of the first bin")
	cmd.Flags().Float64(config.FlagMax, spec.Max, "Upper edge of the last bin")
	cmd.Flags().String(config.FlagName, spec.Name, "Name of the output histogram")
	cmd.Flags().String(config.FlagPreview, "",
		"Also draw the histogram to this image (pdf, png, svg, eps, jpg, tif)")

	return cmd
}

// runHistCmd executes the hist command.
func runHistCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildHistConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.ValidateHistogram(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runHist(ctx, cfg, hist.NewExtractor(
		hist.WithOutput(cmd.OutOrStdout()),
		hist.WithLogger(logger),
	), args[0], args[1])
}

// buildHistConfig creates a Config from the histogram flags and the
// configuration file.
func buildHistConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.Histogram.Tree, err = cmd.Flags().GetString(config.FlagTree)
	if err != nil {
		return nil, err
	}
	cfg.Histogram.Expression, err = cmd.Flags().GetString(config.FlagExpr)
	if err != nil {
		return nil, err
	}
	cfg.Histogram.Bins, err = cmd.Flags().GetInt(config.FlagBins)
	if err != nil {
		return nil, err
	}
	cfg.Histogram.Min, err = cmd.Flags().GetFloat64(config.FlagMin)
	if err != nil {
		return nil, err
	}
	cfg.Histogram.Max, err = cmd.Flags().GetFloat64(config.FlagMax)
	if err != nil {
		return nil, err
	}
	cfg.Histogram.Name, err = cmd.Flags().GetString(config.FlagName)
	if err != nil {
		return nil, err
	}
	cfg.Preview, err = cmd.Flags().GetString(config.FlagPreview)
	if err != nil {
		return nil, err
	}

	cf, err := loadConfigFile(cmd)
	if err != nil {
		return nil, err
	}
	cf.ApplyHistogram(cfg, cmd.Flags().Changed)

	cfg.Verbose = getVerboseFlag(cmd)
	return cfg, nil
}

// runHist extracts the histogram and draws the optional preview.
func runHist(ctx context.Context, cfg *config.Config, e *hist.Extractor, input, output string) error {
	res, err := e.Extract(ctx, input, output, cfg.Histogram)
	if err != nil {
		return err
	}

	if cfg.Preview == "" {
		return nil
	}
	return plot.SaveHistogram(cfg.Preview, res.Spec.Name, res.Spec.Expression, res.Histogram)
}
