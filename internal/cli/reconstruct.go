package cli

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/unshred/pkg/errors"
	"github.com/matzehuels/unshred/pkg/pipeline"
)

// reconstructCommand creates the command that reassembles a shredded image.
// It serves as the root command.
func (c *CLI) reconstructCommand() *cobra.Command {
	var (
		output     string
		configPath string
		printOrder bool
		flags      matchFlags
	)

	cmd := &cobra.Command{
		Use:   appName + " [image]",
		Short: "Unshred reassembles images cut into shuffled vertical strips",
		Long: `Unshred reassembles an image that was cut into equal-width vertical strips
and shuffled.

The shred width is detected from the first column discontinuity unless
--width is given. Strips are then merged greedily by comparing their edge
columns; when a pass makes no progress the matching tolerance is loosened,
up to --max-rounds times.

Settings are read from --config (default: ~/.config/unshred/config.toml),
and flags given on the command line override the file.

Exit status is 2 when some strips could not be placed with confidence; the
best-effort image is still written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runReconstruct(cmd, args[0], output, configPath, printOrder, &flags)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output image, '-' for stdout (default: "+pipeline.DefaultOutput+")")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML config file")
	cmd.Flags().BoolVar(&printOrder, "print-order", false, "print the recovered shred order")
	flags.register(cmd.Flags())

	return cmd
}

// runReconstruct resolves configuration, runs the pipeline and reports.
func (c *CLI) runReconstruct(cmd *cobra.Command, input, output, configPath string, printOrder bool, flags *matchFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	fc, err := resolveConfig(cmd.Flags(), configPath, flags)
	if err != nil {
		return err
	}
	if output == "" {
		output = fc.Output
	}

	opts := pipeline.Options{
		Input:  input,
		Output: output,
		Config: fc.Match,
		Logger: logger,
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	w := uiWriter(cmd, opts.Output)

	var spinner *Spinner
	if logger.GetLevel() > log.DebugLevel {
		spinner = newSpinnerWithContext(ctx, cmd.ErrOrStderr(), "Reconstructing "+input+"...")
		spinner.Start()
	}
	prog := newProgress(logger)

	result, err := c.newRunner().Execute(ctx, opts)
	if spinner != nil {
		spinner.Stop()
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if result == nil {
		return err
	}
	prog.done("Reconstruction finished")

	rec := result.Reconstruction
	if result.Complete() {
		printSuccess(w, "Reconstructed %s", StyleHighlight.Render(input))
	} else {
		printWarning(w, "Reconstruction incomplete: %d sections could not be joined", rec.Sections)
	}
	printFile(w, result.Output)
	printStats(w, result.Stats.Shreds, result.Stats.ShredWidth, result.Stats.Passes, result.Stats.Relaxations)
	if len(rec.Seams.Ratios) > 0 {
		printDetail(w, "seam match: mean %.2f, stddev %.2f, min %.2f", rec.Seams.Mean, rec.Seams.StdDev, rec.Seams.Min)
	}
	if printOrder {
		printKeyValue(w, "Order", formatOrder(rec.Order))
	}

	if errors.Is(err, errors.ErrCodeReconstructionIncomplete) {
		printNextStep(w, "Loosen matching", fmt.Sprintf("%s %s --max-rounds %d", appName, input, 2*max(opts.Config.MaxMergeRounds, 1)))
	}
	return err
}
