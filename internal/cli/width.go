package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/unshred/pkg/imageio"
	"github.com/matzehuels/unshred/pkg/unshred"
)

// widthCommand creates the command that reports the detected shred width.
func (c *CLI) widthCommand() *cobra.Command {
	var (
		configPath string
		flags      matchFlags
	)

	cmd := &cobra.Command{
		Use:   "width [image]",
		Short: "Print the detected shred width",
		Long: `Print the shred width detected in a shredded image and the resulting number
of shreds.

Adjacent pixel columns are compared from the left edge; the first pair that
does not match marks the right edge of the first shred. The --pixel-diff and
--accuracy flags control what counts as a match.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWidth(cmd, args[0], configPath, &flags)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "TOML config file")
	flags.register(cmd.Flags())

	return cmd
}

func (c *CLI) runWidth(cmd *cobra.Command, input, configPath string, flags *matchFlags) error {
	logger := loggerFromContext(cmd.Context())

	fc, err := resolveConfig(cmd.Flags(), configPath, flags)
	if err != nil {
		return err
	}
	img, err := imageio.Open(input)
	if err != nil {
		return err
	}

	cfg := fc.Match
	b := img.Bounds()
	threshold := cfg.Threshold(b.Dy())
	width := cfg.ShredWidth
	if width == 0 {
		prog := newProgress(logger)
		width, err = unshred.DetectShredWidth(img, threshold, cfg.PixelDiff)
		if err != nil {
			return err
		}
		prog.done("Detected shred width")
	} else if err := unshred.CheckGeometry(b.Dx(), width); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	printKeyValue(w, "Image", fmt.Sprintf("%d×%d", b.Dx(), b.Dy()))
	printKeyValue(w, "Width", StyleNumber.Render(fmt.Sprint(width)))
	printKeyValue(w, "Shreds", StyleNumber.Render(fmt.Sprint(b.Dx()/width)))
	printKeyValue(w, "Threshold", fmt.Sprintf("%d/%d rows at pixel diff %d", threshold, b.Dy(), cfg.PixelDiff))
	return nil
}
