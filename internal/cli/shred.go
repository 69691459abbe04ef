package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/unshred/pkg/imageio"
	"github.com/matzehuels/unshred/pkg/shred"
)

// defaultSeed is the shred seed used when --seed is not given.
const defaultSeed = uint64(42)

// shredCommand creates the command that produces shredded test images.
func (c *CLI) shredCommand() *cobra.Command {
	var (
		output string
		opts   = shred.Options{Width: shred.DefaultWidth, Seed: defaultSeed}
	)

	cmd := &cobra.Command{
		Use:   "shred [image]",
		Short: "Cut an image into shuffled vertical strips",
		Long: `Cut an image into equal-width vertical strips and shuffle them.

The shuffle is seeded, so the same --seed always produces the same image.
By default no two strips that were neighbors end up next to each other, which
keeps the result solvable by width detection.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runShred(cmd, args[0], output, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output image, '-' for stdout (default: <input>.shredded.png)")
	cmd.Flags().IntVar(&opts.Width, "width", opts.Width, "strip width in pixels")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", opts.Seed, "shuffle seed")
	cmd.Flags().BoolVar(&opts.AllowAdjacent, "allow-adjacent", false, "allow original neighbors to stay together")

	return cmd
}

func (c *CLI) runShred(cmd *cobra.Command, input, output string, opts shred.Options) error {
	logger := loggerFromContext(cmd.Context())

	img, err := imageio.Open(input)
	if err != nil {
		return err
	}
	out, p, err := shred.Shred(img, opts)
	if err != nil {
		return err
	}
	logger.Debug("shuffled strips", "strips", len(p), "seed", opts.Seed)

	if output == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		output = base + ".shredded.png"
	}
	if err := imageio.Save(out, output); err != nil {
		return err
	}

	w := uiWriter(cmd, output)
	printSuccess(w, "Shredded into %d strips of %dpx", len(p), opts.Width)
	printFile(w, output)
	printKeyValue(w, "Order", formatOrder(p))
	printNextStep(w, "Reconstruct", fmt.Sprintf("%s %s", appName, output))
	return nil
}
