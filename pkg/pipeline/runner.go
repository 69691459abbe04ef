package pipeline

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/unshred/pkg/errors"
	"github.com/matzehuels/unshred/pkg/imageio"
	"github.com/matzehuels/unshred/pkg/observability"
	"github.com/matzehuels/unshred/pkg/unshred"
)

// Runner executes pipeline stages.
//
// The Runner is stateless except for the logger - it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner
// with different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete decode → reconstruct → encode pipeline.
//
// When reconstruction is incomplete the best-effort image is still written,
// and Execute returns the Result together with the
// RECONSTRUCTION_INCOMPLETE error.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	runID := uuid.NewString()
	opts.Logger = opts.Logger.With("run", runID[:8])
	result := &Result{RunID: runID, Output: opts.Output}

	// Stage 1: Decode
	decodeStart := time.Now()
	img, err := r.Decode(ctx, opts.Input)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	b := img.Bounds()
	result.Stats.DecodeTime = time.Since(decodeStart)
	result.Stats.Width = b.Dx()
	result.Stats.Height = b.Dy()

	opts.Logger.Info("decoded image",
		"width", b.Dx(),
		"height", b.Dy(),
		"duration", result.Stats.DecodeTime)

	// Stage 2: Reconstruct
	reconstructStart := time.Now()
	res, out, recErr := r.Reconstruct(ctx, img, opts)
	if recErr != nil && !errors.Is(recErr, errors.ErrCodeReconstructionIncomplete) {
		return nil, fmt.Errorf("reconstruct: %w", recErr)
	}
	result.Reconstruction = res
	result.Stats.ReconstructTime = time.Since(reconstructStart)
	result.Stats.ShredWidth = res.ShredWidth
	result.Stats.Shreds = len(res.Order)
	result.Stats.Passes = res.Passes
	result.Stats.Relaxations = res.Relaxations

	if recErr != nil {
		opts.Logger.Warn("reconstruction incomplete",
			"sections", res.Sections,
			"relaxations", res.Relaxations,
			"pixel_diff", res.PixelDiff,
			"threshold", res.Threshold)
	} else {
		opts.Logger.Info("reconstructed order",
			"shred_width", res.ShredWidth,
			"shreds", len(res.Order),
			"passes", res.Passes,
			"duration", result.Stats.ReconstructTime)
	}

	// Stage 3: Encode
	encodeStart := time.Now()
	if err := r.Encode(ctx, out, opts.Output); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	result.Stats.EncodeTime = time.Since(encodeStart)

	opts.Logger.Info("wrote image",
		"path", opts.Output,
		"duration", result.Stats.EncodeTime)

	if recErr != nil {
		return result, fmt.Errorf("reconstruct: %w", recErr)
	}
	return result, nil
}

// Decode reads the image at path ("-" for standard input).
func (r *Runner) Decode(ctx context.Context, path string) (*image.NRGBA, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnDecodeStart(ctx, path)
	start := time.Now()

	img, err := imageio.Open(path)
	w, h := 0, 0
	if img != nil {
		w, h = img.Bounds().Dx(), img.Bounds().Dy()
	}
	hooks.OnDecodeComplete(ctx, path, w, h, time.Since(start), err)
	return img, err
}

// Reconstruct recovers the shred order of img and reassembles it.
//
// On RECONSTRUCTION_INCOMPLETE the partial result and its best-effort image
// are returned along with the error.
func (r *Runner) Reconstruct(ctx context.Context, img *image.NRGBA, opts Options) (*unshred.Result, *image.NRGBA, error) {
	r.applyLogger(&opts)
	hooks := observability.Pipeline()
	b := img.Bounds()
	hooks.OnReconstructStart(ctx, b.Dx(), b.Dy())
	start := time.Now()

	res, err := unshred.NewReconstructor(opts.Config, opts.Logger).ReconstructContext(ctx, img)
	shreds := 0
	if res != nil {
		shreds = len(res.Order)
	}
	hooks.OnReconstructComplete(ctx, shreds, time.Since(start), err)
	if res == nil {
		return nil, nil, err
	}

	out, rerr := unshred.Reassemble(img, res.ShredWidth, res.Order)
	if rerr != nil {
		return nil, nil, rerr
	}
	return res, out, err
}

// Encode writes img to path ("-" for standard output).
func (r *Runner) Encode(ctx context.Context, img image.Image, path string) error {
	hooks := observability.Pipeline()
	hooks.OnEncodeStart(ctx, path)
	start := time.Now()

	err := imageio.Save(img, path)
	hooks.OnEncodeComplete(ctx, path, time.Since(start), err)
	return err
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
