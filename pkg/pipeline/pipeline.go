// Package pipeline provides the end-to-end unshred pipeline.
//
// This package implements the complete decode → reconstruct → encode
// pipeline used by the CLI. Library callers that already hold an image can
// use [unshred.Reconstructor] directly.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Decode: Read the shredded image and convert it to NRGBA
//  2. Reconstruct: Detect the shred width, recover the order, reassemble
//  3. Encode: Write the reassembled image in the format of the output path
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    Input:  "shredded.png",
//	    Output: "unshredded.png",
//	}
//	result, err := runner.Execute(ctx, opts)
//	if errors.Is(err, errors.ErrCodeReconstructionIncomplete) {
//	    // result holds the best-effort order; the image was still written
//	}
//
// Run individual stages:
//
//	img, err := runner.Decode(ctx, "shredded.png")
//	res, out, err := runner.Reconstruct(ctx, img, opts)
//	err = runner.Encode(ctx, out, "unshredded.png")
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/unshred/pkg/errors"
	"github.com/matzehuels/unshred/pkg/imageio"
	"github.com/matzehuels/unshred/pkg/unshred"
)

// =============================================================================
// Default Values
// =============================================================================

// DefaultOutput is the output path used when Options.Output is empty.
const DefaultOutput = "unshredded.png"

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	// Input is the shredded image path, or "-" for standard input.
	Input string `json:"input"`

	// Output is the reassembled image path, or "-" for standard output.
	Output string `json:"output,omitempty"`

	// Config controls matching strictness and relaxation.
	Config unshred.Config `json:"config"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies the run in logs.
	RunID string

	// Output is the path the reassembled image was written to.
	Output string

	// Reconstruction holds the recovered order and merge statistics.
	Reconstruction *unshred.Result

	// Stats contains timing and size information.
	Stats Stats
}

// Complete reports whether every shred was placed with confidence.
func (r *Result) Complete() bool {
	return r != nil && r.Reconstruction != nil && r.Reconstruction.Complete
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Width           int
	Height          int
	ShredWidth      int
	Shreds          int
	Passes          int
	Relaxations     int
	DecodeTime      time.Duration
	ReconstructTime time.Duration
	EncodeTime      time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Input == "" {
		return errors.New(errors.ErrCodeInvalidInput, "input is required")
	}
	if err := errors.ValidatePath(o.Input); err != nil {
		return err
	}
	if err := o.ValidateForEncode(); err != nil {
		return err
	}
	o.Config.SetDefaults()
	if err := o.Config.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForEncode applies the output default and checks that the output
// path names a writable format.
func (o *Options) ValidateForEncode() error {
	if o.Output == "" {
		o.Output = DefaultOutput
	}
	if err := errors.ValidatePath(o.Output); err != nil {
		return err
	}
	if _, err := imageio.FormatFor(o.Output); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}
