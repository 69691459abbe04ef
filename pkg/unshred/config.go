package unshred

import (
	"math"

	"github.com/matzehuels/unshred/pkg/errors"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultPixelDiff is the starting per-channel tolerance.
	DefaultPixelDiff = 25

	// DefaultPixelDiffStep is added to the tolerance on every relaxation.
	DefaultPixelDiffStep = 5

	// DefaultAccuracy is the fraction of rows that must match for two
	// columns to be called adjacent.
	DefaultAccuracy = 0.40

	// DefaultMinAccuracy is the floor for accuracy relaxation.
	DefaultMinAccuracy = 0.05

	// DefaultMaxMergeRounds bounds the number of relaxations.
	DefaultMaxMergeRounds = 10
)

// Config controls matching strictness and the relaxation policy.
//
// The zero Config means [DefaultConfig]. Otherwise only PixelDiff, Accuracy
// and MinAccuracy take defaults when zero, since zero is not valid for them.
// A zero PixelDiffStep or MaxMergeRounds is used as given, so start from
// DefaultConfig to change single fields.
type Config struct {
	// PixelDiff is the per-channel tolerance; channel differences must be
	// strictly below it.
	PixelDiff int `toml:"pixel_diff" json:"pixel_diff"`

	// PixelDiffStep is added to PixelDiff after a stalled pass.
	PixelDiffStep int `toml:"pixel_diff_step" json:"pixel_diff_step"`

	// Accuracy is the fraction of the image height that must match.
	Accuracy float64 `toml:"accuracy" json:"accuracy"`

	// AccuracyStep is subtracted from Accuracy after a stalled pass.
	AccuracyStep float64 `toml:"accuracy_step" json:"accuracy_step"`

	// MinAccuracy is the lowest Accuracy relaxation may reach.
	MinAccuracy float64 `toml:"min_accuracy" json:"min_accuracy"`

	// MaxMergeRounds is the number of relaxations allowed before giving up.
	MaxMergeRounds int `toml:"max_merge_rounds" json:"max_merge_rounds"`

	// ShredWidth skips width detection when positive.
	ShredWidth int `toml:"shred_width" json:"shred_width,omitempty"`

	// Workers enables parallel column comparisons when greater than one.
	Workers int `toml:"workers" json:"workers,omitempty"`
}

// DefaultConfig returns a Config with every default applied.
func DefaultConfig() Config {
	return Config{
		PixelDiff:      DefaultPixelDiff,
		PixelDiffStep:  DefaultPixelDiffStep,
		Accuracy:       DefaultAccuracy,
		MinAccuracy:    DefaultMinAccuracy,
		MaxMergeRounds: DefaultMaxMergeRounds,
	}
}

// SetDefaults replaces the zero Config with [DefaultConfig] and fills the
// zero-valued fields that have no valid zero.
func (c *Config) SetDefaults() {
	if *c == (Config{}) {
		*c = DefaultConfig()
		return
	}
	if c.PixelDiff == 0 {
		c.PixelDiff = DefaultPixelDiff
	}
	if c.Accuracy == 0 {
		c.Accuracy = DefaultAccuracy
	}
	if c.MinAccuracy == 0 {
		c.MinAccuracy = min(DefaultMinAccuracy, c.Accuracy)
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	switch {
	case c.PixelDiff < 1 || c.PixelDiff > 256:
		return errors.New(errors.ErrCodeInvalidConfig, "pixel_diff must be in [1, 256], got %d", c.PixelDiff)
	case c.PixelDiffStep < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "pixel_diff_step must not be negative, got %d", c.PixelDiffStep)
	case c.Accuracy <= 0 || c.Accuracy > 1:
		return errors.New(errors.ErrCodeInvalidConfig, "accuracy must be in (0, 1], got %g", c.Accuracy)
	case c.AccuracyStep < 0 || c.AccuracyStep >= 1:
		return errors.New(errors.ErrCodeInvalidConfig, "accuracy_step must be in [0, 1), got %g", c.AccuracyStep)
	case c.MinAccuracy <= 0 || c.MinAccuracy > c.Accuracy:
		return errors.New(errors.ErrCodeInvalidConfig, "min_accuracy must be in (0, accuracy], got %g", c.MinAccuracy)
	case c.MaxMergeRounds < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "max_merge_rounds must not be negative, got %d", c.MaxMergeRounds)
	case c.ShredWidth < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "shred_width must not be negative, got %d", c.ShredWidth)
	case c.Workers < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "workers must not be negative, got %d", c.Workers)
	}
	return nil
}

// Threshold converts Accuracy into an absolute row count for an image of the
// given height.
func (c Config) Threshold(height int) int {
	return threshold(c.Accuracy, height)
}

func threshold(accuracy float64, height int) int {
	if height <= 0 {
		return 0
	}
	// The epsilon keeps exact products such as 0.4*10 from rounding up.
	t := int(math.Ceil(accuracy*float64(height) - 1e-9))
	return max(1, min(t, height))
}
