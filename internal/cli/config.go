package cli

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"

	"github.com/matzehuels/unshred/pkg/errors"
	"github.com/matzehuels/unshred/pkg/unshred"
)

// fileConfig is the TOML config file layout:
//
//	output = "restored.png"
//
//	[match]
//	pixel_diff = 25
//	pixel_diff_step = 5
//	accuracy = 0.4
//	accuracy_step = 0.0
//	min_accuracy = 0.05
//	max_merge_rounds = 10
//	shred_width = 0
//	workers = 0
type fileConfig struct {
	Output string         `toml:"output"`
	Match  unshred.Config `toml:"match"`
}

// loadConfig reads the config file at path over the package defaults. An
// empty path tries the default location and yields the defaults when no file
// exists there.
func loadConfig(path string) (fileConfig, error) {
	fc := fileConfig{Match: unshred.DefaultConfig()}
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return fc, nil
		}
		path = filepath.Join(dir, configFileName)
	}

	md, err := toml.DecodeFile(path, &fc)
	if err != nil {
		if !explicit && stderrors.Is(err, fs.ErrNotExist) {
			return fileConfig{Match: unshred.DefaultConfig()}, nil
		}
		if stderrors.Is(err, fs.ErrNotExist) {
			return fc, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return fc, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return fc, errors.New(errors.ErrCodeInvalidConfig,
			"config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if !md.IsDefined("match", "min_accuracy") {
		fc.Match.MinAccuracy = min(fc.Match.MinAccuracy, fc.Match.Accuracy)
	}
	return fc, nil
}

// matchFlags holds the command-line overrides for unshred.Config.
type matchFlags struct {
	pixelDiff     int
	pixelDiffStep int
	accuracy      float64
	accuracyStep  float64
	minAccuracy   float64
	maxRounds     int
	width         int
	workers       int
}

func (f *matchFlags) register(set *pflag.FlagSet) {
	d := unshred.DefaultConfig()
	set.IntVar(&f.pixelDiff, "pixel-diff", d.PixelDiff, "per-channel tolerance; channels must differ by less")
	set.IntVar(&f.pixelDiffStep, "pixel-diff-step", d.PixelDiffStep, "tolerance added on each relaxation")
	set.Float64Var(&f.accuracy, "accuracy", d.Accuracy, "fraction of rows that must match")
	set.Float64Var(&f.accuracyStep, "accuracy-step", d.AccuracyStep, "accuracy removed on each relaxation")
	set.Float64Var(&f.minAccuracy, "min-accuracy", d.MinAccuracy, "lowest accuracy relaxation may reach")
	set.IntVar(&f.maxRounds, "max-rounds", d.MaxMergeRounds, "relaxations allowed before giving up")
	set.IntVar(&f.width, "width", 0, "shred width in pixels (default: detect)")
	set.IntVar(&f.workers, "workers", 0, "parallel column comparisons (0 or 1: sequential)")
}

// apply layers explicitly set flags over base. Flags left at their default
// do not override values from the config file, and explicit zeros are kept.
func (f *matchFlags) apply(set *pflag.FlagSet, base unshred.Config) unshred.Config {
	cfg := base
	if set.Changed("pixel-diff") {
		cfg.PixelDiff = f.pixelDiff
	}
	if set.Changed("pixel-diff-step") {
		cfg.PixelDiffStep = f.pixelDiffStep
	}
	if set.Changed("accuracy") {
		cfg.Accuracy = f.accuracy
	}
	if set.Changed("accuracy-step") {
		cfg.AccuracyStep = f.accuracyStep
	}
	if set.Changed("min-accuracy") {
		cfg.MinAccuracy = f.minAccuracy
	} else {
		cfg.MinAccuracy = min(cfg.MinAccuracy, cfg.Accuracy)
	}
	if set.Changed("max-rounds") {
		cfg.MaxMergeRounds = f.maxRounds
	}
	if set.Changed("width") {
		cfg.ShredWidth = f.width
	}
	if set.Changed("workers") {
		cfg.Workers = f.workers
	}
	return cfg
}

// resolveConfig loads the config file named by --config (or the default
// location) and applies flag overrides.
func resolveConfig(set *pflag.FlagSet, configPath string, flags *matchFlags) (fileConfig, error) {
	fc, err := loadConfig(configPath)
	if err != nil {
		return fc, err
	}
	fc.Match = flags.apply(set, fc.Match)
	if err := fc.Match.Validate(); err != nil {
		return fc, err
	}
	return fc, nil
}
