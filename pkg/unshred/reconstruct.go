package unshred

import (
	"context"
	"image"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/unshred/pkg/errors"
	"github.com/matzehuels/unshred/pkg/observability"
	"github.com/matzehuels/unshred/pkg/perm"
)

// Result describes a reconstruction.
type Result struct {
	// ShredWidth is the detected or configured shred width in pixels.
	ShredWidth int

	// Order lists shred indices of the input in recovered left-to-right
	// order. When Complete is false it is the concatenation of the
	// remaining Sections in list order.
	Order []int

	// Complete is true when all shreds were merged into one Section.
	Complete bool

	// Sections is the number of Sections left when merging stopped.
	Sections int

	// Passes counts merge passes; Relaxations counts stalled passes that
	// loosened the matching strictness.
	Passes      int
	Relaxations int

	// PixelDiff and Threshold are the strictness in force at the end.
	PixelDiff int
	Threshold int

	// Seams summarizes how well neighboring shreds in Order match.
	Seams SeamStats

	// Duration is the wall time spent ordering.
	Duration time.Duration
}

// Reconstructor recovers shred order by repeated merge passes with bounded
// threshold relaxation.
type Reconstructor struct {
	Config Config
	Logger *log.Logger
}

// NewReconstructor creates a Reconstructor. A nil logger discards output.
func NewReconstructor(cfg Config, logger *log.Logger) *Reconstructor {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Reconstructor{Config: cfg, Logger: logger}
}

// Reconstruct is [Reconstructor.ReconstructContext] without cancellation.
func (r *Reconstructor) Reconstruct(img *image.NRGBA) (*Result, error) {
	return r.ReconstructContext(context.Background(), img)
}

// ReconstructContext detects the shred width of img (unless configured) and
// recovers the shred order.
//
// On RECONSTRUCTION_INCOMPLETE both the partial Result and the error are
// returned. Other errors return a nil Result.
func (r *Reconstructor) ReconstructContext(ctx context.Context, img *image.NRGBA) (*Result, error) {
	cfg := r.config()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := validateImage(img); err != nil {
		return nil, err
	}

	b := img.Bounds()
	width := cfg.ShredWidth
	if width == 0 {
		var err error
		width, err = DetectShredWidth(img, cfg.Threshold(b.Dy()), cfg.PixelDiff)
		if err != nil {
			return nil, err
		}
		r.logger().Debug("detected shred width", "width", width, "shreds", b.Dx()/width)
	} else if err := CheckGeometry(b.Dx(), width); err != nil {
		return nil, err
	}

	res, err := r.order(ctx, cfg, Sections(img, width))
	if res != nil && !perm.IsPermutation(res.Order) {
		return nil, errors.New(errors.ErrCodeInternal, "recovered order %v is not a permutation", res.Order)
	}
	if res != nil {
		res.ShredWidth = width
		res.Seams = MeasureSeams(img, width, res.Order, cfg.PixelDiff)
	}
	return res, err
}

// Order merges sections until one remains, relaxing strictness on stalls.
func (r *Reconstructor) Order(ctx context.Context, sections []Section) (*Result, error) {
	cfg := r.config()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return r.order(ctx, cfg, sections)
}

func (r *Reconstructor) order(ctx context.Context, cfg Config, sections []Section) (*Result, error) {
	if len(sections) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no sections to order")
	}
	height := len(sections[0].left)
	for i, s := range sections {
		if len(s.left) != height || len(s.right) != height {
			return nil, errors.New(errors.ErrCodeInvalidImage,
				"section %d has boundary columns of length %d/%d, want %d", i, len(s.left), len(s.right), height)
		}
	}

	start := time.Now()
	logger := r.logger()
	hooks := observability.Merge()
	shreds := totalShreds(sections)

	accuracy := cfg.Accuracy
	m := Merger{
		Threshold: threshold(accuracy, height),
		PixelDiff: cfg.PixelDiff,
		Workers:   cfg.Workers,
	}
	res := &Result{}

	for len(sections) > 1 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		before := len(sections)
		var err error
		if sections, err = m.Pass(ctx, sections); err != nil {
			return nil, err
		}
		res.Passes++
		hooks.OnPass(ctx, res.Passes, before, len(sections))
		logger.Debug("merge pass", "pass", res.Passes, "sections", len(sections))

		if totalShreds(sections) != shreds {
			return nil, errors.New(errors.ErrCodeInternal,
				"merge pass %d lost shreds: have %d, want %d", res.Passes, totalShreds(sections), shreds)
		}
		if len(sections) < before {
			continue
		}

		if res.Relaxations >= cfg.MaxMergeRounds {
			res.fill(sections, m, time.Since(start))
			return res, errors.New(errors.ErrCodeReconstructionIncomplete,
				"%d sections remain after %d passes and %d relaxation rounds (pixel_diff=%d, threshold=%d/%d rows)",
				len(sections), res.Passes, res.Relaxations, m.PixelDiff, m.Threshold, height)
		}

		res.Relaxations++
		m.PixelDiff += cfg.PixelDiffStep
		accuracy = max(cfg.MinAccuracy, accuracy-cfg.AccuracyStep)
		m.Threshold = threshold(accuracy, height)
		hooks.OnRelax(ctx, res.Relaxations, m.PixelDiff, m.Threshold)
		logger.Info("relaxing match strictness",
			"round", res.Relaxations,
			"sections", len(sections),
			"pixel_diff", m.PixelDiff,
			"threshold", m.Threshold)
	}

	res.fill(sections, m, time.Since(start))
	logger.Debug("ordered shreds", "shreds", shreds, "passes", res.Passes, "relaxations", res.Relaxations)
	return res, nil
}

func (res *Result) fill(sections []Section, m Merger, d time.Duration) {
	res.Order = Flatten(sections)
	res.Complete = len(sections) == 1
	res.Sections = len(sections)
	res.PixelDiff = m.PixelDiff
	res.Threshold = m.Threshold
	res.Duration = d
}

func (r *Reconstructor) config() Config {
	cfg := r.Config
	cfg.SetDefaults()
	return cfg
}

func (r *Reconstructor) logger() *log.Logger {
	if r.Logger == nil {
		return log.NewWithOptions(io.Discard, log.Options{})
	}
	return r.Logger
}
