package unshred

import (
	"image"

	"github.com/matzehuels/unshred/pkg/errors"
)

// DetectShredWidth infers the shred width of img.
//
// Columns are compared pairwise from the left edge: column i against column
// i+1, advancing while they match. The first pair that does not match marks
// the right edge of the first shred, so the width is i+1. This assumes
// columns inside a shred stay visually continuous and that the first two
// shreds in the image were not neighbors originally.
//
// DetectShredWidth returns a SHRED_WIDTH_UNDETERMINED error when every pair
// matches, and INVALID_SHRED_GEOMETRY when the image width is not a multiple
// of the detected width.
func DetectShredWidth(img *image.NRGBA, threshold, pixelDiff int) (int, error) {
	if err := validateImage(img); err != nil {
		return 0, err
	}
	w := img.Bounds().Dx()

	prev := ColumnAt(img, 0)
	for i := 0; i < w-1; i++ {
		next := ColumnAt(img, i+1)
		if !ColumnsMatch(prev, next, threshold, pixelDiff) {
			width := i + 1
			if err := CheckGeometry(w, width); err != nil {
				return 0, err
			}
			return width, nil
		}
		prev = next
	}
	return 0, errors.New(errors.ErrCodeShredWidthUndetermined,
		"all %d columns match their neighbor (threshold=%d, pixel_diff=%d)", w, threshold, pixelDiff)
}

// CheckGeometry verifies that shredWidth evenly divides imageWidth.
func CheckGeometry(imageWidth, shredWidth int) error {
	if shredWidth <= 0 || shredWidth > imageWidth {
		return errors.New(errors.ErrCodeInvalidShredGeometry,
			"shred width %d out of range for image width %d", shredWidth, imageWidth)
	}
	if imageWidth%shredWidth != 0 {
		return errors.New(errors.ErrCodeInvalidShredGeometry,
			"image width %d is not a multiple of shred width %d", imageWidth, shredWidth)
	}
	return nil
}

func validateImage(img *image.NRGBA) error {
	if img == nil {
		return errors.New(errors.ErrCodeInvalidImage, "image is nil")
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return errors.New(errors.ErrCodeInvalidImage, "image is empty (%dx%d)", b.Dx(), b.Dy())
	}
	if len(img.Pix) < img.PixOffset(b.Max.X-1, b.Max.Y-1)+4 {
		return errors.New(errors.ErrCodeInvalidImage,
			"pixel buffer too short for %dx%d image", b.Dx(), b.Dy())
	}
	return nil
}
