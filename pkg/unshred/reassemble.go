package unshred

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/unshred/pkg/errors"
	"github.com/matzehuels/unshred/pkg/perm"
)

// Reassemble builds a new image of the same size as img where slot i holds
// shred order[i] of img. order must be a permutation of the shred indices.
func Reassemble(img *image.NRGBA, shredWidth int, order []int) (*image.NRGBA, error) {
	if err := validateImage(img); err != nil {
		return nil, err
	}
	b := img.Bounds()
	if err := CheckGeometry(b.Dx(), shredWidth); err != nil {
		return nil, err
	}
	n := b.Dx() / shredWidth
	if len(order) != n || !perm.IsPermutation(order) {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"order %v is not a permutation of %d shreds", order, n)
	}

	out := imaging.New(b.Dx(), b.Dy(), color.NRGBA{})
	rowBytes := 4 * shredWidth
	for slot, shred := range order {
		x := b.Min.X + shred*shredWidth
		for y := range b.Dy() {
			src := img.PixOffset(x, b.Min.Y+y)
			dst := out.PixOffset(slot*shredWidth, y)
			copy(out.Pix[dst:dst+rowBytes], img.Pix[src:src+rowBytes])
		}
	}
	return out, nil
}
