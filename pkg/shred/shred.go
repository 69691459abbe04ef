// Package shred cuts an image into equal-width vertical strips and shuffles
// them, producing inputs for [unshred.Reconstructor].
//
// The permutation is drawn from a seeded PCG source, so the same seed always
// produces the same shredded image.
package shred

import (
	"image"

	"github.com/matzehuels/unshred/pkg/errors"
	"github.com/matzehuels/unshred/pkg/perm"
	"github.com/matzehuels/unshred/pkg/unshred"
)

// DefaultWidth is the strip width used when Options.Width is zero.
const DefaultWidth = 32

// maxAttempts bounds the search for a permutation without neighbors.
const maxAttempts = 1000

// Options configures Shred.
type Options struct {
	// Width is the strip width in pixels; it must divide the image width.
	Width int

	// Seed selects the permutation.
	Seed uint64

	// AllowAdjacent keeps permutations where two originally neighboring
	// strips stay next to each other. By default they are rejected, since
	// width detection relies on the first two strips not being neighbors.
	AllowAdjacent bool
}

// Shred returns the shuffled image and the permutation used: slot i of the
// output holds strip p[i] of img.
func Shred(img *image.NRGBA, opts Options) (*image.NRGBA, []int, error) {
	if img == nil {
		return nil, nil, errors.New(errors.ErrCodeInvalidImage, "image is nil")
	}
	if opts.Width == 0 {
		opts.Width = DefaultWidth
	}
	if err := unshred.CheckGeometry(img.Bounds().Dx(), opts.Width); err != nil {
		return nil, nil, err
	}

	n := img.Bounds().Dx() / opts.Width
	p, err := permutation(n, opts.Seed, opts.AllowAdjacent)
	if err != nil {
		return nil, nil, err
	}
	out, err := unshred.Reassemble(img, opts.Width, p)
	if err != nil {
		return nil, nil, err
	}
	return out, p, nil
}

func permutation(n int, seed uint64, allowAdjacent bool) ([]int, error) {
	if allowAdjacent || n < 2 {
		return perm.Shuffle(n, seed), nil
	}
	for attempt := range uint64(maxAttempts) {
		p := perm.Shuffle(n, seed+attempt)
		if !HasAdjacent(p) {
			return p, nil
		}
	}
	return nil, errors.New(errors.ErrCodeInternal,
		"no permutation of %d strips without neighbors after %d attempts", n, maxAttempts)
}

// HasAdjacent reports whether any two consecutive slots of p hold strips
// that were neighbors in the original order.
func HasAdjacent(p []int) bool {
	for i := 1; i < len(p); i++ {
		if p[i] == p[i-1]+1 {
			return true
		}
	}
	return false
}
