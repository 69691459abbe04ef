package unshred

import (
	"image"
	"image/color"
	"math/rand/v2"
	"testing"
)

// rampImage returns a w×h image whose red channel rises by 4 per column.
// Neighboring columns differ by 4; columns one shred apart by far more.
func rampImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := range w {
		for y := range h {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(4 * x), G: uint8(y), A: 255})
		}
	}
	return img
}

// redBlueImage fades from red on the left to blue on the right.
func redBlueImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := range w {
		for y := range h {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(255 - 4*x), B: uint8(4 * x), A: 255})
		}
	}
	return img
}

func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := range w {
		for y := range h {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// noiseImage returns opaque random pixels from a fixed seed.
func noiseImage(w, h int, seed uint64) *image.NRGBA {
	rng := rand.New(rand.NewPCG(seed, seed+1))
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := range w {
		for y := range h {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(rng.IntN(256)),
				G: uint8(rng.IntN(256)),
				B: uint8(rng.IntN(256)),
				A: 255,
			})
		}
	}
	return img
}

// shuffle places shred p[i] of img into slot i.
func shuffle(t *testing.T, img *image.NRGBA, shredWidth int, p []int) *image.NRGBA {
	t.Helper()
	out, err := Reassemble(img, shredWidth, p)
	if err != nil {
		t.Fatalf("Reassemble(%v): %v", p, err)
	}
	return out
}

func column(h int, c color.NRGBA) Column {
	col := make(Column, h)
	for i := range col {
		col[i] = c
	}
	return col
}

func sameImage(a, b *image.NRGBA) bool {
	if a.Bounds().Size() != b.Bounds().Size() {
		return false
	}
	ab, bb := a.Bounds(), b.Bounds()
	for y := range ab.Dy() {
		for x := range ab.Dx() {
			if a.NRGBAAt(ab.Min.X+x, ab.Min.Y+y) != b.NRGBAAt(bb.Min.X+x, bb.Min.Y+y) {
				return false
			}
		}
	}
	return true
}
