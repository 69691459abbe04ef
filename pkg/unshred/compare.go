package unshred

import (
	"image"
	"image/color"
)

// Column is one full-height pixel column; index 0 is the top row.
type Column []color.NRGBA

// ColumnAt extracts column x (relative to the image bounds) from img.
func ColumnAt(img *image.NRGBA, x int) Column {
	b := img.Bounds()
	col := make(Column, b.Dy())
	for y := range col {
		col[y] = img.NRGBAAt(b.Min.X+x, b.Min.Y+y)
	}
	return col
}

// PixelsMatch reports whether every channel of a and b differs by strictly
// less than pixelDiff.
func PixelsMatch(a, b color.NRGBA, pixelDiff int) bool {
	return absDiff(a.R, b.R) < pixelDiff &&
		absDiff(a.G, b.G) < pixelDiff &&
		absDiff(a.B, b.B) < pixelDiff &&
		absDiff(a.A, b.A) < pixelDiff
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

// MatchCount returns the number of rows whose pixels match.
// Columns of different length are compared over the shorter one.
func MatchCount(c1, c2 Column, pixelDiff int) int {
	n := 0
	for i := range min(len(c1), len(c2)) {
		if PixelsMatch(c1[i], c2[i], pixelDiff) {
			n++
		}
	}
	return n
}

// ColumnsMatch reports whether at least threshold rows of c1 and c2 match.
// Columns of different length never match.
func ColumnsMatch(c1, c2 Column, threshold, pixelDiff int) bool {
	if len(c1) != len(c2) {
		return false
	}
	return MatchCount(c1, c2, pixelDiff) >= threshold
}
