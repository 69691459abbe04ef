package unshred

import (
	"image"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// SeamStats summarizes the match ratio (matching rows / height) of each
// pair of neighboring shreds in an ordering. Low values point at seams the
// relaxation had to force.
type SeamStats struct {
	Ratios []float64
	Mean   float64
	StdDev float64
	Min    float64
}

// MeasureSeams scores every seam of order over img at the given tolerance.
func MeasureSeams(img *image.NRGBA, shredWidth int, order []int, pixelDiff int) SeamStats {
	if len(order) < 2 || shredWidth <= 0 {
		return SeamStats{}
	}
	height := float64(img.Bounds().Dy())
	ratios := make([]float64, 0, len(order)-1)
	for i := 1; i < len(order); i++ {
		right := ColumnAt(img, order[i-1]*shredWidth+shredWidth-1)
		left := ColumnAt(img, order[i]*shredWidth)
		ratios = append(ratios, float64(MatchCount(right, left, pixelDiff))/height)
	}

	s := SeamStats{Ratios: ratios, Min: floats.Min(ratios)}
	if len(ratios) == 1 {
		s.Mean = ratios[0]
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(ratios, nil)
	return s
}
