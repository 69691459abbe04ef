package unshred

import (
	"image"
	"slices"
)

// Section is a run of shreds believed to be adjacent, in final left-to-right
// order. It exposes only its outer boundary columns.
//
// Sections are values: joining two Sections yields a new one and leaves both
// inputs untouched.
type Section struct {
	shreds []int
	left   Column
	right  Column
}

// NewSection returns a one-shred Section with the given edge columns.
func NewSection(shred int, left, right Column) Section {
	return Section{shreds: []int{shred}, left: left, right: right}
}

// Sections splits img into one Section per shred of the given width.
// shredWidth must evenly divide the image width; see [CheckGeometry].
func Sections(img *image.NRGBA, shredWidth int) []Section {
	n := img.Bounds().Dx() / shredWidth
	out := make([]Section, n)
	for i := range n {
		x := i * shredWidth
		out[i] = NewSection(i, ColumnAt(img, x), ColumnAt(img, x+shredWidth-1))
	}
	return out
}

// Shreds returns a copy of the ordered shred indices.
func (s Section) Shreds() []int { return slices.Clone(s.shreds) }

// Len returns the number of shreds in the Section.
func (s Section) Len() int { return len(s.shreds) }

// Left returns the leftmost pixel column of the leftmost shred.
func (s Section) Left() Column { return s.left }

// Right returns the rightmost pixel column of the rightmost shred.
func (s Section) Right() Column { return s.right }

// Join returns the Section formed by placing next immediately to the right
// of s.
func (s Section) Join(next Section) Section {
	shreds := make([]int, 0, len(s.shreds)+len(next.shreds))
	shreds = append(shreds, s.shreds...)
	shreds = append(shreds, next.shreds...)
	return Section{shreds: shreds, left: s.left, right: next.right}
}

// Flatten concatenates the shred indices of sections in list order.
func Flatten(sections []Section) []int {
	var order []int
	for _, s := range sections {
		order = append(order, s.shreds...)
	}
	return order
}

// totalShreds counts shreds across sections.
func totalShreds(sections []Section) int {
	n := 0
	for _, s := range sections {
		n += len(s.shreds)
	}
	return n
}
