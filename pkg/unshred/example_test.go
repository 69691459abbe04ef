package unshred_test

import (
	"fmt"
	"image"
	"image/color"

	"github.com/matzehuels/unshred/pkg/unshred"
)

func Example() {
	// Four 4-pixel shreds of a horizontal gradient, stored out of order.
	img := image.NewNRGBA(image.Rect(0, 0, 16, 8))
	slots := []int{2, 0, 3, 1}
	for slot, shred := range slots {
		for dx := range 4 {
			for y := range 8 {
				img.SetNRGBA(slot*4+dx, y, color.NRGBA{R: uint8(10 * (shred*4 + dx)), A: 255})
			}
		}
	}

	res, err := unshred.NewReconstructor(unshred.DefaultConfig(), nil).Reconstruct(img)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("width:", res.ShredWidth)
	fmt.Println("order:", res.Order)
	// Output:
	// width: 4
	// order: [1 3 0 2]
}

func ExampleMergePass() {
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	black := color.NRGBA{A: 255}
	col := func(c color.NRGBA) unshred.Column { return unshred.Column{c, c, c} }

	sections := []unshred.Section{
		unshred.NewSection(0, col(black), col(black)),
		unshred.NewSection(1, col(white), col(black)),
	}
	merged := unshred.MergePass(sections, 3, 25)
	fmt.Println(len(merged), unshred.Flatten(merged))
	// Output: 1 [1 0]
}
