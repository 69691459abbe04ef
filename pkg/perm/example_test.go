package perm_test

import (
	"fmt"

	"github.com/matzehuels/unshred/pkg/perm"
)

func ExampleGenerate() {
	perms := perm.Generate(3, -1)
	fmt.Println("All permutations of [0,1,2]:")
	for _, p := range perms {
		fmt.Println(p)
	}
	// Output:
	// All permutations of [0,1,2]:
	// [0 1 2]
	// [1 0 2]
	// [2 0 1]
	// [0 2 1]
	// [1 2 0]
	// [2 1 0]
}

func ExampleInverse() {
	shuffled := []int{2, 0, 1}
	fmt.Println(perm.Inverse(shuffled))
	// Output:
	// [1 2 0]
}
