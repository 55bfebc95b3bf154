package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/layoutopt/matrix"
)

// ExampleParse shows the text format: "-" marks "no relationship".
func ExampleParse() {
	m, err := matrix.Parse(`- 4 6
4 - 3
6 3 -`)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Print(m)

	// Output:
	// [0, 4, 6]
	// [4, 0, 3]
	// [6, 3, 0]
}

// ExampleSymmetrize folds an upper-triangular FLOW into a symmetric one.
func ExampleSymmetrize() {
	flow, _ := matrix.Parse("- 10\n0 -")
	sym, _ := matrix.Symmetrize(flow)
	fmt.Print(sym)

	// Output:
	// [0, 5]
	// [5, 0]
}
