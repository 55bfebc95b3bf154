package problem

// The classic 4-department example: FLOW is entered as an upper triangle and
// "-" marks the unused diagonal.
const (
	SampleFlow = `- 15 20 25
0 - 15 10
0 0 - 10
0 0 0 -
`
	SampleDist = `- 4 6 3
4 - 3 5
6 3 - 4
3 5 4 -
`
)

// Sample returns the example problem with no overrides.
func Sample() Problem {
	return Problem{
		Flow: Matrix{Text: SampleFlow},
		Dist: Matrix{Text: SampleDist},
	}
}
