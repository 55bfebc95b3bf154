package qap

// nextPermutation rearranges p into its lexicographic successor and reports
// whether one exists. On false, p is left as the last (descending) permutation.
//
// Complexity: O(len(p)) worst case, O(1) amortized.
func nextPermutation(p []int) bool {
	n := len(p)
	if n < 2 {
		return false
	}

	// Find the rightmost ascent p[i] < p[i+1].
	i := n - 2
	for i >= 0 && p[i] >= p[i+1] {
		i--
	}
	if i < 0 {
		return false
	}

	// Swap p[i] with the rightmost element greater than it, then reverse the suffix.
	j := n - 1
	for p[j] <= p[i] {
		j--
	}
	p[i], p[j] = p[j], p[i]
	for l, r := i+1, n-1; l < r; l, r = l+1, r-1 {
		p[l], p[r] = p[r], p[l]
	}

	return true
}

// factorial returns n! for 0 ≤ n ≤ MaxExhaustiveLimit.
func factorial(n int) uint64 {
	f := uint64(1)
	for k := 2; k <= n; k++ {
		f *= uint64(k)
	}
	return f
}
