package triage

import "math"

// Epsilon is the tolerance under which two scores are considered equal.
const Epsilon = 1e-5

// Equal reports whether a and b differ by strictly less than [Epsilon]. NaN is
// equal only to NaN.
func Equal(a, b float64) bool {
	return Compare(a, b) == 0
}

// Compare orders two scores. It returns +1 if a exceeds b by at least
// [Epsilon], -1 if b exceeds a by at least [Epsilon] and 0 otherwise. NaN
// sorts below every number, so a NaN score is served last.
func Compare(a, b float64) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return -1
	case bNaN:
		return 1
	}

	switch {
	case a-b >= Epsilon:
		return 1
	case b-a >= Epsilon:
		return -1
	default:
		return 0
	}
}
