package tensor

import "math"

func AlmostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func AlmostEqualSlices(a, b []float64, tol float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}
