package queueing

import "math"

// FloatLE reports whether x is less than or equal to y, treating the two as
// equal when their difference is within a relative tolerance scaled by the
// larger magnitude:
//
//	x == y  ||  x - y <= tol * max(|x|, |y|)
//
// The exact-equality test makes the comparison well defined when both values
// are zero, where the scaled tolerance vanishes.
func FloatLE(x float64, y float64, tol float64) bool {
	if x == y {
		return true
	}
	return x-y <= tol*math.Max(math.Abs(x), math.Abs(y))
}
