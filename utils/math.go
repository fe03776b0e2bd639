// Package utils contains shared math helpers.
package utils

import (
	"math"
)

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// Float64AlmostEqual compares two float64s within the given epsilon.
func Float64AlmostEqual(v1, v2, epsilon float64) bool {
	return math.Abs(v1-v2) <= epsilon
}

// ModAngRad maps an angle in radians to [0, 2π).
func ModAngRad(ang float64) float64 {
	return math.Mod(math.Mod(ang, 2*math.Pi)+2*math.Pi, 2*math.Pi)
}

// WrapRad maps an angle in radians to (-π, π].
func WrapRad(ang float64) float64 {
	wrapped := ModAngRad(ang)
	if wrapped > math.Pi {
		wrapped -= 2 * math.Pi
	}
	return wrapped
}

// Math.pow( x, 2 ) is slow, this is faster
func Square(n float64) float64 {
	return n * n
}
