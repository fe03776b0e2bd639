package spatialmath

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// Norm returns the norm of the quaternion, i.e. the sqrt of the squares of the imaginary parts.
func Norm(q quat.Number) float64 {
	return math.Sqrt(q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag)
}

// Flip will multiply a quaternion by -1, returning a quaternion representing the same orientation but in the opposing octant.
func Flip(q quat.Number) quat.Number {
	return quat.Number{Real: -q.Real, Imag: -q.Imag, Jmag: -q.Jmag, Kmag: -q.Kmag}
}

// QuaternionAlmostEqual checks if two quaternions are equal to within the given tolerance.
// A quaternion and its flip represent the same orientation, so those compare equal as well.
func QuaternionAlmostEqual(a, b quat.Number, tol float64) bool {
	b2 := Flip(b)
	d1 := quat.Abs(quat.Sub(a, b))
	d2 := quat.Abs(quat.Sub(a, b2))
	return d1 < tol || d2 < tol
}
