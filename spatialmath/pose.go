package spatialmath

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/dualquat"
	"gonum.org/v1/gonum/num/quat"
)

// Pose represents a rigid transform in 3D space, i.e. a position and an orientation.
type Pose interface {
	Point() r3.Vector
	Orientation() Orientation
}

// dualQuaternion defines functions to perform rigid transformations in 3D.
// Since the real part of a dual quaternion should be a unit quaternion, not all zeroes,
// the constructors below should be used instead of &dualQuaternion{}.
type dualQuaternion struct {
	dualquat.Number
}

func newDualQuaternion() *dualQuaternion {
	return &dualQuaternion{dualquat.Number{
		Real: quat.Number{Real: 1},
		Dual: quat.Number{},
	}}
}

// NewZeroPose returns a pose at the origin with no rotation.
func NewZeroPose() Pose {
	return newDualQuaternion()
}

// NewPoseFromPoint takes in a cartesian (x,y,z) and stores it as a Pose with no rotation.
func NewPoseFromPoint(point r3.Vector) Pose {
	q := newDualQuaternion()
	q.setTranslation(point)
	return q
}

// NewPoseFromOrientation takes in an Orientation and stores it as a Pose at the origin.
func NewPoseFromOrientation(o Orientation) Pose {
	q := newDualQuaternion()
	q.Real = o.Quaternion()
	return q
}

// NewPose takes in a position and an orientation and returns a Pose.
func NewPose(point r3.Vector, o Orientation) Pose {
	q := newDualQuaternion()
	q.Real = o.Quaternion()
	q.setTranslation(point)
	return q
}

// Point returns the cartesian position of the pose.
func (q *dualQuaternion) Point() r3.Vector {
	// Multiplying by the combined conjugate gives a dq whose dual is the real world translation.
	cartQuat := dualquat.Mul(q.Number, dualquat.Conj(q.Number))
	return r3.Vector{X: cartQuat.Dual.Imag, Y: cartQuat.Dual.Jmag, Z: cartQuat.Dual.Kmag}
}

// Orientation returns the rotation of the pose.
func (q *dualQuaternion) Orientation() Orientation {
	o := quaternion(q.Real)
	return &o
}

// setTranslation correctly sets the translation quaternion against the rotation.
func (q *dualQuaternion) setTranslation(point r3.Vector) {
	q.Dual = quat.Number{Imag: point.X / 2, Jmag: point.Y / 2, Kmag: point.Z / 2}
	q.Dual = quat.Mul(q.Dual, q.Real)
}

func dualQuaternionFromPose(p Pose) *dualQuaternion {
	if q, ok := p.(*dualQuaternion); ok {
		return q
	}
	q := newDualQuaternion()
	q.Real = p.Orientation().Quaternion()
	q.setTranslation(p.Point())
	return q
}

// Compose treats Poses as functions applied to points and returns the pose equivalent to
// applying b first, then a, i.e. the transform of the frame of b as seen from the parent frame of a.
func Compose(a, b Pose) Pose {
	result := newDualQuaternion()
	result.Number = dualquat.Mul(dualQuaternionFromPose(a).Number, dualQuaternionFromPose(b).Number)
	if vecLen := quat.Abs(result.Real); vecLen != 1 {
		result.Real = quat.Scale(1/vecLen, result.Real)
	}
	return result
}

// PoseInverse returns the pose representing the inverse transform.
func PoseInverse(p Pose) Pose {
	result := newDualQuaternion()
	result.Number = dualquat.Inv(dualQuaternionFromPose(p).Number)
	return result
}

// PoseBetween returns the difference between two poses, that is, the pose that transforms a into b.
func PoseBetween(a, b Pose) Pose {
	return Compose(PoseInverse(a), b)
}

// PoseAlmostEqualEps returns a bool describing whether both the position and orientation of two
// poses are within epsilon of each other.
func PoseAlmostEqualEps(a, b Pose, epsilon float64) bool {
	if a.Point().Sub(b.Point()).Norm() > epsilon {
		return false
	}
	return QuaternionAlmostEqual(a.Orientation().Quaternion(), b.Orientation().Quaternion(), epsilon)
}

// PoseAlmostEqual returns a bool describing whether two poses are approximately the same.
func PoseAlmostEqual(a, b Pose) bool {
	return PoseAlmostEqualEps(a, b, 1e-6)
}
