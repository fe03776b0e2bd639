package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"
)

var (
	// 90 degrees about Y
	q90y = quat.Number{Real: math.Cos(math.Pi / 4), Jmag: math.Sin(math.Pi / 4)}
	// 45 degrees about X
	q45x = quat.Number{Real: math.Cos(math.Pi / 8), Imag: math.Sin(math.Pi / 8)}
)

func TestZeroPose(t *testing.T) {
	zero := NewZeroPose()
	test.That(t, zero.Point(), test.ShouldResemble, r3.Vector{})
	test.That(t, zero.Orientation().Quaternion(), test.ShouldResemble, quat.Number{Real: 1})
}

func TestPosePointRoundTrip(t *testing.T) {
	pt := r3.Vector{X: 1, Y: -2, Z: 3}
	p := NewPose(pt, NewOrientationFromQuaternion(q90y))
	test.That(t, p.Point().X, test.ShouldAlmostEqual, pt.X)
	test.That(t, p.Point().Y, test.ShouldAlmostEqual, pt.Y)
	test.That(t, p.Point().Z, test.ShouldAlmostEqual, pt.Z)
	test.That(t, QuaternionAlmostEqual(p.Orientation().Quaternion(), q90y, 1e-8), test.ShouldBeTrue)
}

func TestCompose(t *testing.T) {
	// rotating 90 degrees about Y then translating along the new tool Z should move along base X
	rot := NewPoseFromOrientation(NewOrientationFromQuaternion(q90y))
	trans := NewPoseFromPoint(r3.Vector{Z: 0.5})
	p := Compose(rot, trans)
	test.That(t, p.Point().X, test.ShouldAlmostEqual, 0.5)
	test.That(t, p.Point().Y, test.ShouldAlmostEqual, 0)
	test.That(t, p.Point().Z, test.ShouldAlmostEqual, 0)

	// composing a pose with its inverse should be the identity
	ident := Compose(p, PoseInverse(p))
	test.That(t, PoseAlmostEqual(ident, NewZeroPose()), test.ShouldBeTrue)
}

func TestPoseBetween(t *testing.T) {
	a := NewPose(r3.Vector{X: 1}, NewOrientationFromQuaternion(q45x))
	b := NewPose(r3.Vector{X: 1, Y: 2}, NewOrientationFromQuaternion(q90y))
	delta := PoseBetween(a, b)
	test.That(t, PoseAlmostEqual(Compose(a, delta), b), test.ShouldBeTrue)
}

func TestRotationMatrixConversions(t *testing.T) {
	rm := QuatToRotationMatrix(q90y)

	// expected matrix for a 90 degree rotation about Y
	expected := []float64{
		0, 0, 1,
		0, 1, 0,
		-1, 0, 0,
	}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			test.That(t, rm.At(r, c), test.ShouldAlmostEqual, expected[3*r+c])
		}
	}

	// and back again
	test.That(t, QuaternionAlmostEqual(rm.Quaternion(), q90y, 1e-8), test.ShouldBeTrue)

	rm2, err := NewRotationMatrix(expected)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, QuaternionAlmostEqual(rm2.Quaternion(), q90y, 1e-8), test.ShouldBeTrue)

	_, err = NewRotationMatrix(expected[:6])
	test.That(t, err, test.ShouldNotBeNil)
}

func TestRotationMatrixMul(t *testing.T) {
	rm := QuatToRotationMatrix(q90y)
	v := rm.Mul(r3.Vector{Z: 1})
	test.That(t, v.X, test.ShouldAlmostEqual, 1)
	test.That(t, v.Y, test.ShouldAlmostEqual, 0)
	test.That(t, v.Z, test.ShouldAlmostEqual, 0)
	test.That(t, v.X, test.ShouldAlmostEqual, rm.Col(2).X)

	// rows of a 90 degree Y rotation
	test.That(t, rm.Row(0).Z, test.ShouldAlmostEqual, 1)
	test.That(t, rm.Row(1).Y, test.ShouldAlmostEqual, 1)
	test.That(t, rm.Row(2).X, test.ShouldAlmostEqual, -1)
}

func TestOrientationOperations(t *testing.T) {
	o1 := NewOrientationFromQuaternion(q45x)
	o2 := NewOrientationFromQuaternion(q90y)

	// a quaternion and its flip are the same orientation
	test.That(t, OrientationAlmostEqual(o1, NewOrientationFromQuaternion(Flip(q45x))), test.ShouldBeTrue)
	test.That(t, OrientationAlmostEqual(o1, o2), test.ShouldBeFalse)

	// applying the difference to the first orientation recovers the second
	diff := OrientationBetween(o1, o2)
	recovered := NewOrientationFromQuaternion(quat.Mul(diff.Quaternion(), o1.Quaternion()))
	test.That(t, OrientationAlmostEqual(recovered, o2), test.ShouldBeTrue)

	// an orientation composed with its inverse is no rotation
	inv := OrientationInverse(o1)
	ident := NewOrientationFromQuaternion(quat.Mul(inv.Quaternion(), o1.Quaternion()))
	test.That(t, OrientationAlmostEqual(ident, NewZeroOrientation()), test.ShouldBeTrue)
}

func TestQuaternionAlmostEqual(t *testing.T) {
	test.That(t, QuaternionAlmostEqual(q45x, Flip(q45x), 1e-8), test.ShouldBeTrue)
	test.That(t, QuaternionAlmostEqual(q45x, q90y, 1e-8), test.ShouldBeFalse)
}

func TestAxisAngleConversions(t *testing.T) {
	aa := QuatToR4AA(q90y)
	test.That(t, aa.Theta, test.ShouldAlmostEqual, math.Pi/2)
	test.That(t, aa.RY, test.ShouldAlmostEqual, 1)
	test.That(t, QuaternionAlmostEqual(aa.ToQuat(), q90y, 1e-8), test.ShouldBeTrue)

	r3aa := aa.ToR3()
	test.That(t, r3aa.Y, test.ShouldAlmostEqual, math.Pi/2)
}
