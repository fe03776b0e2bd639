package utils

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestAngleConversions(t *testing.T) {
	test.That(t, DegToRad(180), test.ShouldAlmostEqual, math.Pi)
	test.That(t, DegToRad(-90), test.ShouldAlmostEqual, -math.Pi/2)
	test.That(t, RadToDeg(math.Pi), test.ShouldAlmostEqual, 180)
	test.That(t, RadToDeg(DegToRad(33.3)), test.ShouldAlmostEqual, 33.3)
}

func TestModAngRad(t *testing.T) {
	test.That(t, ModAngRad(0), test.ShouldAlmostEqual, 0)
	test.That(t, ModAngRad(2*math.Pi+0.1), test.ShouldAlmostEqual, 0.1)
	test.That(t, ModAngRad(-0.1), test.ShouldAlmostEqual, 2*math.Pi-0.1)
	test.That(t, ModAngRad(-5*math.Pi), test.ShouldAlmostEqual, math.Pi)
}

func TestWrapRad(t *testing.T) {
	test.That(t, WrapRad(0), test.ShouldAlmostEqual, 0)
	test.That(t, WrapRad(math.Pi), test.ShouldAlmostEqual, math.Pi)
	test.That(t, WrapRad(-math.Pi), test.ShouldAlmostEqual, math.Pi)
	test.That(t, WrapRad(3*math.Pi/2), test.ShouldAlmostEqual, -math.Pi/2)
	test.That(t, WrapRad(-3*math.Pi/2), test.ShouldAlmostEqual, math.Pi/2)
	test.That(t, WrapRad(4*math.Pi+0.25), test.ShouldAlmostEqual, 0.25)
}

func TestFloat64AlmostEqual(t *testing.T) {
	test.That(t, Float64AlmostEqual(1.0, 1.0+1e-8, 1e-6), test.ShouldBeTrue)
	test.That(t, Float64AlmostEqual(1.0, 1.1, 1e-6), test.ShouldBeFalse)
}
