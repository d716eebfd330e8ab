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
	test.That(t, RadToDeg(DegToRad(123.4)), test.ShouldAlmostEqual, 123.4, 1e-12)
}

func TestFloat64AlmostEqual(t *testing.T) {
	test.That(t, Float64AlmostEqual(1.0, 1.0+1e-8, 1e-6), test.ShouldBeTrue)
	test.That(t, Float64AlmostEqual(1.0, 1.1, 1e-6), test.ShouldBeFalse)
}

func TestSpaceDelimitedStringToFloatSlice(t *testing.T) {
	v, err := SpaceDelimitedStringToFloatSlice("0 0.1198 0")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, v, test.ShouldResemble, []float64{0, 0.1198, 0})

	v, err = SpaceDelimitedStringToFloatSlice("  1.5   -2  ")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, v, test.ShouldResemble, []float64{1.5, -2})

	v, err = SpaceDelimitedStringToFloatSlice("")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, v, test.ShouldBeNil)

	_, err = SpaceDelimitedStringToFloatSlice("a 1 b")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `unparseable number "a"`)
}
