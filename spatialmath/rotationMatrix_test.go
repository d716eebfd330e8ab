package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestRotationAboutPrincipalAxes(t *testing.T) {
	// 90 degrees about Z takes X onto Y
	rz := NewRotationMatrixAboutAxis(r3.Vector{Z: 1}, math.Pi/2)
	v := rz.Mul(r3.Vector{X: 1})
	test.That(t, v.X, test.ShouldAlmostEqual, 0, 1e-12)
	test.That(t, v.Y, test.ShouldAlmostEqual, 1, 1e-12)
	test.That(t, v.Z, test.ShouldAlmostEqual, 0, 1e-12)

	// 90 degrees about Y takes Z onto X
	ry := NewRotationMatrixAboutAxis(r3.Vector{Y: 1}, math.Pi/2)
	v = ry.Mul(r3.Vector{Z: 1})
	test.That(t, v.X, test.ShouldAlmostEqual, 1, 1e-12)
	test.That(t, v.Y, test.ShouldAlmostEqual, 0, 1e-12)
	test.That(t, v.Z, test.ShouldAlmostEqual, 0, 1e-12)

	// axes need not be pre-normalized
	rz2 := NewRotationMatrixAboutAxis(r3.Vector{Z: 10}, math.Pi/2)
	test.That(t, rz.FrobeniusDistance(rz2), test.ShouldAlmostEqual, 0, 1e-12)
}

func TestMatMulTranspose(t *testing.T) {
	ra := NewRotationMatrixAboutAxis(r3.Vector{X: 1, Y: 0.5, Z: -2}, 1.1)
	rb := NewRotationMatrixAboutAxis(r3.Vector{X: -0.3, Y: 1, Z: 0.4}, -2.7)

	composed := ra.MatMul(rb)
	test.That(t, composed.OrthonormalityError(), test.ShouldBeLessThan, 1e-12)

	// transpose inverts
	identity := composed.MatMul(composed.Transpose())
	test.That(t, identity.FrobeniusDistance(NewZeroRotationMatrix()), test.ShouldBeLessThan, 1e-12)
}

func TestR3AxisAngleExtraction(t *testing.T) {
	axis := r3.Vector{X: 1, Y: 2, Z: -0.5}.Normalize()
	theta := 0.8
	rm := NewRotationMatrixAboutAxis(axis, theta)

	aa := rm.R3AxisAngle(defaultAngleEpsilon)
	test.That(t, aa.Norm(), test.ShouldAlmostEqual, theta, 1e-9)
	test.That(t, aa.Normalize().Dot(axis), test.ShouldAlmostEqual, 1, 1e-9)
}

func TestR3AxisAngleDegenerate(t *testing.T) {
	// identity rotation extracts cleanly to zero, no NaNs
	aa := NewZeroRotationMatrix().R3AxisAngle(defaultAngleEpsilon)
	test.That(t, aa, test.ShouldResemble, r3.Vector{})

	// a rotation smaller than epsilon is treated as zero
	tiny := NewRotationMatrixAboutAxis(r3.Vector{Z: 1}, 1e-9)
	aa = tiny.R3AxisAngle(defaultAngleEpsilon)
	test.That(t, aa, test.ShouldResemble, r3.Vector{})

	// accumulated floating point error can push the trace of a near-identity
	// rotation past 3; the acos input must be clamped rather than go NaN
	r := NewRotationMatrixAboutAxis(r3.Vector{X: 1}, 2*math.Pi)
	aa = r.R3AxisAngle(defaultAngleEpsilon)
	test.That(t, math.IsNaN(aa.X), test.ShouldBeFalse)
	test.That(t, math.IsNaN(aa.Y), test.ShouldBeFalse)
	test.That(t, math.IsNaN(aa.Z), test.ShouldBeFalse)
}

func TestOrientationBetween(t *testing.T) {
	ra := NewRotationMatrixAboutAxis(r3.Vector{Z: 1}, 0.3)
	rb := NewRotationMatrixAboutAxis(r3.Vector{Z: 1}, 1.0)

	// the rotation between two Z rotations is the Z rotation by the difference
	between := OrientationBetween(ra, rb)
	aa := between.R3AxisAngle(defaultAngleEpsilon)
	test.That(t, aa.X, test.ShouldAlmostEqual, 0, 1e-12)
	test.That(t, aa.Y, test.ShouldAlmostEqual, 0, 1e-12)
	test.That(t, aa.Z, test.ShouldAlmostEqual, 0.7, 1e-9)

	// a rotation from itself is the identity
	self := OrientationBetween(ra, ra)
	test.That(t, self.FrobeniusDistance(NewZeroRotationMatrix()), test.ShouldBeLessThan, 1e-12)
}

func TestEulerAngles(t *testing.T) {
	// pure pitch is a Y rotation
	ea := &EulerAngles{Pitch: math.Pi / 2}
	ry := NewRotationMatrixAboutAxis(r3.Vector{Y: 1}, math.Pi/2)
	test.That(t, ea.RotationMatrix().FrobeniusDistance(ry), test.ShouldBeLessThan, 1e-12)

	// URDF convention: yaw, then pitch, then roll, extrinsic
	ea = &EulerAngles{Roll: 0.2, Pitch: -0.4, Yaw: 1.3}
	want := NewRotationMatrixAboutAxis(r3.Vector{Z: 1}, 1.3).
		MatMul(NewRotationMatrixAboutAxis(r3.Vector{Y: 1}, -0.4)).
		MatMul(NewRotationMatrixAboutAxis(r3.Vector{X: 1}, 0.2))
	test.That(t, ea.RotationMatrix().FrobeniusDistance(want), test.ShouldBeLessThan, 1e-12)

	test.That(t, NewEulerAngles().RotationMatrix().FrobeniusDistance(NewZeroRotationMatrix()), test.ShouldBeLessThan, 1e-12)
}

func TestR4AA(t *testing.T) {
	r4 := &R4AA{Theta: 1.5, RX: 0, RY: 0, RZ: 2}
	r4.Normalize()
	test.That(t, r4.RZ, test.ShouldAlmostEqual, 1)

	r3v := r4.ToR3()
	test.That(t, r3v.Z, test.ShouldAlmostEqual, 1.5)

	back := R3ToR4(r3v)
	test.That(t, back.Theta, test.ShouldAlmostEqual, 1.5, 1e-12)
	test.That(t, back.RZ, test.ShouldAlmostEqual, 1, 1e-12)

	test.That(t, R3ToR4(r3.Vector{}).Theta, test.ShouldEqual, 0)
}
