package referenceframe

import (
	"math"
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/Tiennd11/ur3-robot-ik/spatialmath"
)

func TestHomePosition(t *testing.T) {
	m := UR3Model()
	poses, err := m.LinkPoses(FloatsToInputs([]float64{0, 0, 0, 0, 0, 0}))
	test.That(t, err, test.ShouldBeNil)

	// link translations at the all-zero configuration, from the published UR3 geometry
	wantPositions := [NumLinks]r3.Vector{
		{X: 0, Y: 0, Z: 0},                  // base
		{X: 0, Y: 0, Z: 0.1519},             // shoulder
		{X: 0, Y: 0.1198, Z: 0.1519},        // upper_arm
		{X: 0.24365, Y: 0.0273, Z: 0.1519},  // forearm
		{X: 0.4569, Y: 0.0273, Z: 0.1519},   // wrist_1
		{X: 0.4569, Y: 0.11235, Z: 0.1519},  // wrist_2
		{X: 0.4569, Y: 0.11235, Z: 0.06655}, // wrist_3
	}
	for i, lp := range poses {
		test.That(t, lp.Name, test.ShouldEqual, UR3LinkNames[i])
		pt := lp.Pose.Point()
		test.That(t, pt.X, test.ShouldAlmostEqual, wantPositions[i].X, 1e-9)
		test.That(t, pt.Y, test.ShouldAlmostEqual, wantPositions[i].Y, 1e-9)
		test.That(t, pt.Z, test.ShouldAlmostEqual, wantPositions[i].Z, 1e-9)
	}

	// the home end effector orientation is a 180 degree rotation about Y
	wantOrient := spatialmath.NewRotationMatrixAboutAxis(r3.Vector{Y: 1}, math.Pi)
	test.That(t, poses.EndEffector().Orientation().FrobeniusDistance(wantOrient), test.ShouldBeLessThan, 1e-9)
}

func TestTransformTotalAndDeterministic(t *testing.T) {
	m := UR3Model()
	cases := [][]float64{
		{0.5, -0.8, 1.2, -0.5, -0.9, 0.3},
		{math.Pi, -math.Pi / 2, math.Pi / 2, 0, math.Pi / 2, 0},
		// well-defined far outside +-2pi
		{17.3, -9.1, 25.0, -13.7, 8.8, -30.2},
	}
	for _, c := range cases {
		inputs := FloatsToInputs(c)
		poses, err := m.LinkPoses(inputs)
		test.That(t, err, test.ShouldBeNil)
		for _, lp := range poses {
			test.That(t, lp.Pose.Orientation().OrthonormalityError(), test.ShouldBeLessThan, 1e-9)
		}

		// repeated calls return the same result, freshly computed
		again, err := m.LinkPoses(inputs)
		test.That(t, err, test.ShouldBeNil)
		for i := range poses {
			test.That(t, spatialmath.PoseAlmostCoincident(poses[i].Pose, again[i].Pose, 1e-15, 1e-15), test.ShouldBeTrue)
		}
	}
}

func TestTransformWrongInputCount(t *testing.T) {
	m := UR3Model()
	_, err := m.Transform(FloatsToInputs([]float64{0, 0, 0}))
	test.That(t, err, test.ShouldNotBeNil)
	_, err = m.LinkPoses(FloatsToInputs(make([]float64, 7)))
	test.That(t, err, test.ShouldNotBeNil)
	_, err = m.JointPositions(nil)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestJointPositions(t *testing.T) {
	m := UR3Model()
	//nolint:gosec
	inputs := RandomInputs(m, rand.New(rand.NewSource(5)))

	positions, err := m.JointPositions(inputs)
	test.That(t, err, test.ShouldBeNil)
	poses, err := m.LinkPoses(inputs)
	test.That(t, err, test.ShouldBeNil)
	for i := range positions {
		test.That(t, positions[i], test.ShouldResemble, poses[i].Pose.Point())
	}
	test.That(t, positions[0], test.ShouldResemble, r3.Vector{})
}

func TestNormalize(t *testing.T) {
	m := UR3Model()
	normalized := m.Normalize(FloatsToInputs([]float64{
		3 * math.Pi, -3 * math.Pi, math.Pi, -math.Pi, 0.5, -2 * math.Pi,
	}))
	want := []float64{math.Pi, math.Pi, math.Pi, math.Pi, 0.5, 0}
	for i, in := range normalized {
		test.That(t, in.Value, test.ShouldAlmostEqual, want[i], 1e-12)
		test.That(t, in.Value, test.ShouldBeLessThanOrEqualTo, math.Pi)
		test.That(t, in.Value, test.ShouldBeGreaterThan, -math.Pi)
	}
}

func TestAreInputsValid(t *testing.T) {
	var limits [NumJoints]Limit
	for i := range limits {
		limits[i] = Limit{Min: -1, Max: 1}
	}
	m := UR3ModelWithLimits(limits)

	test.That(t, m.AreInputsValid(FloatsToInputs([]float64{0, 0.5, -0.5, 1, -1, 0})), test.ShouldBeTrue)
	test.That(t, m.AreInputsValid(FloatsToInputs([]float64{0, 1.5, 0, 0, 0, 0})), test.ShouldBeFalse)
	test.That(t, m.AreInputsValid(FloatsToInputs([]float64{0, 0})), test.ShouldBeFalse)

	// limits never gate the forward kinematics itself
	outside := FloatsToInputs([]float64{2, 2, 2, 2, 2, 2})
	test.That(t, m.AreInputsValid(outside), test.ShouldBeFalse)
	fromLimited, err := m.Transform(outside)
	test.That(t, err, test.ShouldBeNil)
	fromDefault, err := UR3Model().Transform(outside)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, spatialmath.PoseAlmostCoincident(fromLimited, fromDefault, 1e-15, 1e-15), test.ShouldBeTrue)
}

func TestNewModelValidation(t *testing.T) {
	rf, err := NewRotationalFrame("only_joint", r3.Vector{Z: 1}, Limit{-1, 1})
	test.That(t, err, test.ShouldBeNil)
	_, err = NewModel("partial", UR3LinkNames, []Frame{rf})
	test.That(t, err, test.ShouldNotBeNil)
}
