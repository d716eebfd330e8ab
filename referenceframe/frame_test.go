package referenceframe

import (
	"math"
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/Tiennd11/ur3-robot-ik/spatialmath"
)

func TestStaticFrame(t *testing.T) {
	_, err := NewStaticFrame("bad", nil)
	test.That(t, err, test.ShouldNotBeNil)

	sf := NewStaticFrameFromOrigin("origin", r3.Vector{X: 1, Z: 2}, &spatialmath.EulerAngles{Pitch: math.Pi / 2})
	test.That(t, sf.Name(), test.ShouldEqual, "origin")
	test.That(t, len(sf.DoF()), test.ShouldEqual, 0)

	pose, err := sf.Transform([]Input{})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, pose.Point(), test.ShouldResemble, r3.Vector{X: 1, Z: 2})

	_, err = sf.Transform([]Input{{0.5}})
	test.That(t, err, test.ShouldNotBeNil)
}

func TestRotationalFrame(t *testing.T) {
	_, err := NewRotationalFrame("bad", r3.Vector{}, Limit{-1, 1})
	test.That(t, err, test.ShouldNotBeNil)

	rf, err := NewRotationalFrame("joint", r3.Vector{Z: 1}, Limit{Min: -math.Pi, Max: math.Pi})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(rf.DoF()), test.ShouldEqual, 1)

	pose, err := rf.Transform([]Input{{math.Pi / 2}})
	test.That(t, err, test.ShouldBeNil)
	v := pose.Orientation().Mul(r3.Vector{X: 1})
	test.That(t, v.Y, test.ShouldAlmostEqual, 1, 1e-12)

	// limits are advisory: transforms stay defined outside them, and outside (-2pi, 2pi)
	pose, err = rf.Transform([]Input{{7 * math.Pi}})
	test.That(t, err, test.ShouldBeNil)
	wantPose, err := rf.Transform([]Input{{math.Pi}})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, pose.Orientation().FrobeniusDistance(wantPose.Orientation()), test.ShouldBeLessThan, 1e-9)

	_, err = rf.Transform([]Input{})
	test.That(t, err, test.ShouldNotBeNil)
	_, err = rf.Transform([]Input{{1}, {2}})
	test.That(t, err, test.ShouldNotBeNil)
}

func TestInputConversions(t *testing.T) {
	floats := []float64{0.1, -0.2, 0.3}
	inputs := FloatsToInputs(floats)
	test.That(t, len(inputs), test.ShouldEqual, 3)
	test.That(t, InputsToFloats(inputs), test.ShouldResemble, floats)
}

func TestRandomInputs(t *testing.T) {
	m := UR3Model()

	//nolint:gosec
	inputs := RandomInputs(m, rand.New(rand.NewSource(1)))
	test.That(t, len(inputs), test.ShouldEqual, NumJoints)
	test.That(t, m.AreInputsValid(inputs), test.ShouldBeTrue)

	// same seed, same draw
	//nolint:gosec
	again := RandomInputs(m, rand.New(rand.NewSource(1)))
	test.That(t, again, test.ShouldResemble, inputs)
}
