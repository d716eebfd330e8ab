// Package referenceframe defines the frames of a serial kinematic chain and the
// math for composing them into link poses: a frame is the pose (rotation and
// translation) that goes from the current link to its parent, possibly
// parameterized by a joint value.
package referenceframe

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/Tiennd11/ur3-robot-ik/spatialmath"
)

// Input is a joint position, always in radians for revolute joints.
type Input struct {
	Value float64
}

// FloatsToInputs wraps a slice of floats in Inputs.
func FloatsToInputs(floats []float64) []Input {
	inputs := make([]Input, len(floats))
	for i, f := range floats {
		inputs[i] = Input{f}
	}
	return inputs
}

// InputsToFloats unwraps Inputs to raw floats.
func InputsToFloats(inputs []Input) []float64 {
	floats := make([]float64, len(inputs))
	for i, in := range inputs {
		floats[i] = in.Value
	}
	return floats
}

// Limit represents the limits of motion for one degree of freedom.
type Limit struct {
	Min float64
	Max float64
}

// Frame represents a single reference frame in a kinematic chain, e.g. a fixed
// link offset or a revolute joint.
type Frame interface {
	// Name returns the name of the frame.
	Name() string

	// Transform is the pose that goes FROM the current frame TO its parent,
	// given the frame's joint inputs. It is total over all real input values;
	// the only error is an input slice of the wrong length.
	Transform([]Input) (*spatialmath.Pose, error)

	// DoF returns a slice with one Limit per degree of freedom of the frame,
	// empty for frames that don't move.
	DoF() []Limit
}

// a static frame is a fixed translation and rotation from the current frame to
// its parent, e.g. a URDF joint origin.
type staticFrame struct {
	name      string
	transform *spatialmath.Pose
}

// NewStaticFrame creates a frame with a fixed pose relative to its parent.
// Pose is not allowed to be nil.
func NewStaticFrame(name string, pose *spatialmath.Pose) (Frame, error) {
	if pose == nil {
		return nil, errors.New("pose is not allowed to be nil")
	}
	return &staticFrame{name, pose}, nil
}

// NewStaticFrameFromOrigin creates a static frame from a URDF-style origin: a
// translation plus a fixed roll-pitch-yaw orientation.
func NewStaticFrameFromOrigin(name string, xyz r3.Vector, rpy *spatialmath.EulerAngles) Frame {
	return &staticFrame{name, spatialmath.NewPose(xyz, rpy.RotationMatrix())}
}

// Name returns the name of the frame.
func (sf *staticFrame) Name() string {
	return sf.name
}

// Transform returns the fixed pose associated with this frame.
func (sf *staticFrame) Transform(input []Input) (*spatialmath.Pose, error) {
	if len(input) != 0 {
		return nil, fmt.Errorf("given input length %d does not match frame DoF 0", len(input))
	}
	return sf.transform, nil
}

// DoF is always empty for a static frame.
func (sf *staticFrame) DoF() []Limit {
	return []Limit{}
}

// a rotational frame is a revolute joint: a right-handed rotation about a fixed
// axis by the single input value.
type rotationalFrame struct {
	name    string
	rotAxis r3.Vector
	limit   []Limit
}

// NewRotationalFrame creates a frame representing a standard revolute joint
// with 1 DoF. The limit is advisory only; Transform stays total outside it.
func NewRotationalFrame(name string, axis r3.Vector, limit Limit) (Frame, error) {
	if axis.Norm() == 0 {
		return nil, errors.New("cannot use zero vector as rotation axis")
	}
	return &rotationalFrame{
		name:    name,
		rotAxis: axis.Normalize(),
		limit:   []Limit{limit},
	}, nil
}

// Transform returns the pose of the rotation about the frame's axis by the
// input value. Defined for any real input, including values outside the joint
// limit and outside (-2pi, 2pi).
func (rf *rotationalFrame) Transform(input []Input) (*spatialmath.Pose, error) {
	if len(input) != 1 {
		return nil, fmt.Errorf("given input length %d does not match frame DoF 1", len(input))
	}
	return spatialmath.NewPoseFromOrientation(
		spatialmath.NewRotationMatrixAboutAxis(rf.rotAxis, input[0].Value),
	), nil
}

// DoF returns the single limit of the revolute joint.
func (rf *rotationalFrame) DoF() []Limit {
	return rf.limit
}

// Name returns the name of the frame.
func (rf *rotationalFrame) Name() string {
	return rf.name
}

// RandomInputs produces a set of inputs for the model drawn uniformly from each
// joint's limit range. Pass a seeded rand to make the draw deterministic.
func RandomInputs(m *Model, rSeed *rand.Rand) []Input {
	if rSeed == nil {
		//nolint:gosec
		rSeed = rand.New(rand.NewSource(1))
	}
	dof := m.DoF()
	pos := make([]Input, 0, len(dof))
	for _, lim := range dof {
		l, u := lim.Min, lim.Max

		// Default to [-999,999] as range if limits are infinite
		if l == math.Inf(-1) {
			l = -999
		}
		if u == math.Inf(1) {
			u = 999
		}

		jRange := math.Abs(u - l)
		pos = append(pos, Input{rSeed.Float64()*jRange + l})
	}
	return pos
}
