package referenceframe

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/Tiennd11/ur3-robot-ik/spatialmath"
)

// NumJoints is the number of revolute joints in the arm class this package
// models; NumLinks counts those joints' child links plus the fixed base.
const (
	NumJoints = 6
	NumLinks  = NumJoints + 1
)

// LinkPose pairs a link name with the cumulative pose of that link in the base
// frame for one set of joint inputs.
type LinkPose struct {
	Name string
	Pose *spatialmath.Pose
}

// LinkPoseSet holds the poses of all links in chain order, base first, end
// effector last. It is a fresh computation result owned by the caller; nothing
// in this package retains or mutates it after return.
type LinkPoseSet [NumLinks]LinkPose

// EndEffector returns the pose of the last link in the chain.
func (s *LinkPoseSet) EndEffector() *spatialmath.Pose {
	return s[NumLinks-1].Pose
}

// Model represents a serial kinematic chain as an ordered list of frames from
// base to end effector. Each revolute joint contributes a static origin frame
// followed by a rotational frame. The geometry is constant after construction,
// so a Model is safe for unsynchronized shared reads.
type Model struct {
	name string
	// ordTransforms is the list of transforms ordered from base to end effector
	ordTransforms []Frame
	linkNames     [NumLinks]string
	limits        []Limit
}

// NewModel constructs a serial chain model from ordered frames. The chain must
// contain exactly NumJoints single-DoF frames; linkNames names the base link
// followed by each joint's child link in chain order.
func NewModel(name string, linkNames [NumLinks]string, ordTransforms []Frame) (*Model, error) {
	m := &Model{name: name, ordTransforms: ordTransforms, linkNames: linkNames}
	for _, transform := range ordTransforms {
		m.limits = append(m.limits, transform.DoF()...)
	}
	if len(m.limits) != NumJoints {
		return nil, errors.Errorf("serial chain must have exactly %d joints, got %d", NumJoints, len(m.limits))
	}
	return m, nil
}

// Name returns the name of the model.
func (m *Model) Name() string {
	return m.name
}

// DoF returns the motion limits of each joint in chain order.
func (m *Model) DoF() []Limit {
	return m.limits
}

// LinkNames returns the names of all links, base first, in chain order.
func (m *Model) LinkNames() [NumLinks]string {
	return m.linkNames
}

// Transform computes the pose of the end effector in the base frame for the
// given joint inputs. Total over all real inputs; errors only on a wrong input
// count.
func (m *Model) Transform(inputs []Input) (*spatialmath.Pose, error) {
	poses, err := m.LinkPoses(inputs)
	if err != nil {
		return nil, err
	}
	return poses.EndEffector(), nil
}

// LinkPoses computes the cumulative pose of every link in the base frame for
// the given joint inputs, base first. The base link is always the identity
// pose. The result is recomputed fresh on every call and never cached.
func (m *Model) LinkPoses(inputs []Input) (*LinkPoseSet, error) {
	if len(inputs) != NumJoints {
		return nil, errors.Errorf("given input length %d does not match model DoF %d", len(inputs), NumJoints)
	}

	var set LinkPoseSet
	set[0] = LinkPose{Name: m.linkNames[0], Pose: spatialmath.NewZeroPose()}

	composed := spatialmath.NewZeroPose()
	posIdx := 0
	linkIdx := 1
	for _, transform := range m.ordTransforms {
		dof := len(transform.DoF()) + posIdx
		input := inputs[posIdx:dof]
		posIdx = dof

		pose, err := transform.Transform(input)
		if err != nil {
			return nil, err
		}
		composed = spatialmath.Compose(composed, pose)

		// each joint closes out one link of the chain
		if len(transform.DoF()) > 0 {
			set[linkIdx] = LinkPose{Name: m.linkNames[linkIdx], Pose: composed}
			linkIdx++
		}
	}
	return &set, nil
}

// JointPositions returns the translation component of every link pose in chain
// order: the 3D position of the base and of each joint.
func (m *Model) JointPositions(inputs []Input) ([NumLinks]r3.Vector, error) {
	var positions [NumLinks]r3.Vector
	poses, err := m.LinkPoses(inputs)
	if err != nil {
		return positions, err
	}
	for i, lp := range poses {
		positions[i] = lp.Pose.Point()
	}
	return positions, nil
}

// Normalize maps each input into (-pi, pi] by repeated 2pi shifts. Used for
// comparing and displaying configurations; solving itself always works on the
// unnormalized values.
func (m *Model) Normalize(inputs []Input) []Input {
	normalized := make([]Input, len(inputs))
	for i, in := range inputs {
		v := in.Value
		for v > math.Pi {
			v -= 2 * math.Pi
		}
		for v <= -math.Pi {
			v += 2 * math.Pi
		}
		normalized[i] = Input{v}
	}
	return normalized
}

// AreInputsValid checks whether the given inputs all lie within their joints'
// limits. This is an opt-in filter for callers; neither forward nor inverse
// kinematics enforces it.
func (m *Model) AreInputsValid(inputs []Input) bool {
	if len(inputs) != len(m.limits) {
		return false
	}
	for i, in := range inputs {
		if in.Value < m.limits[i].Min || in.Value > m.limits[i].Max {
			return false
		}
	}
	return true
}
