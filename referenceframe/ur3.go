package referenceframe

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/Tiennd11/ur3-robot-ik/spatialmath"
)

// UR3 kinematic parameters from the ROS ur_description ur3.urdf.xacro, meters.
const (
	ur3ShoulderHeight = 0.1519  // d1
	ur3UpperArmLength = 0.24365 // -a2
	ur3ForearmLength  = 0.21325 // -a3
	ur3Wrist1Offset   = 0.11235 // d4
	ur3Wrist2Offset   = 0.08535 // d5
	ur3Wrist3Offset   = 0.0819  // d6, flange offset past the last joint frame; not part of the joint chain

	ur3ShoulderOffset = 0.1198  // Y offset of shoulder_lift_joint
	ur3ElbowOffset    = -0.0925 // Y offset of elbow_joint

	ur3Wrist1Length = ur3Wrist1Offset - ur3ElbowOffset - ur3ShoulderOffset
	ur3Wrist2Length = ur3Wrist2Offset
)

// UR3LinkNames are the link names of the UR3 chain, base first.
var UR3LinkNames = [NumLinks]string{
	"base", "shoulder", "upper_arm", "forearm", "wrist_1", "wrist_2", "wrist_3",
}

var (
	yAxis = r3.Vector{Y: 1}
	zAxis = r3.Vector{Z: 1}
)

// DefaultUR3Limits are the published UR3 joint limits: every joint can do a full
// +-360 degrees.
func DefaultUR3Limits() [NumJoints]Limit {
	var limits [NumJoints]Limit
	for i := range limits {
		limits[i] = Limit{Min: -2 * math.Pi, Max: 2 * math.Pi}
	}
	return limits
}

// UR3Model returns the kinematic chain of a UR3 arm with the default joint
// limits.
func UR3Model() *Model {
	return UR3ModelWithLimits(DefaultUR3Limits())
}

// UR3ModelWithLimits returns the kinematic chain of a UR3 arm with the given
// per-joint limits. The joint transforms reproduce the published ur_description
// chain exactly: each joint is a fixed origin (translation plus fixed
// roll-pitch-yaw) followed by a rotation about the joint axis.
func UR3ModelWithLimits(limits [NumJoints]Limit) *Model {
	halfPi := math.Pi / 2
	joints := []struct {
		name string
		xyz  r3.Vector
		rpy  *spatialmath.EulerAngles
		axis r3.Vector
	}{
		{"shoulder_pan_joint", r3.Vector{Z: ur3ShoulderHeight}, spatialmath.NewEulerAngles(), zAxis},
		{"shoulder_lift_joint", r3.Vector{Y: ur3ShoulderOffset}, &spatialmath.EulerAngles{Pitch: halfPi}, yAxis},
		{"elbow_joint", r3.Vector{Y: ur3ElbowOffset, Z: ur3UpperArmLength}, spatialmath.NewEulerAngles(), yAxis},
		{"wrist_1_joint", r3.Vector{Z: ur3ForearmLength}, &spatialmath.EulerAngles{Pitch: halfPi}, yAxis},
		{"wrist_2_joint", r3.Vector{Y: ur3Wrist1Length}, spatialmath.NewEulerAngles(), zAxis},
		{"wrist_3_joint", r3.Vector{Z: ur3Wrist2Length}, spatialmath.NewEulerAngles(), yAxis},
	}

	frames := make([]Frame, 0, 2*len(joints))
	for i, j := range joints {
		frames = append(frames, NewStaticFrameFromOrigin(j.name+"_origin", j.xyz, j.rpy))
		rf, err := NewRotationalFrame(j.name, j.axis, limits[i])
		if err != nil {
			// axes above are constant unit vectors
			panic(err)
		}
		frames = append(frames, rf)
	}

	m, err := NewModel("ur3", UR3LinkNames, frames)
	if err != nil {
		panic(err)
	}
	return m
}
