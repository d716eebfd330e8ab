package spatialmath

import (
	"gonum.org/v1/gonum/num/quat"
)

// EulerAngles are three angles used to represent the rotation of an object in
// 3D Euclidean space, applied in the URDF convention: yaw about Z, then pitch
// about Y, then roll about X, all extrinsic.
type EulerAngles struct {
	Roll  float64 // rotation about the X axis
	Pitch float64 // rotation about the Y axis
	Yaw   float64 // rotation about the Z axis
}

// NewEulerAngles creates an EulerAngles signifying no rotation.
func NewEulerAngles() *EulerAngles {
	return &EulerAngles{Roll: 0, Pitch: 0, Yaw: 0}
}

// Quaternion returns the orientation in quaternion representation,
// composed as qZ(yaw) * qY(pitch) * qX(roll).
func (ea *EulerAngles) Quaternion() quat.Number {
	qx := (&R4AA{Theta: ea.Roll, RX: 1, RY: 0, RZ: 0}).ToQuat()
	qy := (&R4AA{Theta: ea.Pitch, RX: 0, RY: 1, RZ: 0}).ToQuat()
	qz := (&R4AA{Theta: ea.Yaw, RX: 0, RY: 0, RZ: 1}).ToQuat()
	return quat.Mul(qz, quat.Mul(qy, qx))
}

// RotationMatrix returns the orientation in rotation matrix representation.
func (ea *EulerAngles) RotationMatrix() *RotationMatrix {
	return QuatToRotationMatrix(ea.Quaternion())
}
