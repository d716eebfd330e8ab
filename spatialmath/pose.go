package spatialmath

import (
	"github.com/golang/geo/r3"
)

// Pose represents a rigid transform: a rotation paired with a point in 3D space.
// Poses are immutable once constructed and safe to share by read.
type Pose struct {
	orientation *RotationMatrix
	point       r3.Vector
}

// NewZeroPose returns a pose at the origin with no rotation.
func NewZeroPose() *Pose {
	return &Pose{orientation: NewZeroRotationMatrix()}
}

// NewPose creates a pose from a point and an orientation.
func NewPose(point r3.Vector, orientation *RotationMatrix) *Pose {
	return &Pose{orientation: orientation, point: point}
}

// NewPoseFromPoint creates a pose from a point with no rotation.
func NewPoseFromPoint(point r3.Vector) *Pose {
	return &Pose{orientation: NewZeroRotationMatrix(), point: point}
}

// NewPoseFromOrientation creates a pose at the origin with the given rotation.
func NewPoseFromOrientation(orientation *RotationMatrix) *Pose {
	return &Pose{orientation: orientation}
}

// Point returns the translation component of the pose.
func (p *Pose) Point() r3.Vector {
	return p.point
}

// Orientation returns the rotation component of the pose.
func (p *Pose) Orientation() *RotationMatrix {
	return p.orientation
}

// Compose returns the pose of b within the frame of a, i.e. a applied first.
// Because both rotation factors are orthonormal, so is the composed rotation.
func Compose(a, b *Pose) *Pose {
	return &Pose{
		orientation: a.orientation.MatMul(b.orientation),
		point:       a.point.Add(a.orientation.Mul(b.point)),
	}
}

// PoseDelta returns the difference between two poses as a six element slice:
// the translation difference followed by the R3 axis angle taking a's
// orientation onto b's.
func PoseDelta(a, b *Pose) []float64 {
	dt := b.point.Sub(a.point)
	dw := OrientationBetween(a.orientation, b.orientation).R3AxisAngle(defaultAngleEpsilon)
	return []float64{dt.X, dt.Y, dt.Z, dw.X, dw.Y, dw.Z}
}

// PoseAlmostCoincident checks whether two poses are within the given tolerances
// of one another: Euclidean distance for the points, Frobenius distance for the
// rotations.
func PoseAlmostCoincident(a, b *Pose, posTol, rotTol float64) bool {
	return a.point.Sub(b.point).Norm() < posTol &&
		a.orientation.FrobeniusDistance(b.orientation) < rotTol
}
