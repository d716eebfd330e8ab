// Package spatialmath defines the spatial math used to express positions and
// orientations of rigid bodies in 3D space.
package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// defaultAngleEpsilon is the rotation angle below which an orientation difference
// is treated as no rotation at all when extracting an axis angle. Guards the
// 1/(2 sin(angle)) factor against blowing up near zero.
const defaultAngleEpsilon = 1e-6

// RotationMatrix is a 3x3 orthonormal rotation matrix in row major order.
type RotationMatrix struct {
	mat [9]float64
}

// NewRotationMatrix constructs a rotation matrix directly from its nine row major
// entries. The caller is responsible for the entries actually forming a rotation.
func NewRotationMatrix(m [9]float64) *RotationMatrix {
	return &RotationMatrix{m}
}

// NewZeroRotationMatrix returns the identity, signifying no rotation.
func NewZeroRotationMatrix() *RotationMatrix {
	return &RotationMatrix{[9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}}
}

// NewRotationMatrixAboutAxis returns the right-handed rotation by theta radians
// about the given axis. The axis need not be pre-normalized.
func NewRotationMatrixAboutAxis(axis r3.Vector, theta float64) *RotationMatrix {
	aa := &R4AA{Theta: theta, RX: axis.X, RY: axis.Y, RZ: axis.Z}
	return QuatToRotationMatrix(aa.ToQuat())
}

// QuatToRotationMatrix converts a unit quaternion to a rotation matrix.
func QuatToRotationMatrix(q quat.Number) *RotationMatrix {
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	return &RotationMatrix{[9]float64{
		1 - 2*y*y - 2*z*z, 2*x*y - 2*z*w, 2*x*z + 2*y*w,
		2*x*y + 2*z*w, 1 - 2*x*x - 2*z*z, 2*y*z - 2*x*w,
		2*x*z - 2*y*w, 2*y*z + 2*x*w, 1 - 2*x*x - 2*y*y,
	}}
}

// At returns the entry at the given row and column.
func (rm *RotationMatrix) At(row, col int) float64 {
	return rm.mat[3*row+col]
}

// Row returns the given row as a vector.
func (rm *RotationMatrix) Row(row int) r3.Vector {
	return r3.Vector{X: rm.mat[3*row], Y: rm.mat[3*row+1], Z: rm.mat[3*row+2]}
}

// Trace returns the sum of the diagonal entries.
func (rm *RotationMatrix) Trace() float64 {
	return rm.mat[0] + rm.mat[4] + rm.mat[8]
}

// Mul applies the rotation to a vector.
func (rm *RotationMatrix) Mul(v r3.Vector) r3.Vector {
	return r3.Vector{
		X: rm.mat[0]*v.X + rm.mat[1]*v.Y + rm.mat[2]*v.Z,
		Y: rm.mat[3]*v.X + rm.mat[4]*v.Y + rm.mat[5]*v.Z,
		Z: rm.mat[6]*v.X + rm.mat[7]*v.Y + rm.mat[8]*v.Z,
	}
}

// MatMul returns the composition rm * other, i.e. other applied first.
func (rm *RotationMatrix) MatMul(other *RotationMatrix) *RotationMatrix {
	res := &RotationMatrix{}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			sum := 0.0
			for k := 0; k < 3; k++ {
				sum += rm.mat[3*r+k] * other.mat[3*k+c]
			}
			res.mat[3*r+c] = sum
		}
	}
	return res
}

// Transpose returns the transpose, which for a rotation is also its inverse.
func (rm *RotationMatrix) Transpose() *RotationMatrix {
	m := rm.mat
	return &RotationMatrix{[9]float64{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}}
}

// OrthonormalityError returns the largest absolute deviation of R^T * R from the
// identity, a measure of how far accumulated floating point error has drifted the
// matrix from being a true rotation.
func (rm *RotationMatrix) OrthonormalityError() float64 {
	prod := rm.Transpose().MatMul(rm)
	worst := 0.0
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			want := 0.0
			if r == c {
				want = 1.0
			}
			if dev := math.Abs(prod.At(r, c) - want); dev > worst {
				worst = dev
			}
		}
	}
	return worst
}

// FrobeniusDistance returns the Frobenius norm of the entrywise difference
// between two rotation matrices.
func (rm *RotationMatrix) FrobeniusDistance(other *RotationMatrix) float64 {
	sum := 0.0
	for i := range rm.mat {
		d := rm.mat[i] - other.mat[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// OrientationBetween returns the rotation that takes the orientation `from` onto
// the orientation `to`.
func OrientationBetween(from, to *RotationMatrix) *RotationMatrix {
	return to.MatMul(from.Transpose())
}

// R3AxisAngle extracts the R3 axis angle of the rotation: a vector along the
// rotation axis whose norm is the rotation angle. The angle comes from the trace,
// clamped into acos's domain, and the axis from the skew-symmetric part of the
// matrix. Rotations with angle below epsilon return the zero vector rather than
// dividing by a vanishing sine.
func (rm *RotationMatrix) R3AxisAngle(epsilon float64) r3.Vector {
	cos := (rm.Trace() - 1) / 2
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	angle := math.Acos(cos)
	if angle < epsilon {
		return r3.Vector{}
	}
	scale := angle / (2 * math.Sin(angle))
	return r3.Vector{
		X: scale * (rm.At(2, 1) - rm.At(1, 2)),
		Y: scale * (rm.At(0, 2) - rm.At(2, 0)),
		Z: scale * (rm.At(1, 0) - rm.At(0, 1)),
	}
}
