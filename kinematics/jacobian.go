package kinematics

import (
	"gonum.org/v1/gonum/mat"

	"github.com/Tiennd11/ur3-robot-ik/referenceframe"
	"github.com/Tiennd11/ur3-robot-ik/spatialmath"
)

// The incremental rotations produced by a delta-sized perturbation are
// themselves on the order of delta, so the axis angle extraction here needs a
// cutoff far below the solver's angle epsilon or every angular column would
// flush to zero.
const jacobianAngleEpsilon = 1e-10

// numericalJacobian estimates the 6x6 geometric Jacobian at the configuration q
// by finite differences: each joint is perturbed by the configured delta, the
// end effector pose recomputed, and the translation difference and incremental
// axis angle rotation divided back out. Columns whose incremental rotation is
// genuinely degenerate come out as zero in the angular rows.
func (ik *Solver) numericalJacobian(q []referenceframe.Input, current *spatialmath.Pose) (*mat.Dense, error) {
	delta := ik.opts.JacobianDelta
	p0 := current.Point()
	r0 := current.Orientation()

	jac := mat.NewDense(6, referenceframe.NumJoints, nil)
	perturbed := make([]referenceframe.Input, len(q))
	for i := 0; i < referenceframe.NumJoints; i++ {
		copy(perturbed, q)
		perturbed[i].Value += delta

		pose, err := ik.model.Transform(perturbed)
		if err != nil {
			return nil, err
		}

		dp := pose.Point().Sub(p0)
		jac.Set(0, i, dp.X/delta)
		jac.Set(1, i, dp.Y/delta)
		jac.Set(2, i, dp.Z/delta)

		dw := spatialmath.OrientationBetween(r0, pose.Orientation()).R3AxisAngle(jacobianAngleEpsilon)
		jac.Set(3, i, dw.X/delta)
		jac.Set(4, i, dw.Y/delta)
		jac.Set(5, i, dw.Z/delta)
	}
	return jac, nil
}
