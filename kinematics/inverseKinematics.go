// Package kinematics implements a multi-start numerical inverse kinematics
// solver for serial kinematic chains, using forward kinematics as its only
// oracle: no closed-form inverse is ever computed.
package kinematics

import (
	"github.com/pkg/errors"

	"github.com/Tiennd11/ur3-robot-ik/referenceframe"
	"github.com/Tiennd11/ur3-robot-ik/spatialmath"
)

var errWrongDoF = errors.Errorf("model must have exactly %d degrees of freedom", referenceframe.NumJoints)

// SolverOptions holds the tuning parameters of the solver. The defaults are
// tuned empirically for UR3-class geometry; treat them as a matched set when
// changing any one of them.
type SolverOptions struct {
	// MaxIterations caps the damped Gauss-Newton iterations of one local solve.
	MaxIterations int
	// PositionTolerance is the convergence threshold on the position error norm
	// in meters. Orientation converges at five times this value, in radians.
	PositionTolerance float64
	// Damping is the Levenberg-Marquardt lambda keeping the least-squares step
	// well defined near singular configurations.
	Damping float64
	// JacobianDelta is the finite-difference perturbation per joint.
	JacobianDelta float64
	// VerifyPositionTolerance and VerifyRotationTolerance are the independent
	// re-verification thresholds a converged solve must additionally pass:
	// Euclidean position error and Frobenius rotation error of a fresh forward
	// kinematics evaluation.
	VerifyPositionTolerance float64
	VerifyRotationTolerance float64
	// DedupThreshold is the per-joint angular distance, after normalization,
	// under which two solutions count as the same configuration.
	DedupThreshold float64
	// RandomSeeds is the number of pseudo-random seed configurations drawn
	// uniformly over (-pi, pi) per joint, on top of the structured seeds.
	RandomSeeds int
	// RandomSeed fixes the random source so the same target always yields the
	// same solution set.
	RandomSeed int64
	// AngleEpsilon is the rotation angle below which an orientation difference
	// is treated as zero during axis angle extraction.
	AngleEpsilon float64
}

// DefaultSolverOptions returns the reference tuning for UR3-class arms.
func DefaultSolverOptions() *SolverOptions {
	return &SolverOptions{
		MaxIterations:           200,
		PositionTolerance:       1e-6,
		Damping:                 0.01,
		JacobianDelta:           1e-6,
		VerifyPositionTolerance: 1e-4,
		VerifyRotationTolerance: 5e-3,
		DedupThreshold:          0.05, // ~3 degrees
		RandomSeeds:             24,
		RandomSeed:              42,
		AngleEpsilon:            1e-6,
	}
}

// Solution is one joint configuration reaching a solve's target pose,
// normalized to (-pi, pi] per joint, along with the pose it actually achieves
// and the residual errors of the verification pass.
type Solution struct {
	Configuration []referenceframe.Input
	Pose          *spatialmath.Pose
	PositionError float64
	RotationError float64
	// Seed is the index of the seed configuration this solution was found from.
	Seed int
}
