package kinematics

import (
	"context"
	"math"
	"sync"

	"github.com/edaniels/golog"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/utils"

	"github.com/Tiennd11/ur3-robot-ik/referenceframe"
	"github.com/Tiennd11/ur3-robot-ik/spatialmath"
)

// Solver finds the joint configurations of a serial chain that reach a target
// end effector pose. It runs a damped Gauss-Newton (Levenberg-Marquardt) local
// search from a deterministic battery of seed configurations and merges the
// results into a deduplicated solution set. A Solver holds no mutable state
// between calls and is safe for concurrent use.
type Solver struct {
	model  *referenceframe.Model
	logger golog.Logger
	opts   *SolverOptions
}

// NewSolver creates a solver for the given chain. Passing nil options selects
// the reference defaults.
func NewSolver(model *referenceframe.Model, logger golog.Logger, opts *SolverOptions) (*Solver, error) {
	if len(model.DoF()) != referenceframe.NumJoints {
		return nil, errWrongDoF
	}
	if opts == nil {
		opts = DefaultSolverOptions()
	}
	return &Solver{model: model, logger: logger, opts: opts}, nil
}

// Model returns the chain this solver operates on.
func (ik *Solver) Model() *referenceframe.Model {
	return ik.model
}

// Solve returns every distinct joint configuration found to reach the goal
// pose within tolerance. The result may be empty: an unreachable goal is not
// an error, it simply exhausts the seeds. The set is a best-effort sampling
// based enumeration, not a provably complete inverse, but it is deterministic:
// the same goal always yields the same solutions in the same order. The local
// searches run in parallel, one goroutine per seed, each owning its own
// iterate and Jacobian buffers; the merge walks the results in seed order so
// first-found-wins ordering matches a sequential solve exactly.
func (ik *Solver) Solve(ctx context.Context, goal *spatialmath.Pose) ([]Solution, error) {
	seeds := ik.generateSeeds()
	results := make([]*Solution, len(seeds))

	var wg sync.WaitGroup
	wg.Add(len(seeds))
	for i, seed := range seeds {
		i, seed := i, seed
		utils.PanicCapturingGo(func() {
			defer wg.Done()
			results[i] = ik.solveSingle(ctx, goal, seed, i)
		})
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var solutions []Solution
	for _, result := range results {
		if result == nil {
			continue
		}
		result.Configuration = ik.model.Normalize(result.Configuration)
		if ik.isDuplicate(result.Configuration, solutions) {
			continue
		}
		solutions = append(solutions, *result)
	}
	ik.logger.Debugf("%d of %d seeds converged, %d distinct solutions", countConverged(results), len(seeds), len(solutions))
	return solutions, nil
}

// isDuplicate reports whether a normalized configuration matches an already
// accepted solution in every joint simultaneously.
func (ik *Solver) isDuplicate(config []referenceframe.Input, solutions []Solution) bool {
	for _, sol := range solutions {
		same := true
		for j, in := range config {
			if math.Abs(in.Value-sol.Configuration[j].Value) >= ik.opts.DedupThreshold {
				same = false
				break
			}
		}
		if same {
			return true
		}
	}
	return false
}

// solveSingle runs one damped Gauss-Newton search from the given seed. It
// returns nil both for searches that exhaust the iteration budget and for
// numerically converged iterates that fail the independent verification; both
// are expected outcomes, not errors.
func (ik *Solver) solveSingle(ctx context.Context, goal *spatialmath.Pose, seed []referenceframe.Input, seedIdx int) *Solution {
	q := make([]referenceframe.Input, len(seed))
	copy(q, seed)

	goalPoint := goal.Point()
	goalOrient := goal.Orientation()
	damping := ik.opts.Damping

	errVec := mat.NewVecDense(6, nil)
	var jjt mat.Dense
	var step mat.VecDense
	var dq mat.VecDense

	for iteration := 0; iteration < ik.opts.MaxIterations; iteration++ {
		if ctx.Err() != nil {
			return nil
		}

		current, err := ik.model.Transform(q)
		if err != nil {
			ik.logger.Errorw("forward kinematics failed during solve", "seed", seedIdx, "error", err)
			return nil
		}

		dp := goalPoint.Sub(current.Point())
		dw := spatialmath.OrientationBetween(current.Orientation(), goalOrient).R3AxisAngle(ik.opts.AngleEpsilon)

		if dp.Norm() < ik.opts.PositionTolerance && dw.Norm() < 5*ik.opts.PositionTolerance {
			return ik.verify(q, goal, seedIdx)
		}

		jac, err := ik.numericalJacobian(q, current)
		if err != nil {
			ik.logger.Errorw("jacobian estimation failed during solve", "seed", seedIdx, "error", err)
			return nil
		}

		errVec.SetVec(0, dp.X)
		errVec.SetVec(1, dp.Y)
		errVec.SetVec(2, dp.Z)
		errVec.SetVec(3, dw.X)
		errVec.SetVec(4, dw.Y)
		errVec.SetVec(5, dw.Z)

		// Damped least squares step: dq = J^T (J J^T + lambda^2 I)^-1 * error.
		// The damping keeps J J^T + lambda^2 I positive definite, so the solve
		// below cannot fail even at singular configurations.
		jjt.Mul(jac, jac.T())
		for d := 0; d < 6; d++ {
			jjt.Set(d, d, jjt.At(d, d)+damping*damping)
		}
		if err := step.SolveVec(&jjt, errVec); err != nil {
			ik.logger.Errorw("damped least squares solve failed", "seed", seedIdx, "error", err)
			return nil
		}
		dq.MulVec(jac.T(), &step)

		for j := range q {
			q[j].Value += dq.AtVec(j)
		}
	}
	return nil
}

// verify re-checks a numerically converged iterate against the goal with a
// fresh forward kinematics evaluation. This guards against accepting an
// iterate that satisfied the convergence check off a degenerate step but does
// not actually reach the goal.
func (ik *Solver) verify(q []referenceframe.Input, goal *spatialmath.Pose, seedIdx int) *Solution {
	pose, err := ik.model.Transform(q)
	if err != nil {
		return nil
	}
	posErr := pose.Point().Sub(goal.Point()).Norm()
	rotErr := pose.Orientation().FrobeniusDistance(goal.Orientation())
	if posErr >= ik.opts.VerifyPositionTolerance || rotErr >= ik.opts.VerifyRotationTolerance {
		return nil
	}
	return &Solution{
		Configuration: q,
		Pose:          pose,
		PositionError: posErr,
		RotationError: rotErr,
		Seed:          seedIdx,
	}
}

func countConverged(results []*Solution) int {
	n := 0
	for _, r := range results {
		if r != nil {
			n++
		}
	}
	return n
}
