package highs

import (
	"math"

	"github.com/bartolsthoorn/highsrun/soln"
)

// Solution contains the results from solving an optimization model.
type Solution struct {
	// Status indicates the outcome of the solve.
	Status ModelStatus

	// RunStatus is what Highs_run returned. It is StatusError when the model
	// status is one of the error codes.
	RunStatus Status

	// PrimalFeasible is set when HiGHS holds a feasible primal solution,
	// including a sub-optimal incumbent of an interrupted run.
	PrimalFeasible bool

	// ColValues contains the primal solution values for each column (variable).
	ColValues []float64

	// ColDuals contains the reduced costs for each column.
	// Only meaningful for LP problems.
	ColDuals []float64

	// RowValues contains the activity of each row (constraint).
	RowValues []float64

	// RowDuals contains the dual solution values for each row.
	// Only meaningful for LP problems.
	RowDuals []float64

	// Objective is the value of the objective function at the solution.
	Objective float64

	// DualBound is the best bound proven by the MIP solver.
	DualBound float64

	// Runtime is the wall time of the run in seconds.
	Runtime float64
}

// runFailed reports whether a run left nothing to report.
func runFailed(run Status, model ModelStatus) bool {
	return run == StatusError && model == soln.NativeNotSet
}

// Bound returns the proven objective bound, if HiGHS produced a finite one.
func (s *Solution) Bound() (float64, bool) {
	if math.IsInf(s.DualBound, 0) || math.IsNaN(s.DualBound) || math.Abs(s.DualBound) >= 1e30 {
		return 0, false
	}
	return s.DualBound, true
}

// Slack returns the slack of a row given its bounds: the distance to the
// upper bound, or to the lower bound when the row has no finite upper bound.
func Slack(activity, lower, upper float64) float64 {
	if !math.IsInf(upper, 1) && upper < 1e30 {
		return upper - activity
	}
	if !math.IsInf(lower, -1) && lower > -1e30 {
		return lower - activity
	}
	return 0
}
