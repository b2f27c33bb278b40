package soln

import "fmt"

// Status is the solver-agnostic outcome of a solve call.
type Status string

const (
	StatusOK      Status = "ok"
	StatusWarning Status = "warning"
	StatusAborted Status = "aborted"
	StatusError   Status = "error"
)

// TerminationCondition is the normalized reason the solve loop stopped.
type TerminationCondition string

const (
	ConditionOptimal          TerminationCondition = "optimal"
	ConditionInfeasible       TerminationCondition = "infeasible"
	ConditionUnbounded        TerminationCondition = "unbounded"
	ConditionMinFunctionValue TerminationCondition = "minFunctionValue"
	ConditionMaxIterations    TerminationCondition = "maxIterations"
	ConditionMaxEvaluations   TerminationCondition = "maxEvaluations"
	ConditionMaxTimeLimit     TerminationCondition = "maxTimeLimit"
	ConditionStoppedByLimit   TerminationCondition = "stoppedByLimit"
	ConditionOther            TerminationCondition = "other"
	ConditionError            TerminationCondition = "error"
)

// Outcome is the (status, termination condition, message) triple selected
// for a native status code.
type Outcome struct {
	Status    Status
	Condition TerminationCondition
	Message   string
}

// NativeStatus is a model status code as reported by the bound solver.
// The values match the kHighsModelStatus* constants of the HiGHS C API.
type NativeStatus int

const (
	NativeNotSet NativeStatus = iota
	NativeLoadError
	NativeModelError
	NativePresolveError
	NativeSolveError
	NativePostsolveError
	NativeModelEmpty
	NativeOptimal
	NativeInfeasible
	NativeUnboundedOrInfeasible
	NativeUnbounded
	NativeObjectiveBound
	NativeObjectiveTarget
	NativeTimeLimit
	NativeIterationLimit
	NativeUnknown
	NativeSolutionLimit
	NativeInterrupt
	NativeMemoryLimit
)

var nativeNames = [...]string{
	"NotSet", "LoadError", "ModelError", "PresolveError",
	"SolveError", "PostsolveError", "ModelEmpty", "Optimal",
	"Infeasible", "UnboundedOrInfeasible", "Unbounded",
	"ObjectiveBound", "ObjectiveTarget", "TimeLimit",
	"IterationLimit", "Unknown", "SolutionLimit", "Interrupt",
	"MemoryLimit",
}

func (s NativeStatus) String() string {
	if int(s) >= 0 && int(s) < len(nativeNames) {
		return nativeNames[s]
	}
	return fmt.Sprintf("NativeStatus(%d)", int(s))
}

// UnknownCodeMessage is the message used for codes missing from the table.
const UnknownCodeMessage = "Unknown return code from the solver model status call"

var statusTable = map[NativeStatus]Outcome{
	NativeNotSet: {StatusAborted, ConditionError,
		"Model is loaded, but no solution information is available."},
	NativeLoadError: {StatusError, ConditionError,
		"An error occurred while loading the model."},
	NativeModelError: {StatusError, ConditionError,
		"The model is invalid."},
	NativePresolveError: {StatusError, ConditionError,
		"An error occurred during presolve."},
	NativeSolveError: {StatusError, ConditionError,
		"An error occurred during the solve."},
	NativePostsolveError: {StatusError, ConditionError,
		"An error occurred during postsolve."},
	NativeModelEmpty: {StatusOK, ConditionOptimal,
		"Model is empty; the trivial solution is optimal."},
	NativeOptimal: {StatusOK, ConditionOptimal,
		"Model was solved to optimality (subject to tolerances), and an optimal solution is available."},
	NativeInfeasible: {StatusWarning, ConditionInfeasible,
		"Model was proven to be infeasible."},
	// There is no separate condition for "infeasible or unbounded".
	NativeUnboundedOrInfeasible: {StatusWarning, ConditionInfeasible,
		"Problem proven to be infeasible or unbounded."},
	NativeUnbounded: {StatusWarning, ConditionUnbounded,
		"Model was proven to be unbounded."},
	NativeObjectiveBound: {StatusAborted, ConditionMinFunctionValue,
		"Optimal objective for model was proven to be worse than the value specified in the objective_bound option. No solution information is available."},
	NativeObjectiveTarget: {StatusAborted, ConditionStoppedByLimit,
		"Optimization terminated because a solution reached the value specified in the objective_target option."},
	NativeTimeLimit: {StatusAborted, ConditionMaxTimeLimit,
		"Optimization terminated because the time expended exceeded the value specified in the time_limit option."},
	NativeIterationLimit: {StatusAborted, ConditionMaxIterations,
		"Optimization terminated because the total number of simplex iterations performed exceeded the value specified in the simplex_iteration_limit option."},
	NativeUnknown: {StatusWarning, ConditionOther,
		"The solver stopped without determining the model status; a sub-optimal solution may be available."},
	NativeSolutionLimit: {StatusAborted, ConditionStoppedByLimit,
		"Optimization terminated because the number of solutions or nodes reached the value specified in the mip_max_improving_sols or mip_max_nodes option."},
	NativeInterrupt: {StatusAborted, ConditionError,
		"Optimization was terminated by the user."},
	NativeMemoryLimit: {StatusError, ConditionError,
		"Optimization was terminated because the memory limit was reached."},
}

// MapStatus returns the outcome for a native status code. Codes missing from
// the table map to (error, error).
func MapStatus(code NativeStatus) Outcome {
	if o, ok := statusTable[code]; ok {
		return o
	}
	return Outcome{Status: StatusError, Condition: ConditionError, Message: UnknownCodeMessage}
}

// NativeStatuses returns every code known to MapStatus in ascending order.
func NativeStatuses() []NativeStatus {
	codes := make([]NativeStatus, 0, len(statusTable))
	for c := NativeNotSet; c <= NativeMemoryLimit; c++ {
		codes = append(codes, c)
	}
	return codes
}
