package soln

import (
	"bufio"
	"io"
	"math"
	"strconv"
)

// ProblemSection carries the results.problem fields.
type ProblemSection struct {
	Name  string
	Sense Sense
	// Bound is the objective bound; BoundOK is false when none is known and
	// the sense-dependent infinity is written instead.
	Bound       float64
	BoundOK     bool
	Objectives  int
	Constraints int
	Variables   int
	Binary      int
	Integer     int
	Continuous  int
	Nonzeros    int
}

// SolverSection carries the results.solver fields.
type SolverSection struct {
	Status     Status
	ReturnCode int
	Message    string
	UserTime   float64
	SystemTime float64
	Condition  TerminationCondition
}

// Row is a named value of a variable or constraint.
type Row struct {
	Name  string
	Value float64
}

// SolutionSection carries the solution fields and suffix rows.
type SolutionSection struct {
	Message      string
	Objective    float64
	ObjectiveOK  bool
	Gap          float64
	Values       []Row
	ReducedCosts []Row
	Duals        []Row
	Slacks       []Row
}

// Document is one result file. Solution is nil when no feasible solution
// exists.
type Document struct {
	Problem  ProblemSection
	Solver   SolverSection
	Solution *SolutionSection
}

// WriteTo encodes the document. The output depends only on the document, so
// equal documents encode to identical bytes.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	e := &encoder{w: bufio.NewWriter(w)}

	p := &d.Problem
	e.section("problem")
	e.field("name", p.Name)
	e.line("sense:" + p.Sense.String())
	if p.Sense == Maximize {
		e.field("upper_bound", boundText(p.Bound, p.BoundOK, math.Inf(1)))
	} else {
		e.field("lower_bound", boundText(p.Bound, p.BoundOK, math.Inf(-1)))
	}
	e.field("number_of_objectives", strconv.Itoa(p.Objectives))
	e.field("number_of_constraints", strconv.Itoa(p.Constraints))
	e.field("number_of_variables", strconv.Itoa(p.Variables))
	e.field("number_of_binary_variables", strconv.Itoa(p.Binary))
	e.field("number_of_integer_variables", strconv.Itoa(p.Integer))
	e.field("number_of_continuous_variables", strconv.Itoa(p.Continuous))
	e.field("number_of_nonzeros", strconv.Itoa(p.Nonzeros))

	s := &d.Solver
	e.section("solver")
	e.field("status", string(s.Status))
	e.field("return_code", strconv.Itoa(s.ReturnCode))
	e.field("message", s.Message)
	e.field("user_time", FormatFloat(s.UserTime))
	e.field("system_time", FormatFloat(s.SystemTime))
	e.field("termination_condition", string(s.Condition))
	e.field("termination_message", s.Message)

	if sol := d.Solution; sol != nil {
		e.section("solution")
		e.line("status:optimal")
		e.field("message", sol.Message)
		e.field("objective", formatOptional(sol.Objective, sol.ObjectiveOK))
		e.field("gap", FormatFloat(sol.Gap))
		e.rows("var", sol.Values)
		e.rows("varrc", sol.ReducedCosts)
		e.rows("constraintdual", sol.Duals)
		e.rows("constraintslack", sol.Slacks)
	}

	if e.err == nil {
		e.err = e.w.Flush()
	}
	return e.n, e.err
}

func boundText(v float64, ok bool, inf float64) string {
	if !ok {
		return FormatFloat(inf)
	}
	return FormatFloat(v)
}

// encoder keeps the first write error and ignores the rest.
type encoder struct {
	w   *bufio.Writer
	n   int64
	err error
}

func (e *encoder) line(s string) {
	if e.err != nil {
		return
	}
	n, err := e.w.WriteString(s + "\n")
	e.n += int64(n)
	e.err = err
}

func (e *encoder) section(name string) {
	e.line("section:" + name)
}

func (e *encoder) field(key, value string) {
	e.line(key + ": " + value)
}

func (e *encoder) rows(key string, rows []Row) {
	for _, r := range rows {
		e.line(key + ": " + r.Name + " : " + FormatFloat(r.Value))
	}
}
