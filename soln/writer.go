package soln

import (
	"bytes"
	"fmt"

	"github.com/bartolsthoorn/highsrun/internal/fsutil"
)

// Extract reads a solved model into a Document.
//
// Reduced costs and duals are left out for discrete models even when
// requested, since they are undefined there.
func Extract(m Model, o Outcome, set SuffixSet) *Document {
	stats := m.Stats()
	obj, objOK := m.ObjectiveValue()

	bound, boundOK := m.ObjectiveBound()
	if !boundOK && o.Condition == ConditionOptimal && objOK {
		bound, boundOK = obj, true
	}

	doc := &Document{
		Problem: ProblemSection{
			Name:        m.Name(),
			Sense:       m.Sense(),
			Bound:       bound,
			BoundOK:     boundOK,
			Objectives:  1,
			Constraints: stats.LinearConstraints + stats.QuadraticConstraints + stats.SOSConstraints,
			Variables:   stats.Variables,
			Binary:      stats.BinaryVariables,
			Integer:     stats.IntegerVariables,
			Continuous:  stats.Variables - stats.IntegerVariables,
			Nonzeros:    stats.Nonzeros,
		},
		Solver: SolverSection{
			Status:    o.Status,
			Message:   o.Message,
			UserTime:  m.Runtime(),
			Condition: o.Condition,
		},
	}

	if o.Condition != ConditionOptimal && m.SolutionCount() < 1 {
		return doc
	}

	continuous := !m.IsMIP()
	vars := m.Variables()
	sol := &SolutionSection{
		Message:     o.Message,
		Objective:   obj,
		ObjectiveOK: objOK,
		Values:      collect(m, vars, AttrValue),
	}
	if continuous && set.ReducedCosts {
		sol.ReducedCosts = collect(m, vars, AttrReducedCost)
	}
	if continuous && set.Duals {
		sol.Duals = append(collect(m, m.LinearConstraints(), AttrDual),
			collect(m, m.QuadraticConstraints(), AttrDual)...)
	}
	if set.Slacks {
		sol.Slacks = append(collect(m, m.LinearConstraints(), AttrSlack),
			collect(m, m.QuadraticConstraints(), AttrSlack)...)
	}
	doc.Solution = sol
	return doc
}

func collect(m Model, entities []Entity, a Attr) []Row {
	rows := make([]Row, len(entities))
	for i, e := range entities {
		rows[i] = Row{Name: e.Name(), Value: m.Value(e, a)}
	}
	return rows
}

// WriteFile encodes doc and replaces path with it atomically. On error path is
// left untouched.
func WriteFile(path string, doc *Document) error {
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return fmt.Errorf("encode result document: %w", err)
	}
	if err := fsutil.AtomicWrite(path, buf.Bytes()); err != nil {
		return fmt.Errorf("write result file: %w", err)
	}
	return nil
}
