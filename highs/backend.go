package highs

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/bartolsthoorn/highsrun/soln"
)

// Backend drives one HiGHS solve for soln.Run. It implements soln.Solver.
type Backend struct {
	solver *Solver
	logger *zap.Logger
	name   string
	sol    *Solution
}

var _ soln.Solver = (*Backend)(nil)

// NewBackend creates a backend around a fresh HiGHS instance. A nil logger
// disables logging.
func NewBackend(logger *zap.Logger) (*Backend, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s, err := NewSolver()
	if err != nil {
		return nil, err
	}
	return &Backend{solver: s, logger: logger}, nil
}

// Close releases the HiGHS instance.
func (b *Backend) Close() {
	b.solver.Close()
}

// Solver exposes the underlying HiGHS instance.
func (b *Backend) Solver() *Solver {
	return b.solver
}

// ReadModel loads a model file. The model is named after the file stem.
func (b *Backend) ReadModel(path string) error {
	if err := b.solver.ReadModel(path); err != nil {
		return err
	}
	base := filepath.Base(path)
	b.name = strings.TrimSuffix(base, filepath.Ext(base))
	return nil
}

// Load passes an in-memory model under the given name.
func (b *Backend) Load(name string, m *Model) error {
	if err := m.Load(b.solver); err != nil {
		return err
	}
	b.name = name
	return nil
}

// ReadWarmStart reads a YAML mapping of column name to value and passes it as
// the starting solution. Columns missing from the file start at zero.
func (b *Backend) ReadWarmStart(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var values map[string]float64
	if err := yaml.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("parse warm start: %w", err)
	}

	n := b.solver.NumCol()
	start := make([]float64, n)
	matched := 0
	for col := 0; col < n; col++ {
		if v, ok := values[columnName(b.solver, col)]; ok {
			start[col] = v
			matched++
		}
	}
	if matched < len(values) {
		b.logger.Warn("warm start names unknown to model",
			zap.Int("unknown", len(values)-matched))
	}
	return b.solver.SetSolution(start)
}

// HasQuadraticConstraints is always false: HiGHS models have linear rows
// only.
func (b *Backend) HasQuadraticConstraints() bool { return false }

// EnableQuadraticDuals is never needed for HiGHS.
func (b *Backend) EnableQuadraticDuals() error {
	return newErrorMsg("EnableQuadraticDuals", "quadratic constraints are not supported")
}

// SetMIPGap sets the relative MIP gap tolerance.
func (b *Backend) SetMIPGap(gap float64) error {
	return b.solver.SetFloatOption("mip_rel_gap", gap)
}

// SetOption passes an option through by value type. Strings that spell a
// number or boolean are tried as such first, since HiGHS options are typed.
func (b *Backend) SetOption(name string, value any) error {
	switch v := value.(type) {
	case bool:
		return b.solver.SetBoolOption(name, v)
	case int:
		return b.setInt(name, v)
	case int64:
		return b.setInt(name, int(v))
	case float64:
		err := b.solver.SetFloatOption(name, v)
		if err != nil && v == math.Trunc(v) && math.Abs(v) < math.MaxInt32 {
			return b.solver.SetIntOption(name, int(v))
		}
		return err
	case string:
		if i, err := strconv.Atoi(v); err == nil {
			return b.setInt(name, i)
		}
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return b.solver.SetFloatOption(name, f)
		}
		if t, err := strconv.ParseBool(v); err == nil {
			if err := b.solver.SetBoolOption(name, t); err == nil {
				return nil
			}
		}
		return b.solver.SetStringOption(name, v)
	default:
		return b.solver.SetStringOption(name, fmt.Sprint(v))
	}
}

// setInt sets an integer option, falling back to a float option for
// double-valued options given as whole numbers.
func (b *Backend) setInt(name string, v int) error {
	if err := b.solver.SetIntOption(name, v); err == nil {
		return nil
	}
	return b.solver.SetFloatOption(name, float64(v))
}

// RelaxIntegrality makes every column continuous. HiGHS reports no
// integrality for pure LPs, so unreadable columns are left alone.
func (b *Backend) RelaxIntegrality() error {
	for col := 0; col < b.solver.NumCol(); col++ {
		vt, err := b.solver.ColIntegrality(col)
		if err != nil || vt == Continuous {
			continue
		}
		if err := b.solver.SetColIntegrality(col, Continuous); err != nil {
			return err
		}
	}
	return nil
}

// Optimize runs HiGHS.
func (b *Backend) Optimize() error {
	sol, err := b.solver.Run()
	if err != nil {
		return err
	}
	b.sol = sol
	if sol.RunStatus == StatusError {
		b.logger.Warn("highs run ended in error",
			zap.Stringer("model_status", sol.Status))
	}
	b.logger.Debug("highs run finished",
		zap.Stringer("model_status", sol.Status),
		zap.Bool("primal_feasible", sol.PrimalFeasible))
	return nil
}

// Model returns the solved model. It panics if called before Optimize.
func (b *Backend) Model() soln.Model {
	if b.sol == nil {
		panic("highs: Model called before Optimize")
	}
	return newSolvedModel(b.name, b.solver, b.sol, b.logger)
}

// ----------------------------------------------------------------------------
// Solved model
// ----------------------------------------------------------------------------

type column struct {
	name  string
	index int
}

func (c column) Name() string { return c.name }

type row struct {
	name  string
	index int
}

func (r row) Name() string { return r.name }

// solvedModel is a snapshot of a HiGHS instance after Run.
type solvedModel struct {
	name     string
	maximize bool
	mip      bool
	sol      *Solution
	stats    soln.Stats
	cols     []soln.Entity
	rows     []soln.Entity
	rowLower []float64
	rowUpper []float64
}

var _ soln.Model = (*solvedModel)(nil)

func newSolvedModel(name string, s *Solver, sol *Solution, logger *zap.Logger) *solvedModel {
	m := &solvedModel{name: name, sol: sol}

	maximize, err := s.Maximize()
	if err != nil {
		logger.Warn("objective sense unavailable", zap.Error(err))
	}
	m.maximize = maximize

	numCol, numRow := s.NumCol(), s.NumRow()
	colLower, colUpper, err := s.ColBounds()
	if err != nil {
		logger.Warn("column bounds unavailable", zap.Error(err))
	}
	m.rowLower, m.rowUpper, err = s.RowBounds()
	if err != nil {
		logger.Warn("row bounds unavailable", zap.Error(err))
	}

	m.stats = soln.Stats{
		Variables:         numCol,
		LinearConstraints: numRow,
		Nonzeros:          s.NumNonzero(),
	}
	m.cols = make([]soln.Entity, numCol)
	for col := 0; col < numCol; col++ {
		m.cols[col] = column{name: columnName(s, col), index: col}
		vt, err := s.ColIntegrality(col)
		if err != nil || vt == Continuous {
			continue
		}
		m.mip = true
		if !vt.IsDiscrete() {
			continue
		}
		m.stats.IntegerVariables++
		if vt == Integer && colLower != nil && colLower[col] >= 0 && colUpper[col] <= 1 {
			m.stats.BinaryVariables++
		}
	}
	m.rows = make([]soln.Entity, numRow)
	for r := 0; r < numRow; r++ {
		m.rows[r] = row{name: rowName(s, r), index: r}
	}
	return m
}

func (m *solvedModel) Name() string { return m.name }

func (m *solvedModel) Sense() soln.Sense {
	if m.maximize {
		return soln.Maximize
	}
	return soln.Minimize
}

func (m *solvedModel) Status() soln.NativeStatus { return m.sol.Status }

func (m *solvedModel) Stats() soln.Stats { return m.stats }

// IsMIP reports any non-continuous column, semi-continuous ones included.
func (m *solvedModel) IsMIP() bool { return m.mip }

func (m *solvedModel) ObjectiveValue() (float64, bool) {
	if !m.sol.PrimalFeasible {
		return 0, false
	}
	return m.sol.Objective, true
}

// ObjectiveBound is only reported for MIPs; LP runs expose no separate bound.
func (m *solvedModel) ObjectiveBound() (float64, bool) {
	if !m.IsMIP() {
		return 0, false
	}
	return m.sol.Bound()
}

func (m *solvedModel) SolutionCount() int {
	if m.sol.PrimalFeasible {
		return 1
	}
	return 0
}

func (m *solvedModel) Runtime() float64 { return m.sol.Runtime }

func (m *solvedModel) Variables() []soln.Entity { return m.cols }

func (m *solvedModel) LinearConstraints() []soln.Entity { return m.rows }

func (m *solvedModel) QuadraticConstraints() []soln.Entity { return nil }

func (m *solvedModel) Value(e soln.Entity, a soln.Attr) float64 {
	switch e := e.(type) {
	case column:
		switch a {
		case soln.AttrValue:
			return at(m.sol.ColValues, e.index)
		case soln.AttrReducedCost:
			return at(m.sol.ColDuals, e.index)
		}
	case row:
		switch a {
		case soln.AttrDual:
			return at(m.sol.RowDuals, e.index)
		case soln.AttrSlack:
			if e.index >= len(m.rowLower) {
				return 0
			}
			return Slack(at(m.sol.RowValues, e.index), m.rowLower[e.index], m.rowUpper[e.index])
		}
	}
	return math.NaN()
}

func at(s []float64, i int) float64 {
	if i < 0 || i >= len(s) {
		return 0
	}
	return s[i]
}

// columnName returns the HiGHS column name, or HiGHS' default "c<i>".
func columnName(s *Solver, col int) string {
	if name := s.ColName(col); name != "" {
		return name
	}
	return "c" + strconv.Itoa(col)
}

// rowName returns the HiGHS row name, or HiGHS' default "r<i>".
func rowName(s *Solver, r int) string {
	if name := s.RowName(r); name != "" {
		return name
	}
	return "r" + strconv.Itoa(r)
}
