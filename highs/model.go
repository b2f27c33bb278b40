package highs

import "math"

// Model is an in-memory LP, MIP, or QP definition that can be loaded into a
// Solver in place of a model file.
//
// It describes problems of the form:
//
//	Minimize (or Maximize): ColCosts · x + Offset + 0.5 * x' * Hessian * x
//	Subject to:             RowLower ≤ A·x ≤ RowUpper
//	And:                    ColLower ≤ x ≤ ColUpper
//
// Where A is the constraint matrix specified by ConstMatrix.
type Model struct {
	// Maximize indicates whether to maximize (true) or minimize (false).
	Maximize bool

	// Offset is a constant added to the objective function.
	Offset float64

	// ColCosts are the objective function coefficients for each variable.
	ColCosts []float64

	// ColLower are the lower bounds for each variable.
	// If empty or shorter than the number of variables, defaults to -∞.
	ColLower []float64

	// ColUpper are the upper bounds for each variable.
	// If empty or shorter than the number of variables, defaults to +∞.
	ColUpper []float64

	// RowLower are the lower bounds for each constraint.
	// Use NegInf() for no lower bound.
	RowLower []float64

	// RowUpper are the upper bounds for each constraint.
	// Use Inf() for no upper bound.
	RowUpper []float64

	// ConstMatrix defines the constraint matrix as a list of non-zero entries.
	// Each entry specifies (row, column, value).
	ConstMatrix []Nonzero

	// Hessian defines the Hessian matrix for quadratic programming.
	// Must be upper triangular. Each entry specifies (row, column, value).
	// For a term like 0.5*x_i*Q_ij*x_j, set Hessian[{i,j}] = Q_ij.
	Hessian []Nonzero

	// VarTypes specifies the type of each variable (continuous, integer, etc.).
	// If empty, all variables are treated as continuous.
	VarTypes []VariableType

	// ColNames and RowNames name variables and constraints in result files.
	// Missing or empty entries fall back to HiGHS' "c<i>" and "r<i>".
	ColNames []string
	RowNames []string
}

// AddRow adds a named constraint lower <= coeffs·x <= upper from a dense
// coefficient vector. Zero coefficients are dropped.
//
// Example:
//
//	model.AddRow("cap", 1.0, []float64{1.0, 2.0, 0.0, 3.0}, 10.0)
//	// Adds constraint cap: 1.0 <= x0 + 2*x1 + 3*x3 <= 10.0
func (m *Model) AddRow(name string, lower float64, coeffs []float64, upper float64) {
	row := len(m.RowLower)
	m.RowLower = append(m.RowLower, lower)
	m.RowUpper = append(m.RowUpper, upper)
	if name != "" {
		for len(m.RowNames) < row {
			m.RowNames = append(m.RowNames, "")
		}
		m.RowNames = append(m.RowNames, name)
	}

	for col, val := range coeffs {
		if val != 0.0 {
			m.ConstMatrix = append(m.ConstMatrix, Nonzero{Row: row, Col: col, Val: val})
		}
	}
}

// NumVars returns the number of variables in the model.
func (m *Model) NumVars() int {
	_, maxCol := maxRowCol(m.ConstMatrix)
	if _, c := maxRowCol(m.Hessian); c > maxCol {
		maxCol = c
	}
	n := maxCol + 1
	for _, l := range []int{len(m.ColCosts), len(m.ColLower), len(m.ColUpper), len(m.VarTypes), len(m.ColNames)} {
		if l > n {
			n = l
		}
	}
	return n
}

// NumConstraints returns the number of constraints in the model.
func (m *Model) NumConstraints() int {
	maxRow, _ := maxRowCol(m.ConstMatrix)
	n := maxRow + 1
	for _, l := range []int{len(m.RowLower), len(m.RowUpper), len(m.RowNames)} {
		if l > n {
			n = l
		}
	}
	return n
}

// Load passes the model, and its Hessian if present, to a solver.
func (m *Model) Load(s *Solver) error {
	numCol := m.NumVars()
	numRow := m.NumConstraints()

	colCosts, err := expandSlice(numCol, m.ColCosts, 0.0)
	if err != nil {
		return newErrorMsg("Load", "inconsistent ColCosts length")
	}
	colLower, err := expandSlice(numCol, m.ColLower, math.Inf(-1))
	if err != nil {
		return newErrorMsg("Load", "inconsistent ColLower length")
	}
	colUpper, err := expandSlice(numCol, m.ColUpper, math.Inf(1))
	if err != nil {
		return newErrorMsg("Load", "inconsistent ColUpper length")
	}
	rowLower, err := expandSlice(numRow, m.RowLower, math.Inf(-1))
	if err != nil {
		return newErrorMsg("Load", "inconsistent RowLower length")
	}
	rowUpper, err := expandSlice(numRow, m.RowUpper, math.Inf(1))
	if err != nil {
		return newErrorMsg("Load", "inconsistent RowUpper length")
	}

	aStart, aIndex, aValue, err := nonzerosToCSR(m.ConstMatrix, numRow, false)
	if err != nil {
		return err
	}

	varTypes := m.VarTypes
	if len(varTypes) > 0 && len(varTypes) != numCol {
		expanded := make([]VariableType, numCol)
		copy(expanded, varTypes)
		varTypes = expanded
	}

	err = s.PassModel(
		numCol, numRow,
		colCosts, colLower, colUpper,
		rowLower, rowUpper,
		aStart, aIndex, aValue,
		varTypes,
		m.Maximize,
		m.Offset,
	)
	if err != nil {
		return err
	}

	for col, name := range m.ColNames {
		if name == "" {
			continue
		}
		if err := s.SetColName(col, name); err != nil {
			return err
		}
	}
	for row, name := range m.RowNames {
		if name == "" {
			continue
		}
		if err := s.SetRowName(row, name); err != nil {
			return err
		}
	}

	if len(m.Hessian) > 0 {
		hStart, hIndex, hValue, err := nonzerosToCSR(m.Hessian, numCol, true)
		if err != nil {
			return err
		}
		if err := s.PassHessian(numCol, hStart, hIndex, hValue); err != nil {
			return err
		}
	}
	return nil
}
