//go:build (linux || darwin) && (amd64 || arm64)

// Package highs binds the HiGHS solver and adapts a solved HiGHS instance to
// the soln result writer.
//
// HiGHS solves linear programming (LP), mixed-integer programming (MIP), and
// quadratic programming (QP) problems. This package links prebuilt static
// HiGHS libraries, so `go build` produces a self-contained binary.
//
// # Supported Platforms
//
//   - linux/amd64
//   - linux/arm64
//   - darwin/amd64
//   - darwin/arm64
//
// # Example
//
//	backend, err := highs.NewBackend(logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer backend.Close()
//
//	req := soln.Request{ModelFile: "model.mps", Suffixes: []string{"dual"}}
//	err = soln.Run(req, backend, highs.Capabilities(), "model.soln")
package highs

/*
#cgo CFLAGS: -I${SRCDIR}/../internal/highs/include

#cgo linux,amd64 LDFLAGS: ${SRCDIR}/../internal/highs/lib/linux_amd64/libhighs.a -lstdc++ -lm -ldl -lz
#cgo linux,arm64 LDFLAGS: ${SRCDIR}/../internal/highs/lib/linux_arm64/libhighs.a -lstdc++ -lm -ldl -lz
#cgo darwin,amd64 LDFLAGS: ${SRCDIR}/../internal/highs/lib/darwin_amd64/libhighs.a -lc++ -lz
#cgo darwin,arm64 LDFLAGS: ${SRCDIR}/../internal/highs/lib/darwin_arm64/libhighs.a -lc++ -lz

#include <stdlib.h>
#include <stdint.h>
#include "highs_c_api.h"
*/
import "C"
import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/bartolsthoorn/highsrun/soln"
)

// ----------------------------------------------------------------------------
// Types
// ----------------------------------------------------------------------------

// VariableType specifies whether a variable is continuous, integer, etc.
type VariableType int

const (
	// Continuous indicates a continuous variable (default).
	Continuous VariableType = iota
	// Integer indicates an integer variable.
	Integer
	// SemiContinuous indicates a semi-continuous variable.
	SemiContinuous
	// SemiInteger indicates a semi-integer variable.
	SemiInteger
	// ImplicitInteger indicates an implicit integer variable.
	ImplicitInteger
)

// String returns a human-readable representation of the variable type.
func (v VariableType) String() string {
	switch v {
	case Continuous:
		return "Continuous"
	case Integer:
		return "Integer"
	case SemiContinuous:
		return "SemiContinuous"
	case SemiInteger:
		return "SemiInteger"
	case ImplicitInteger:
		return "ImplicitInteger"
	default:
		return "Unknown"
	}
}

// IsDiscrete reports whether the variable is restricted to integer values.
func (v VariableType) IsDiscrete() bool {
	return v == Integer || v == SemiInteger || v == ImplicitInteger
}

func (v VariableType) toC() C.HighsInt {
	switch v {
	case Continuous:
		return C.kHighsVarTypeContinuous
	case Integer:
		return C.kHighsVarTypeInteger
	case SemiContinuous:
		return C.kHighsVarTypeSemiContinuous
	case SemiInteger:
		return C.kHighsVarTypeSemiInteger
	case ImplicitInteger:
		return C.kHighsVarTypeImplicitInteger
	default:
		return C.kHighsVarTypeContinuous
	}
}

func variableTypeFromC(v C.HighsInt) VariableType {
	switch v {
	case C.kHighsVarTypeInteger:
		return Integer
	case C.kHighsVarTypeSemiContinuous:
		return SemiContinuous
	case C.kHighsVarTypeSemiInteger:
		return SemiInteger
	case C.kHighsVarTypeImplicitInteger:
		return ImplicitInteger
	default:
		return Continuous
	}
}

// Status represents the result status of a HiGHS operation.
type Status int

const (
	// StatusError indicates the operation failed with an error.
	StatusError Status = -1
	// StatusOK indicates the operation succeeded.
	StatusOK Status = 0
	// StatusWarning indicates the operation succeeded with warnings.
	StatusWarning Status = 1
)

// String returns a human-readable representation of the status.
func (s Status) String() string {
	switch s {
	case StatusError:
		return "Error"
	case StatusOK:
		return "OK"
	case StatusWarning:
		return "Warning"
	default:
		return "Unknown"
	}
}

// ModelStatus is the raw kHighsModelStatus* code of a solved model. Codes
// are kept as reported so that statuses added by newer HiGHS releases reach
// the status mapper unchanged.
type ModelStatus = soln.NativeStatus

// Nonzero represents a non-zero entry in a sparse matrix.
// Row and Col are zero-indexed.
type Nonzero struct {
	Row int
	Col int
	Val float64
}

// ----------------------------------------------------------------------------
// Errors
// ----------------------------------------------------------------------------

// Error represents a HiGHS error with context about which operation failed.
type Error struct {
	Op     string // Operation that failed (e.g., "ReadModel", "SetOption")
	Status Status // HiGHS status code
	Msg    string // Additional context
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("highs: %s failed: %s", e.Op, e.Msg)
	}
	return fmt.Sprintf("highs: %s failed with status %s", e.Op, e.Status)
}

// newError creates a new Error if status is not OK.
// Returns nil if status is OK or Warning.
func newError(op string, status Status) error {
	if status == StatusOK || status == StatusWarning {
		return nil
	}
	return &Error{Op: op, Status: status}
}

// newErrorMsg creates a new Error with an additional message.
func newErrorMsg(op, msg string) error {
	return &Error{Op: op, Status: StatusError, Msg: msg}
}

// ----------------------------------------------------------------------------
// Version
// ----------------------------------------------------------------------------

// Version returns the version of the linked HiGHS library.
func Version() soln.Version {
	return soln.Version{
		Major: int(C.Highs_versionMajor()),
		Minor: int(C.Highs_versionMinor()),
		Patch: int(C.Highs_versionPatch()),
	}
}

// Capabilities describes the linked HiGHS build. HiGHS has no quadratic
// constraints, so there is no quadratic dual mode to enable.
func Capabilities() soln.Capabilities {
	return soln.Capabilities{
		Solver:  "highs",
		Version: Version(),
	}
}

// ----------------------------------------------------------------------------
// Solver (Low-Level API)
// ----------------------------------------------------------------------------

// Solver provides low-level access to the HiGHS solver.
//
// Always call Close() when done to release resources:
//
//	solver, _ := NewSolver()
//	defer solver.Close()
type Solver struct {
	ptr unsafe.Pointer
}

// NewSolver creates a new HiGHS solver instance.
//
// The solver must be closed with Close() when no longer needed.
func NewSolver() (*Solver, error) {
	ptr := C.Highs_create()
	if ptr == nil {
		return nil, newErrorMsg("NewSolver", "failed to create HiGHS instance")
	}

	s := &Solver{ptr: ptr}
	runtime.SetFinalizer(s, (*Solver).Close)
	return s, nil
}

// Close releases the resources held by the solver.
// It is safe to call Close multiple times.
func (s *Solver) Close() {
	if s.ptr != nil {
		C.Highs_destroy(s.ptr)
		s.ptr = nil
	}
}

// NumCol returns the number of columns (variables) in the model.
func (s *Solver) NumCol() int {
	return int(C.Highs_getNumCol(s.ptr))
}

// NumRow returns the number of rows (constraints) in the model.
func (s *Solver) NumRow() int {
	return int(C.Highs_getNumRow(s.ptr))
}

// NumNonzero returns the number of non-zero entries in the constraint matrix.
func (s *Solver) NumNonzero() int {
	return int(C.Highs_getNumNz(s.ptr))
}

// SetBoolOption sets a boolean option.
func (s *Solver) SetBoolOption(name string, value bool) error {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	var cVal C.HighsInt
	if value {
		cVal = 1
	}
	status := Status(C.Highs_setBoolOptionValue(s.ptr, cName, cVal))
	return newError("SetBoolOption", status)
}

// SetIntOption sets an integer option.
func (s *Solver) SetIntOption(name string, value int) error {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	status := Status(C.Highs_setIntOptionValue(s.ptr, cName, C.HighsInt(value)))
	return newError("SetIntOption", status)
}

// SetFloatOption sets a floating-point option.
func (s *Solver) SetFloatOption(name string, value float64) error {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	status := Status(C.Highs_setDoubleOptionValue(s.ptr, cName, C.double(value)))
	return newError("SetFloatOption", status)
}

// SetStringOption sets a string option.
func (s *Solver) SetStringOption(name, value string) error {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	cVal := C.CString(value)
	defer C.free(unsafe.Pointer(cVal))

	status := Status(C.Highs_setStringOptionValue(s.ptr, cName, cVal))
	return newError("SetStringOption", status)
}

// Maximize reports whether the loaded model maximizes its objective.
func (s *Solver) Maximize() (bool, error) {
	var sense C.HighsInt
	status := Status(C.Highs_getObjectiveSense(s.ptr, &sense))
	if err := newError("Maximize", status); err != nil {
		return false, err
	}
	return sense == C.kHighsObjSenseMaximize, nil
}

// ColIntegrality returns the variable type of a column.
func (s *Solver) ColIntegrality(col int) (VariableType, error) {
	var integrality C.HighsInt
	status := Status(C.Highs_getColIntegrality(s.ptr, C.HighsInt(col), &integrality))
	if err := newError("ColIntegrality", status); err != nil {
		return Continuous, err
	}
	return variableTypeFromC(integrality), nil
}

// SetColIntegrality sets the variable type for a column.
func (s *Solver) SetColIntegrality(col int, varType VariableType) error {
	status := Status(C.Highs_changeColIntegrality(s.ptr,
		C.HighsInt(col), varType.toC()))
	return newError("SetColIntegrality", status)
}

// ColBounds returns the lower and upper bounds of every column.
func (s *Solver) ColBounds() (lower, upper []float64, err error) {
	n := s.NumCol()
	if n == 0 {
		return nil, nil, nil
	}
	lower = make([]float64, n)
	upper = make([]float64, n)
	var numCol, numNz C.HighsInt
	status := Status(C.Highs_getColsByRange(s.ptr, 0, C.HighsInt(n-1),
		&numCol, nil,
		(*C.double)(&lower[0]), (*C.double)(&upper[0]),
		&numNz, nil, nil, nil))
	if err := newError("ColBounds", status); err != nil {
		return nil, nil, err
	}
	return lower, upper, nil
}

// RowBounds returns the lower and upper bounds of every row.
func (s *Solver) RowBounds() (lower, upper []float64, err error) {
	n := s.NumRow()
	if n == 0 {
		return nil, nil, nil
	}
	lower = make([]float64, n)
	upper = make([]float64, n)
	var numRow, numNz C.HighsInt
	status := Status(C.Highs_getRowsByRange(s.ptr, 0, C.HighsInt(n-1),
		&numRow,
		(*C.double)(&lower[0]), (*C.double)(&upper[0]),
		&numNz, nil, nil, nil))
	if err := newError("RowBounds", status); err != nil {
		return nil, nil, err
	}
	return lower, upper, nil
}

// ColName returns the name of a column, or "" if it has none.
func (s *Solver) ColName(col int) string {
	buf := (*C.char)(C.malloc(C.size_t(C.kHighsMaximumStringLength)))
	defer C.free(unsafe.Pointer(buf))

	if Status(C.Highs_getColName(s.ptr, C.HighsInt(col), buf)) != StatusOK {
		return ""
	}
	return C.GoString(buf)
}

// RowName returns the name of a row, or "" if it has none.
func (s *Solver) RowName(row int) string {
	buf := (*C.char)(C.malloc(C.size_t(C.kHighsMaximumStringLength)))
	defer C.free(unsafe.Pointer(buf))

	if Status(C.Highs_getRowName(s.ptr, C.HighsInt(row), buf)) != StatusOK {
		return ""
	}
	return C.GoString(buf)
}

// SetColName names a column.
func (s *Solver) SetColName(col int, name string) error {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	status := Status(C.Highs_passColName(s.ptr, C.HighsInt(col), cName))
	return newError("SetColName", status)
}

// SetRowName names a row.
func (s *Solver) SetRowName(row int, name string) error {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	status := Status(C.Highs_passRowName(s.ptr, C.HighsInt(row), cName))
	return newError("SetRowName", status)
}

// PassModel passes a complete model to the solver in one call.
func (s *Solver) PassModel(
	numCol, numRow int,
	colCost, colLower, colUpper []float64,
	rowLower, rowUpper []float64,
	aStart, aIndex []int,
	aValue []float64,
	integrality []VariableType,
	maximize bool,
	offset float64,
) error {
	sense := C.kHighsObjSenseMinimize
	if maximize {
		sense = C.kHighsObjSenseMaximize
	}

	cAStart := toHighsInts(aStart)
	cAIndex := toHighsInts(aIndex)

	var pIntegrality *C.HighsInt
	if len(integrality) > 0 {
		cIntegrality := make([]C.HighsInt, len(integrality))
		for i, vt := range integrality {
			cIntegrality[i] = vt.toC()
		}
		pIntegrality = &cIntegrality[0]
	}

	status := Status(C.Highs_passModel(s.ptr,
		C.HighsInt(numCol), C.HighsInt(numRow),
		C.HighsInt(len(aValue)), 0, // num_nz, q_num_nz
		C.kHighsMatrixFormatRowwise, C.kHighsHessianFormatTriangular,
		C.HighsInt(sense), C.double(offset),
		doublePtr(colCost), doublePtr(colLower), doublePtr(colUpper),
		doublePtr(rowLower), doublePtr(rowUpper),
		intPtr(cAStart), intPtr(cAIndex), doublePtr(aValue),
		nil, nil, nil, // Hessian pointers
		pIntegrality))
	return newError("PassModel", status)
}

// PassHessian sets the Hessian matrix for quadratic programming.
// The Hessian must be provided in upper-triangular compressed sparse format.
func (s *Solver) PassHessian(dim int, start, index []int, value []float64) error {
	if len(index) != len(value) {
		return newErrorMsg("PassHessian", "index and value must have same length")
	}

	cStart := toHighsInts(start)
	cIndex := toHighsInts(index)

	status := Status(C.Highs_passHessian(s.ptr,
		C.HighsInt(dim), C.HighsInt(len(value)),
		C.kHighsHessianFormatTriangular,
		intPtr(cStart), intPtr(cIndex), doublePtr(value)))
	return newError("PassHessian", status)
}

// SetSolution passes primal column values as a starting point for the next
// run.
func (s *Solver) SetSolution(colValues []float64) error {
	if len(colValues) != s.NumCol() {
		return newErrorMsg("SetSolution", "column value count does not match the model")
	}
	status := Status(C.Highs_setSolution(s.ptr, doublePtr(colValues), nil, nil, nil))
	return newError("SetSolution", status)
}

// Run solves the model and returns the solution. A run that ends in a
// solver-side error status (ModelError, SolveError, ...) still returns a
// Solution carrying that status; an error is returned only when HiGHS set no
// model status at all.
func (s *Solver) Run() (*Solution, error) {
	status := Status(C.Highs_run(s.ptr))
	modelStatus := ModelStatus(C.Highs_getModelStatus(s.ptr))
	if runFailed(status, modelStatus) {
		return nil, newError("Run", status)
	}

	numCol := int(C.Highs_getNumCol(s.ptr))
	numRow := int(C.Highs_getNumRow(s.ptr))

	colValue := make([]float64, numCol)
	colDual := make([]float64, numCol)
	rowValue := make([]float64, numRow)
	rowDual := make([]float64, numRow)

	C.Highs_getSolution(s.ptr,
		doublePtr(colValue), doublePtr(colDual),
		doublePtr(rowValue), doublePtr(rowDual))

	sol := &Solution{
		Status:    modelStatus,
		RunStatus: status,
		ColValues: colValue,
		ColDuals:  colDual,
		RowValues: rowValue,
		RowDuals:  rowDual,
		Objective: float64(C.Highs_getObjectiveValue(s.ptr)),
		Runtime:   float64(C.Highs_getRunTime(s.ptr)),
	}

	if ps, err := s.GetIntInfo("primal_solution_status"); err == nil {
		sol.PrimalFeasible = ps == int(C.kHighsSolutionStatusFeasible)
	}
	if bound, err := s.GetFloatInfo("mip_dual_bound"); err == nil {
		sol.DualBound = bound
	}
	return sol, nil
}

// GetIntInfo returns an integer info value.
func (s *Solver) GetIntInfo(name string) (int, error) {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	var val C.HighsInt
	status := Status(C.Highs_getIntInfoValue(s.ptr, cName, &val))
	if err := newError("GetIntInfo", status); err != nil {
		return 0, err
	}
	return int(val), nil
}

// GetFloatInfo returns a floating-point info value.
func (s *Solver) GetFloatInfo(name string) (float64, error) {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	var val C.double
	status := Status(C.Highs_getDoubleInfoValue(s.ptr, cName, &val))
	if err := newError("GetFloatInfo", status); err != nil {
		return 0, err
	}
	return float64(val), nil
}

// ReadModel reads a model from a file (LP, MPS, or other supported format).
func (s *Solver) ReadModel(filename string) error {
	cFilename := C.CString(filename)
	defer C.free(unsafe.Pointer(cFilename))

	status := Status(C.Highs_readModel(s.ptr, cFilename))
	return newError("ReadModel", status)
}

func toHighsInts(in []int) []C.HighsInt {
	out := make([]C.HighsInt, len(in))
	for i, v := range in {
		out[i] = C.HighsInt(v)
	}
	return out
}

func intPtr(s []C.HighsInt) *C.HighsInt {
	if len(s) == 0 {
		return nil
	}
	return &s[0]
}

func doublePtr(s []float64) *C.double {
	if len(s) == 0 {
		return nil
	}
	return (*C.double)(&s[0])
}
