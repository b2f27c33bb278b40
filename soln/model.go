// Package soln normalizes the result of a solver run and serializes it to the
// sectioned text format read by the driver process.
//
// The package never talks to a native solver directly. A binding implements
// Solver for the pre-solve steps and Model for read-only access to the solved
// state; Run ties the two together:
//
//	caps := highs.Capabilities()
//	backend, err := highs.NewBackend()
//	...
//	err = soln.Run(req, backend, caps, "results.soln", soln.WithLogger(logger))
//
// On any unrecoverable error Run returns before writing, so a present output
// file is always complete.
package soln

import "fmt"

// Sense is the optimization direction.
type Sense int

const (
	Minimize Sense = iota
	Maximize
)

func (s Sense) String() string {
	if s == Maximize {
		return "maximize"
	}
	return "minimize"
}

// Version is a solver release number.
type Version struct {
	Major, Minor, Patch int
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Capabilities describes what the bound solver build can do. It is resolved
// once by the owner of the binding and passed in explicitly.
type Capabilities struct {
	Solver  string
	Version Version
	// QuadraticDuals is set when the solver can compute duals on quadratic
	// constraints on request.
	QuadraticDuals bool
}

// Attr selects a per-entity value of a solved model.
type Attr int

const (
	// AttrValue is the primal value of a variable.
	AttrValue Attr = iota
	// AttrReducedCost is the reduced cost of a variable.
	AttrReducedCost
	// AttrDual is the dual value of a constraint.
	AttrDual
	// AttrSlack is the slack of a constraint.
	AttrSlack
)

// Entity is a variable or constraint of a solved model.
type Entity interface {
	Name() string
}

// Stats are the size counters of a model.
type Stats struct {
	Variables            int
	BinaryVariables      int
	IntegerVariables     int // including binary variables
	LinearConstraints    int
	QuadraticConstraints int
	SOSConstraints       int
	Nonzeros             int
}

// Model is a read-only view of a solved model.
type Model interface {
	Name() string
	Sense() Sense
	Status() NativeStatus
	Stats() Stats
	// IsMIP reports whether the model has integer or binary variables.
	IsMIP() bool
	// ObjectiveValue returns false when no incumbent exists.
	ObjectiveValue() (float64, bool)
	// ObjectiveBound returns false when the solver exposes no bound.
	ObjectiveBound() (float64, bool)
	SolutionCount() int
	// Runtime is the wall time of the solve in seconds.
	Runtime() float64
	Variables() []Entity
	LinearConstraints() []Entity
	QuadraticConstraints() []Entity
	Value(e Entity, a Attr) float64
}

// Solver is the pre-solve side of a solver binding.
type Solver interface {
	ReadModel(path string) error
	ReadWarmStart(path string) error
	HasQuadraticConstraints() bool
	EnableQuadraticDuals() error
	SetMIPGap(gap float64) error
	SetOption(name string, value any) error
	RelaxIntegrality() error
	// Optimize performs the single blocking solve.
	Optimize() error
	// Model returns the solved state. Only valid after Optimize.
	Model() Model
}
