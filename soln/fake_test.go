package soln

import (
	"errors"
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeEntity struct {
	name  string
	value float64 // primal value for variables, activity for constraints
	rc    float64
	dual  float64
	slack float64
}

func (e *fakeEntity) Name() string { return e.name }

// fakeModel is an in-memory Model.
type fakeModel struct {
	name      string
	sense     Sense
	status    NativeStatus
	stats     Stats
	mip       bool
	obj       float64
	objOK     bool
	bound     float64
	boundOK   bool
	solutions int
	runtime   float64
	vars      []*fakeEntity
	cons      []*fakeEntity
	qcons     []*fakeEntity

	// reads counts Value calls per attribute.
	reads map[Attr]int
}

func (m *fakeModel) Name() string { return m.name }
func (m *fakeModel) Sense() Sense { return m.sense }
func (m *fakeModel) Status() NativeStatus { return m.status }
func (m *fakeModel) Stats() Stats { return m.stats }
func (m *fakeModel) IsMIP() bool { return m.mip }
func (m *fakeModel) ObjectiveValue() (float64, bool) { return m.obj, m.objOK }
func (m *fakeModel) ObjectiveBound() (float64, bool) { return m.bound, m.boundOK }
func (m *fakeModel) SolutionCount() int { return m.solutions }
func (m *fakeModel) Runtime() float64 { return m.runtime }

func (m *fakeModel) Variables() []Entity { return entities(m.vars) }
func (m *fakeModel) LinearConstraints() []Entity { return entities(m.cons) }
func (m *fakeModel) QuadraticConstraints() []Entity { return entities(m.qcons) }

func (m *fakeModel) Value(e Entity, a Attr) float64 {
	if m.reads == nil {
		m.reads = make(map[Attr]int)
	}
	m.reads[a]++
	fe := e.(*fakeEntity)
	switch a {
	case AttrValue:
		return fe.value
	case AttrReducedCost:
		return fe.rc
	case AttrDual:
		return fe.dual
	case AttrSlack:
		return fe.slack
	}
	return 0
}

func entities(in []*fakeEntity) []Entity {
	out := make([]Entity, len(in))
	for i, e := range in {
		out[i] = e
	}
	return out
}

// lpModel is the optimal LP
//
//	min  x + y
//	s.t. c1: x + 2y >= 5
//	     c2: 3x + 2y >= 6
func lpModel() *fakeModel {
	return &fakeModel{
		name:   "lp",
		sense:  Minimize,
		status: NativeOptimal,
		stats: Stats{
			Variables:         2,
			LinearConstraints: 2,
			Nonzeros:          4,
		},
		obj:       2.75,
		objOK:     true,
		solutions: 1,
		runtime:   0.25,
		vars: []*fakeEntity{
			{name: "x", value: 0.5, rc: 0},
			{name: "y", value: 2.25, rc: 0},
		},
		cons: []*fakeEntity{
			{name: "c1", dual: 0.25, slack: 0},
			{name: "c2", dual: 0.25, slack: 0},
		},
	}
}

var errFake = errors.New("fake failure")

// fakeSolver records the calls Run makes.
type fakeSolver struct {
	model *fakeModel
	qcons bool

	readErr     error
	warmErr     error
	optimizeErr error
	rejected    map[string]bool

	calls       []string
	options     map[string]any
	mipGap      float64
	qcpDuals    bool
	relaxed     bool
	optimized   int
	warmStarted string
}

func (s *fakeSolver) ReadModel(path string) error {
	s.calls = append(s.calls, "read")
	return s.readErr
}

func (s *fakeSolver) ReadWarmStart(path string) error {
	s.calls = append(s.calls, "warmstart")
	s.warmStarted = path
	return s.warmErr
}

func (s *fakeSolver) HasQuadraticConstraints() bool { return s.qcons }

func (s *fakeSolver) EnableQuadraticDuals() error {
	s.calls = append(s.calls, "qcpdual")
	s.qcpDuals = true
	return nil
}

func (s *fakeSolver) SetMIPGap(gap float64) error {
	s.calls = append(s.calls, "mipgap")
	s.mipGap = gap
	return nil
}

func (s *fakeSolver) SetOption(name string, value any) error {
	s.calls = append(s.calls, "option:"+name)
	if s.rejected[name] {
		return errFake
	}
	if s.options == nil {
		s.options = make(map[string]any)
	}
	s.options[name] = value
	return nil
}

func (s *fakeSolver) RelaxIntegrality() error {
	s.calls = append(s.calls, "relax")
	s.relaxed = true
	if s.model != nil {
		s.model.mip = false
	}
	return nil
}

func (s *fakeSolver) Optimize() error {
	s.calls = append(s.calls, "optimize")
	s.optimized++
	return s.optimizeErr
}

func (s *fakeSolver) Model() Model { return s.model }
