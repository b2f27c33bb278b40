package soln

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var testCaps = Capabilities{Solver: "test", Version: Version{1, 7, 0}, QuadraticDuals: true}

func outPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "results.soln")
}

func assertNoFile(t *testing.T, path string) {
	t.Helper()
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "expected no file at %s", path)
}

func TestRun_OptimalLP(t *testing.T) {
	out := outPath(t)
	s := &fakeSolver{model: lpModel()}

	err := Run(Request{ModelFile: "lp.mps", Suffixes: []string{"dual"}}, s, testCaps, out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "section:solution\n")
	assert.Equal(t, 2, strings.Count(text, "\nconstraintdual: "))
	assert.Equal(t, 1, s.optimized)
}

func TestRun_InvalidSuffix(t *testing.T) {
	out := outPath(t)
	s := &fakeSolver{model: lpModel()}

	err := Run(Request{ModelFile: "lp.mps", Suffixes: []string{"dual", "bogus"}}, s, testCaps, out)

	var se *InvalidSuffixError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "bogus", se.Suffix)
	assert.Empty(t, s.calls, "solver must not be touched")
	assertNoFile(t, out)
}

func TestRun_ModelLoadError(t *testing.T) {
	out := outPath(t)
	s := &fakeSolver{model: lpModel(), readErr: errFake}

	err := Run(Request{ModelFile: "missing.mps"}, s, testCaps, out)

	var le *ModelLoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "missing.mps", le.Path)
	assert.ErrorIs(t, err, errFake)
	assert.Equal(t, []string{"read"}, s.calls)
	assertNoFile(t, out)
}

func TestRun_InvalidMIPGap(t *testing.T) {
	out := outPath(t)
	s := &fakeSolver{model: lpModel()}
	gap := 0.0

	err := Run(Request{ModelFile: "lp.mps", MIPGap: &gap}, s, testCaps, out)
	assert.ErrorIs(t, err, ErrInvalidMIPGap)
	assert.Empty(t, s.calls)
	assertNoFile(t, out)
}

func TestRun_OptimizeErrorWritesNothing(t *testing.T) {
	out := outPath(t)
	s := &fakeSolver{model: lpModel(), optimizeErr: errFake}

	err := Run(Request{ModelFile: "lp.mps"}, s, testCaps, out)
	assert.ErrorIs(t, err, errFake)
	assertNoFile(t, out)
}

func TestRun_CallOrder(t *testing.T) {
	gap := 0.01
	s := &fakeSolver{model: lpModel(), qcons: true}
	req := Request{
		ModelFile:     "qp.lp",
		WarmStartFile: "start.sol",
		MIPGap:        &gap,
		Options: map[string]any{
			"time_limit":           60.0,
			"presolve":             "off",
			RelaxIntegralityOption: true,
		},
		Suffixes: []string{"rc"},
	}

	require.NoError(t, Run(req, s, testCaps, outPath(t)))

	assert.Equal(t, []string{
		"read",
		"qcpdual",
		"warmstart",
		"mipgap",
		"option:presolve",
		"option:time_limit",
		"relax",
		"optimize",
	}, s.calls)
	assert.Equal(t, 0.01, s.mipGap)
	assert.Equal(t, "start.sol", s.warmStarted)
	assert.Equal(t, map[string]any{"time_limit": 60.0, "presolve": "off"}, s.options)
	assert.True(t, s.relaxed)
}

func TestRun_RejectedOptionIsLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	s := &fakeSolver{model: lpModel(), rejected: map[string]bool{"no_such_option": true}}
	out := outPath(t)

	req := Request{ModelFile: "lp.mps", Options: map[string]any{"no_such_option": 1}}
	require.NoError(t, Run(req, s, testCaps, out, WithLogger(zap.New(core))))

	entries := logs.FilterMessage("solver option not accepted").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "no_such_option", entries[0].ContextMap()["option"])
	_, err := os.Stat(out)
	assert.NoError(t, err)
}

func TestRun_UnknownStatusIsLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	m := lpModel()
	m.status = NativeStatus(99)
	m.solutions = 0
	s := &fakeSolver{model: m}
	out := outPath(t)

	require.NoError(t, Run(Request{ModelFile: "lp.mps"}, s, testCaps, out, WithLogger(zap.New(core))))

	assert.Equal(t, 1, logs.FilterMessage("unknown native status").Len())
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "status: error\n")
	assert.Contains(t, string(data), "termination_condition: error\n")
	assert.NotContains(t, string(data), "section:solution")
}

func TestRun_RelaxIntegralityRestoresDuals(t *testing.T) {
	m := lpModel()
	m.mip = true
	s := &fakeSolver{model: m}
	out := outPath(t)

	req := Request{
		ModelFile: "mip.mps",
		Options:   map[string]any{RelaxIntegralityOption: 1},
		Suffixes:  []string{"dual"},
	}
	require.NoError(t, Run(req, s, testCaps, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "constraintdual: c1 : 0.25\n")
}

func TestRun_SolverErrorStatusWritesDocument(t *testing.T) {
	for _, code := range []NativeStatus{NativeModelError, NativePresolveError, NativeSolveError, NativePostsolveError} {
		t.Run(code.String(), func(t *testing.T) {
			m := lpModel()
			m.status = code
			m.objOK = false
			m.solutions = 0
			s := &fakeSolver{model: m}
			out := outPath(t)

			require.NoError(t, Run(Request{ModelFile: "lp.mps"}, s, testCaps, out))

			data, err := os.ReadFile(out)
			require.NoError(t, err)
			assert.Contains(t, string(data), "status: error\n")
			assert.Contains(t, string(data), "termination_condition: error\n")
			assert.NotContains(t, string(data), "section:solution")
		})
	}
}

func TestRun_FailureRemovesPreviousResult(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		s    *fakeSolver
	}{
		{"invalid suffix", Request{ModelFile: "lp.mps", Suffixes: []string{"du"}}, &fakeSolver{model: lpModel()}},
		{"model load", Request{ModelFile: "lp.mps"}, &fakeSolver{model: lpModel(), readErr: errFake}},
		{"optimize", Request{ModelFile: "lp.mps"}, &fakeSolver{model: lpModel(), optimizeErr: errFake}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := outPath(t)
			require.NoError(t, os.WriteFile(out, []byte("section:problem\n"), 0o644))

			assert.Error(t, Run(tt.req, tt.s, testCaps, out))
			assertNoFile(t, out)
		})
	}
}
