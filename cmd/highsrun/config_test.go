package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartolsthoorn/highsrun/soln"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseOption(t *testing.T) {
	tests := []struct {
		in    string
		key   string
		value any
	}{
		{"presolve=off", "presolve", "off"},
		{"time_limit=60", "time_limit", 60},
		{"mip_rel_gap=0.5", "mip_rel_gap", 0.5},
		{"primal_feasibility_tolerance=1e-6", "primal_feasibility_tolerance", 1e-6},
		{"mip_detect_symmetry=false", "mip_detect_symmetry", false},
		{" solver = ipm ", "solver", "ipm"},
		{"log_file=", "log_file", ""},
		{"log_file=a=b", "log_file", "a=b"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			k, v, err := parseOption(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.key, k)
			assert.Equal(t, tt.value, v)
		})
	}
}

func TestParseOption_Invalid(t *testing.T) {
	for _, in := range []string{"presolve", "=1", ""} {
		_, _, err := parseOption(in)
		assert.Error(t, err, in)
	}
}

func TestBuildRequest_FlagsOnly(t *testing.T) {
	req, err := buildRequest(solveFlags{
		model:     "afiro.mps",
		mipGap:    0.01,
		mipGapSet: true,
		suffixes:  []string{"dual", "rc"},
		options:   []string{"time_limit=10"},
	})
	require.NoError(t, err)

	require.NotNil(t, req.MIPGap)
	assert.Equal(t, 0.01, *req.MIPGap)
	assert.Equal(t, "afiro.mps", req.ModelFile)
	assert.Equal(t, []string{"dual", "rc"}, req.Suffixes)
	assert.Equal(t, map[string]any{"time_limit": 10}, req.Options)
}

func TestBuildRequest_FlagsOverrideFiles(t *testing.T) {
	request := writeTemp(t, "req.yaml", `model: from-file.mps
warmstart: start.yaml
mipgap: 0.2
suffixes: [slack]
options:
  presolve: "on"
  threads: 2
`)
	options := writeTemp(t, "opts.yaml", "threads: 4\nsolver: simplex\n")

	req, err := buildRequest(solveFlags{
		request:     request,
		optionsFile: options,
		model:       "from-flag.mps",
		options:     []string{"solver=ipm"},
	})
	require.NoError(t, err)

	assert.Equal(t, "from-flag.mps", req.ModelFile)
	assert.Equal(t, "start.yaml", req.WarmStartFile)
	require.NotNil(t, req.MIPGap)
	assert.Equal(t, 0.2, *req.MIPGap)
	assert.Equal(t, []string{"slack"}, req.Suffixes)
	assert.Equal(t, map[string]any{"presolve": "on", "threads": 4, "solver": "ipm"}, req.Options)
}

func TestBuildRequest_Errors(t *testing.T) {
	_, err := buildRequest(solveFlags{})
	assert.ErrorContains(t, err, "no model file")

	_, err = buildRequest(solveFlags{model: "a.mps", options: []string{"bad"}})
	assert.ErrorContains(t, err, "invalid option")

	_, err = buildRequest(solveFlags{request: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.ErrorContains(t, err, "read request")

	bad := writeTemp(t, "bad.yaml", "model: [unterminated\n")
	_, err = buildRequest(solveFlags{request: bad})
	assert.ErrorContains(t, err, "read request")
}

func TestResultPath(t *testing.T) {
	assert.Equal(t, "out.soln", resultPath("out.soln", "model.mps"))
	assert.Equal(t, filepath.Join("dir", "model.soln"), resultPath("", filepath.Join("dir", "model.mps")))
	assert.Equal(t, "model.soln", resultPath("", "model"))
}

func TestPrintStatuses(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printStatuses(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, len(soln.NativeStatuses())+1)
	assert.True(t, strings.HasPrefix(lines[0], "CODE"))

	fields := strings.Fields(lines[int(soln.NativeOptimal)+1])
	assert.Equal(t, []string{"7", "Optimal", "ok", "optimal"}, fields[:4])
}
