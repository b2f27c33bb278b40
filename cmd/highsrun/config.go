package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bartolsthoorn/highsrun/soln"
)

// solveFlags holds the raw flag values of the solve command.
type solveFlags struct {
	request     string
	model       string
	warmStart   string
	out         string
	optionsFile string
	mipGap      float64
	mipGapSet   bool
	suffixes    []string
	options     []string
}

// buildRequest assembles a request from the request file, the options file
// and the command line, in that order of increasing precedence.
func buildRequest(f solveFlags) (soln.Request, error) {
	var req soln.Request
	if f.request != "" {
		if err := readYAML(f.request, &req); err != nil {
			return soln.Request{}, fmt.Errorf("read request: %w", err)
		}
	}

	if f.optionsFile != "" {
		var opts map[string]any
		if err := readYAML(f.optionsFile, &opts); err != nil {
			return soln.Request{}, fmt.Errorf("read options: %w", err)
		}
		for k, v := range opts {
			setOption(&req, k, v)
		}
	}

	for _, kv := range f.options {
		k, v, err := parseOption(kv)
		if err != nil {
			return soln.Request{}, err
		}
		setOption(&req, k, v)
	}

	if f.model != "" {
		req.ModelFile = f.model
	}
	if f.warmStart != "" {
		req.WarmStartFile = f.warmStart
	}
	if f.mipGapSet {
		gap := f.mipGap
		req.MIPGap = &gap
	}
	if len(f.suffixes) > 0 {
		req.Suffixes = f.suffixes
	}

	if req.ModelFile == "" {
		return soln.Request{}, fmt.Errorf("no model file: set --model or model in the request file")
	}
	return req, nil
}

// resultPath returns the explicit output path, or the model path with its
// extension replaced by ".soln".
func resultPath(out, model string) string {
	if out != "" {
		return out
	}
	return strings.TrimSuffix(model, filepath.Ext(model)) + ".soln"
}

func setOption(req *soln.Request, name string, value any) {
	if req.Options == nil {
		req.Options = make(map[string]any)
	}
	req.Options[name] = value
}

// parseOption splits a key=value flag. The value is typed the way a YAML
// scalar would be: true/false, integers and floats keep their type, anything
// else stays a string.
func parseOption(kv string) (string, any, error) {
	k, v, ok := strings.Cut(kv, "=")
	k = strings.TrimSpace(k)
	if !ok || k == "" {
		return "", nil, fmt.Errorf("invalid option %q: want key=value", kv)
	}
	return k, parseScalar(strings.TrimSpace(v)), nil
}

func parseScalar(s string) any {
	var v any
	if err := yaml.Unmarshal([]byte(s), &v); err != nil || v == nil {
		return s
	}
	switch v.(type) {
	case bool, int, float64, string:
		return v
	default:
		return s
	}
}

func readYAML(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, v)
}
