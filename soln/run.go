package soln

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"go.uber.org/zap"
)

// RelaxIntegralityOption is the request option that turns every integer
// variable continuous before the solve. It is consumed here and not passed
// to the solver.
const RelaxIntegralityOption = "relax_integrality"

// Request describes one solve. It is not modified by Run.
type Request struct {
	ModelFile     string         `yaml:"model"`
	WarmStartFile string         `yaml:"warmstart,omitempty"`
	MIPGap        *float64       `yaml:"mipgap,omitempty"`
	Options       map[string]any `yaml:"options,omitempty"`
	Suffixes      []string       `yaml:"suffixes,omitempty"`
}

// RunOption configures Run.
type RunOption func(*runConfig)

type runConfig struct {
	logger *zap.Logger
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *zap.Logger) RunOption {
	return func(c *runConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// Run solves the requested model with s and writes the result document to
// out. Any earlier file at out is removed first, so a failed run leaves no
// file behind; a present output file is always complete. Calls sharing an
// output path must not run concurrently.
func Run(req Request, s Solver, caps Capabilities, out string, opts ...RunOption) error {
	cfg := &runConfig{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(cfg)
	}
	log := cfg.logger

	if err := os.Remove(out); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove previous result: %w", err)
	}

	set, err := GateSuffixes(req.Suffixes)
	if err != nil {
		return err
	}
	if req.MIPGap != nil && !(*req.MIPGap > 0) {
		return fmt.Errorf("%w: %v", ErrInvalidMIPGap, *req.MIPGap)
	}

	if err := s.ReadModel(req.ModelFile); err != nil {
		return &ModelLoadError{Path: req.ModelFile, Err: err}
	}
	log.Debug("model loaded", zap.String("model", req.ModelFile))

	if err := ConfigureSuffixes(s, caps, set, log); err != nil {
		return fmt.Errorf("configure suffixes: %w", err)
	}

	if req.WarmStartFile != "" {
		if err := s.ReadWarmStart(req.WarmStartFile); err != nil {
			return fmt.Errorf("read warm start %s: %w", req.WarmStartFile, err)
		}
	}

	if req.MIPGap != nil {
		if err := s.SetMIPGap(*req.MIPGap); err != nil {
			return fmt.Errorf("set mip gap: %w", err)
		}
	}

	// Option order is fixed so repeated runs configure the solver identically.
	keys := make([]string, 0, len(req.Options))
	for k := range req.Options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	relax := false
	for _, k := range keys {
		if k == RelaxIntegralityOption {
			relax = true
			continue
		}
		if err := s.SetOption(k, req.Options[k]); err != nil {
			log.Warn("solver option not accepted",
				zap.String("option", k),
				zap.Any("value", req.Options[k]),
				zap.Error(err))
		}
	}
	if relax {
		if err := s.RelaxIntegrality(); err != nil {
			return fmt.Errorf("relax integrality: %w", err)
		}
	}

	if err := s.Optimize(); err != nil {
		return fmt.Errorf("optimize: %w", err)
	}

	m := s.Model()
	outcome := MapStatus(m.Status())
	if _, known := statusTable[m.Status()]; !known {
		log.Warn("unknown native status", zap.Stringer("code", m.Status()))
	}
	log.Info("solve finished",
		zap.String("status", string(outcome.Status)),
		zap.String("termination_condition", string(outcome.Condition)),
		zap.Float64("runtime", m.Runtime()))

	doc := Extract(m, outcome, set)
	if err := WriteFile(out, doc); err != nil {
		return err
	}
	log.Debug("result written", zap.String("path", out), zap.Bool("solution", doc.Solution != nil))
	return nil
}
