package soln

import "go.uber.org/zap"

// Suffix names understood by GateSuffixes.
const (
	SuffixDual  = "dual"
	SuffixSlack = "slack"
	SuffixRC    = "rc"
)

// SuffixSet holds the post-solve data categories to extract.
type SuffixSet struct {
	Duals        bool
	Slacks       bool
	ReducedCosts bool
}

// GateSuffixes derives a SuffixSet from requested suffix names. Names must be
// exactly "dual", "slack" or "rc"; any other name fails the whole request.
func GateSuffixes(names []string) (SuffixSet, error) {
	var set SuffixSet
	for _, name := range names {
		switch name {
		case SuffixDual:
			set.Duals = true
		case SuffixSlack:
			set.Slacks = true
		case SuffixRC:
			set.ReducedCosts = true
		default:
			return SuffixSet{}, &InvalidSuffixError{Suffix: name}
		}
	}
	return set, nil
}

// ConfigureSuffixes enables dual computation on quadratic constraints when
// duals or reduced costs are requested and the loaded model needs it. It must
// run after the model is read and before Optimize.
func ConfigureSuffixes(s Solver, caps Capabilities, set SuffixSet, logger *zap.Logger) error {
	if !set.Duals && !set.ReducedCosts {
		return nil
	}
	if !s.HasQuadraticConstraints() {
		return nil
	}
	if !caps.QuadraticDuals {
		logger.Warn("quadratic constraint duals not supported by solver version",
			zap.String("solver", caps.Solver),
			zap.Stringer("version", caps.Version))
		return nil
	}
	logger.Debug("enabling quadratic constraint duals")
	return s.EnableQuadraticDuals()
}
