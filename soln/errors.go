package soln

import (
	"errors"
	"fmt"
)

// ErrInvalidMIPGap is returned when a request carries a non-positive MIP gap.
var ErrInvalidMIPGap = errors.New("soln: mip gap must be positive")

// InvalidSuffixError reports a requested suffix outside the supported
// vocabulary. The request is rejected as a whole.
type InvalidSuffixError struct {
	Suffix string
}

func (e *InvalidSuffixError) Error() string {
	return fmt.Sprintf("soln: cannot extract solution suffix %q", e.Suffix)
}

// ModelLoadError reports a model file the solver could not read.
type ModelLoadError struct {
	Path string
	Err  error
}

func (e *ModelLoadError) Error() string {
	return fmt.Sprintf("soln: failed to load model file %s: %v", e.Path, e.Err)
}

func (e *ModelLoadError) Unwrap() error { return e.Err }
