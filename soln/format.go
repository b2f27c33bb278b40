package soln

import (
	"math"
	"strconv"
	"strings"
)

// NoValue marks a value the solver could not provide.
const NoValue = "None"

// FormatFloat renders v as the shortest decimal text that round-trips,
// keeping a trailing ".0" on integral values and switching to exponent form
// outside [1e-4, 1e16). Infinities are "inf" and "-inf".
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case v == 0:
		if math.Signbit(v) {
			return "-0.0"
		}
		return "0.0"
	}
	abs := math.Abs(v)
	if abs < 1e-4 || abs >= 1e16 {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func formatOptional(v float64, ok bool) string {
	if !ok {
		return NoValue
	}
	return FormatFloat(v)
}
