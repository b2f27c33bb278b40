package highs

import (
	"math"
	"sort"
)

// Inf returns positive infinity, suitable for unbounded variable bounds.
func Inf() float64 {
	return math.Inf(1)
}

// NegInf returns negative infinity, suitable for unbounded variable bounds.
func NegInf() float64 {
	return math.Inf(-1)
}

// nonzerosToCSR converts a slice of Nonzero elements to compressed sparse row
// format with one start entry for each of the n rows, empty rows included.
// If triangular is true, it validates that the matrix is upper triangular.
func nonzerosToCSR(nz []Nonzero, n int, triangular bool) (start, index []int, value []float64, err error) {
	if len(nz) == 0 {
		return make([]int, n), nil, nil, nil
	}

	// Sort by row, then by column
	sorted := make([]Nonzero, len(nz))
	copy(sorted, nz)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Row != sorted[j].Row {
			return sorted[i].Row < sorted[j].Row
		}
		return sorted[i].Col < sorted[j].Col
	})

	// Validate and deduplicate
	filtered := make([]Nonzero, 0, len(sorted))
	for _, e := range sorted {
		if e.Row < 0 || e.Col < 0 {
			return nil, nil, nil, newErrorMsg("nonzerosToCSR", "negative row or column index")
		}
		if e.Row >= n {
			return nil, nil, nil, newErrorMsg("nonzerosToCSR", "row index out of range")
		}
		if triangular && e.Row > e.Col {
			return nil, nil, nil, newErrorMsg("nonzerosToCSR", "Hessian must be upper triangular")
		}
		// Merge duplicates (keep last value)
		if len(filtered) > 0 && filtered[len(filtered)-1].Row == e.Row && filtered[len(filtered)-1].Col == e.Col {
			filtered[len(filtered)-1].Val = e.Val
		} else {
			filtered = append(filtered, e)
		}
	}

	start = make([]int, n)
	index = make([]int, len(filtered))
	value = make([]float64, len(filtered))

	next := 0
	for i, e := range filtered {
		for next <= e.Row {
			start[next] = i
			next++
		}
		index[i] = e.Col
		value[i] = e.Val
	}
	for ; next < n; next++ {
		start[next] = len(filtered)
	}

	return start, index, value, nil
}

// expandSlice expands a slice to length n if it's empty, filling with fillValue.
// Returns the original slice if it already has length n.
// Returns an error if the slice has a non-zero length that differs from n.
func expandSlice(n int, slice []float64, fillValue float64) ([]float64, error) {
	if len(slice) == n {
		return slice, nil
	}
	if len(slice) == 0 {
		result := make([]float64, n)
		for i := range result {
			result[i] = fillValue
		}
		return result, nil
	}
	return nil, newErrorMsg("expandSlice", "inconsistent slice length")
}

// maxRowCol finds the maximum row and column indices from a slice of nonzeros.
func maxRowCol(nz []Nonzero) (maxRow, maxCol int) {
	maxRow, maxCol = -1, -1
	for _, n := range nz {
		if n.Row > maxRow {
			maxRow = n.Row
		}
		if n.Col > maxCol {
			maxCol = n.Col
		}
	}
	return maxRow, maxCol
}
