package density

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Aggregate returns the mean resampled density of the rows chosen by the
// selector: the elementwise sum of the selected rows divided by how many were
// selected. The selector must have one entry per row. If nothing is
// selected, ErrEmptyGroup is returned.
func Aggregate(resampled [][]float64, selector []bool) ([]float64, error) {
	sum, n, err := sumSelected(resampled, selector)
	if err != nil {
		return nil, err
	}

	if n == 0 {
		return nil, ErrEmptyGroup
	}

	floats.Scale(1/float64(n), sum)

	return sum, nil
}

func sumSelected(resampled [][]float64, selector []bool) ([]float64, int, error) {
	if len(selector) != len(resampled) {
		return nil, 0, fmt.Errorf("selector has %d entries but there are %d resampled densities", len(selector), len(resampled))
	}

	var sum []float64
	n := 0
	for i, row := range resampled {
		if !selector[i] {
			continue
		}

		if sum == nil {
			sum = make([]float64, len(row))
		} else if len(row) != len(sum) {
			return nil, 0, fmt.Errorf("resampled density %d has length %d, expected %d", i, len(row), len(sum))
		}

		floats.Add(sum, row)
		n++
	}

	return sum, n, nil
}

// SelectAll returns a selector that chooses every one of n rows.
func SelectAll(n int) []bool {
	out := make([]bool, n)
	for i := range out {
		out[i] = true
	}
	return out
}
