package density

import (
	"fmt"

	"github.com/carbocation/pfx"
)

// Aligned holds a set of densities resampled onto their common grid. Row i of
// Resampled corresponds to input density i. If the set of densities changes,
// align again: the rows are only valid for this Grid.
type Aligned struct {
	Grid      Grid
	Resampled [][]float64
}

// Align computes the common grid of the densities and resamples each of them
// onto it.
func Align(densities []Density) (Aligned, error) {
	grid, err := CommonGrid(densities)
	if err != nil {
		return Aligned{}, err
	}

	out := Aligned{
		Grid:      grid,
		Resampled: make([][]float64, 0, len(densities)),
	}

	for i, d := range densities {
		row, err := Resample(d, grid)
		if err != nil {
			return Aligned{}, pfx.Err(fmt.Errorf("density %d: %w", i, err))
		}
		out.Resampled = append(out.Resampled, row)
	}

	return out, nil
}

// Len is the number of aligned densities.
func (a Aligned) Len() int {
	return len(a.Resampled)
}

// Mean is the group mean density of the selected rows. See Aggregate.
func (a Aligned) Mean(selector []bool) ([]float64, error) {
	return Aggregate(a.Resampled, selector)
}

// Overall is the mean density across every aligned row.
func (a Aligned) Overall() ([]float64, error) {
	return Aggregate(a.Resampled, SelectAll(a.Len()))
}
