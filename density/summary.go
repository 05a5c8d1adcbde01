package density

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Mode returns the age BP at which d peaks. Ties go to the youngest age.
func (d Density) Mode() float64 {
	return d[floats.MaxIdx(d.Probs())].Age
}

// Mean returns the density-weighted mean age BP of d. The points are used as
// weights directly, which is adequate for the near-uniform spacing of
// calibration output.
func (d Density) Mean() float64 {
	return stat.Mean(d.Ages(), d.Probs())
}

// Peak is the largest density value in d.
func (d Density) Peak() float64 {
	return floats.Max(d.Probs())
}

// Normalized returns a copy of d scaled so that its peak equals height.
// Ridge plots draw every density at the same visual height this way.
func (d Density) Normalized(height float64) Density {
	out := make(Density, len(d))
	copy(out, d)

	peak := d.Peak()
	if peak == 0 {
		return out
	}

	for i := range out {
		out[i].P = out[i].P / peak * height
	}

	return out
}

// ModeOnGrid returns the grid year BP at which the values peak. values must
// be aligned with the grid.
func ModeOnGrid(grid Grid, values []float64) int {
	return grid[floats.MaxIdx(values)]
}

// MeanOnGrid returns the density-weighted mean year BP of grid-aligned values.
func MeanOnGrid(grid Grid, values []float64) float64 {
	return stat.Mean(grid.Floats(), values)
}
