package density

import (
	"math"
)

// Grid is the common age axis: consecutive integer years BP, increasing.
type Grid []int

// CommonGrid spans every input density, from the floor of the youngest age to
// the ceiling of the oldest age, inclusive, in steps of one year.
func CommonGrid(densities []Density) (Grid, error) {
	if len(densities) == 0 {
		return nil, ErrEmptyInput
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, d := range densities {
		if len(d) == 0 {
			continue
		}
		lo = math.Min(lo, d.MinAge())
		hi = math.Max(hi, d.MaxAge())
	}

	// Every density was empty
	if math.IsInf(lo, 1) {
		return nil, ErrEmptyInput
	}

	return NewGrid(int(math.Floor(lo)), int(math.Ceil(hi))), nil
}

// NewGrid returns the integer years from first to last, inclusive.
func NewGrid(first, last int) Grid {
	if last < first {
		return Grid{}
	}

	out := make(Grid, 0, last-first+1)
	for year := first; year <= last; year++ {
		out = append(out, year)
	}

	return out
}

// Floats returns the grid as float64 ages BP.
func (g Grid) Floats() []float64 {
	out := make([]float64, len(g))
	for i, v := range g {
		out[i] = float64(v)
	}
	return out
}

// CalendarYears converts the grid to years AD/CE. Since ages BP count
// backwards, the result is decreasing.
func (g Grid) CalendarYears() []float64 {
	out := make([]float64, len(g))
	for i, v := range g {
		out[i] = float64(Epoch - v)
	}
	return out
}
