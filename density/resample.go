package density

import (
	"github.com/carbocation/pfx"
	"gonum.org/v1/gonum/interp"
)

// Resample evaluates d on every year of the grid by piecewise-linear
// interpolation between its points. Grid years outside d's support are zero
// rather than extrapolated, so a density whose support misses the grid
// entirely yields all zeros. An error is returned only if d itself is
// malformed.
func Resample(d Density, grid Grid) ([]float64, error) {
	if err := d.Validate(); err != nil {
		return nil, pfx.Err(err)
	}

	out := make([]float64, len(grid))
	lo, hi := d.MinAge(), d.MaxAge()

	// A single point has no segment to interpolate along
	if len(d) == 1 {
		for i, year := range grid {
			if float64(year) == lo {
				out[i] = d[0].P
			}
		}
		return out, nil
	}

	var pl interp.PiecewiseLinear
	if err := pl.Fit(d.Ages(), d.Probs()); err != nil {
		return nil, pfx.Err(err)
	}

	for i, year := range grid {
		x := float64(year)
		if x < lo || x > hi {
			continue
		}
		out[i] = pl.Predict(x)
	}

	return out, nil
}
