package render

import (
	"fmt"
	"io"
	"math"

	"github.com/carbocation/c14misc/density"
)

// DateRow is one row of a date plot. RawAge is the uncalibrated age in years
// BP; the sigma ranges are calendar years AD/CE. A range is drawn only when
// both of its ends are non-zero.
type DateRow struct {
	Label string

	RawAge float64

	OneSigmaLow  float64
	OneSigmaHigh float64
	TwoSigmaLow  float64
	TwoSigmaHigh float64
}

// Dates draws the 2-sigma calendar range of each row as a thin grey bar, the
// 1-sigma range as a thicker bar on top, and the uncalibrated age as a dot.
// The first row is at the top.
func Dates(w io.Writer, rows []DateRow, opts Options) error {
	opts = opts.withDefaults(8*dpi, rowFigureHeight(len(rows)))

	labels := make([]string, len(rows))
	for i, r := range rows {
		if (r.hasTwoSigma() && r.TwoSigmaHigh < r.TwoSigmaLow) || (r.hasOneSigma() && r.OneSigmaHigh < r.OneSigmaLow) {
			return fmt.Errorf("row %q has an inverted sigma range", r.Label)
		}
		labels[i] = r.Label
	}

	xmin, xmax := opts.XMin, opts.XMax
	if xmin == 0 && xmax == 0 {
		xmin, xmax = dateExtent(rows)
	}

	f, err := newRowFigure(opts.Width, opts.Height, labels, xmin, xmax)
	if err != nil {
		return err
	}
	dc := f.dc

	grey, _ := ParseColor("0.4")

	f.clip()
	dc.SetColor(grey)
	for i, r := range rows {
		y := f.y(i)

		if r.hasTwoSigma() {
			dc.SetLineWidth(2)
			dc.DrawLine(f.x(r.TwoSigmaLow), y, f.x(r.TwoSigmaHigh), y)
			dc.Stroke()
		}

		if r.hasOneSigma() {
			dc.SetLineWidth(4)
			dc.DrawLine(f.x(r.OneSigmaLow), y, f.x(r.OneSigmaHigh), y)
			dc.Stroke()
		}
	}
	for i, r := range rows {
		f.drawMarker(density.Epoch-r.RawAge, i)
	}

	f.drawAxes(opts.XLabel, false)

	return encode(w, dc.Image(), opts.Format)
}

func (r DateRow) hasOneSigma() bool {
	return r.OneSigmaLow != 0 && r.OneSigmaHigh != 0
}

func (r DateRow) hasTwoSigma() bool {
	return r.TwoSigmaLow != 0 && r.TwoSigmaHigh != 0
}

// dateExtent is the calendar window, rounded out to 50 years, that contains
// every drawn range and raw age.
func dateExtent(rows []DateRow) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, r := range rows {
		raw := density.Epoch - r.RawAge
		lo, hi = math.Min(lo, raw), math.Max(hi, raw)

		if r.hasOneSigma() {
			lo, hi = math.Min(lo, r.OneSigmaLow), math.Max(hi, r.OneSigmaHigh)
		}
		if r.hasTwoSigma() {
			lo, hi = math.Min(lo, r.TwoSigmaLow), math.Max(hi, r.TwoSigmaHigh)
		}
	}
	return roundOut(lo, hi, 50)
}
