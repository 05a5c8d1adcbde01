package render

import (
	"fmt"
	"io"
	"math"

	"github.com/carbocation/c14misc/density"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ridgeHalfHeight is the peak height of each mirrored density, as a fraction
// of the row spacing.
const ridgeHalfHeight = 0.4

// Ridge is one row of a ridge plot: a sample's calibrated density (years BP)
// and its uncalibrated age (years BP).
type Ridge struct {
	Label   string
	Density density.Density
	RawAge  float64
}

// Ridges draws each calibrated density scaled to a common peak height and
// mirrored about its row, with the uncalibrated age marked as a dot. The first
// ridge is the top row. If opts does not set a size, the width is 8 inches
// and the height grows with the number of rows.
func Ridges(w io.Writer, ridges []Ridge, legend bool, opts Options) error {
	opts = opts.withDefaults(8*dpi, rowFigureHeight(len(ridges)))

	labels := make([]string, len(ridges))
	for i, r := range ridges {
		if len(r.Density) == 0 {
			return fmt.Errorf("ridge %q has an empty density", r.Label)
		}
		labels[i] = r.Label
	}

	xmin, xmax := opts.XMin, opts.XMax
	if xmin == 0 && xmax == 0 {
		xmin, xmax = ridgeExtent(ridges)
	}

	f, err := newRowFigure(opts.Width, opts.Height, labels, xmin, xmax)
	if err != nil {
		return err
	}
	dc := f.dc

	grey, _ := ParseColor("0.5")

	f.clip()
	for i, r := range ridges {
		scaled := r.Density.Normalized(ridgeHalfHeight * f.rowHeight())
		centre := f.y(i)

		dc.NewSubPath()
		for _, p := range scaled {
			dc.LineTo(f.x(density.Epoch-p.Age), centre-p.P)
		}
		for k := len(scaled) - 1; k >= 0; k-- {
			p := scaled[k]
			dc.LineTo(f.x(density.Epoch-p.Age), centre+p.P)
		}
		dc.ClosePath()
		dc.SetColor(grey)
		dc.Fill()

		f.drawMarker(density.Epoch-r.RawAge, i)
	}

	f.drawAxes(opts.XLabel, true)

	if legend {
		drawRidgeLegend(f, grey)
	}

	return encode(w, dc.Image(), opts.Format)
}

func drawRidgeLegend(f *rowFigure, grey drawing.Color) {
	dc := f.dc
	x, y := f.right-200, f.top+15

	dc.SetColor(drawing.ColorWhite)
	dc.DrawRectangle(x-8, y-10, 196, 40)
	dc.Fill()

	dc.SetColor(grey)
	dc.DrawRectangle(x, y-5, 14, 10)
	dc.Fill()
	dc.SetColor(drawing.ColorBlack)
	dc.DrawStringAnchored("Calendar age probability", x+22, y, 0, 0.5)

	dc.DrawCircle(x+7, y+20, 3.5)
	dc.Fill()
	dc.DrawStringAnchored("Uncalibrated 14C age", x+22, y+20, 0, 0.5)
}

// ridgeExtent is the calendar window, rounded out to 50 years, that contains
// every density and raw age.
func ridgeExtent(ridges []Ridge) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, r := range ridges {
		lo = math.Min(lo, math.Min(density.Epoch-r.Density.MaxAge(), density.Epoch-r.RawAge))
		hi = math.Max(hi, math.Max(density.Epoch-r.Density.MinAge(), density.Epoch-r.RawAge))
	}
	return roundOut(lo, hi, 50)
}

// roundOut widens [lo, hi] to multiples of step, keeping it at least one step
// wide.
func roundOut(lo, hi, step float64) (float64, float64) {
	lo, hi = math.Floor(lo/step)*step, math.Ceil(hi/step)*step
	if hi <= lo {
		hi = lo + step
	}
	return lo, hi
}
