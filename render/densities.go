// Package render draws calibrated radiocarbon densities and dates as static
// figures.
package render

import (
	"bytes"
	"fmt"
	"image/png"
	"io"

	"github.com/carbocation/c14misc/density"
	"github.com/carbocation/pfx"
	"github.com/wcharczuk/go-chart/v2"
)

// Line is one density curve on a chart. Values must be aligned with the grid
// the chart is drawn on.
type Line struct {
	Name   string
	Color  string
	Width  float64
	Alpha  float64
	Values []float64
}

// Options controls the size, labels, and calendar window of a figure.
type Options struct {
	Width  int
	Height int

	// Calendar years AD/CE to show. If both are zero, the full range is
	// shown.
	XMin float64
	XMax float64

	Title  string
	XLabel string
	YLabel string

	// "png" (default), "pdf" or "svg". Only density charts can be written as
	// svg.
	Format string
}

func (o Options) withDefaults(width, height int) Options {
	if o.Width == 0 {
		o.Width = width
	}
	if o.Height == 0 {
		o.Height = height
	}
	if o.XLabel == "" {
		o.XLabel = "Year [AD/CE]"
	}
	return o
}

// Densities draws the lines against calendar years AD/CE as a line chart with
// a legend, e.g. group mean densities produced by density.Aggregate.
func Densities(w io.Writer, grid density.Grid, lines []Line, opts Options) error {
	opts = opts.withDefaults(800, 400)
	if opts.YLabel == "" {
		opts.YLabel = "Probability density"
	}

	if len(lines) == 0 {
		return fmt.Errorf("no lines to draw")
	}

	years := grid.CalendarYears()

	series := make([]chart.Series, 0, len(lines))
	for _, line := range lines {
		if len(line.Values) != len(grid) {
			return fmt.Errorf("line %q has %d values but the grid has %d years", line.Name, len(line.Values), len(grid))
		}

		color, err := ParseColor(line.Color)
		if err != nil {
			return pfx.Err(fmt.Errorf("line %q: %w", line.Name, err))
		}

		xs, ys := window(years, line.Values, opts.XMin, opts.XMax)
		if len(xs) < 2 {
			return fmt.Errorf("line %q has fewer than 2 points between %v and %v", line.Name, opts.XMin, opts.XMax)
		}

		width := line.Width
		if width == 0 {
			width = 2
		}

		series = append(series, chart.ContinuousSeries{
			Name:    line.Name,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: withAlpha(color, line.Alpha),
				StrokeWidth: width,
			},
		})
	}

	graph := chart.Chart{
		Title:  opts.Title,
		Width:  opts.Width,
		Height: opts.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:           opts.XLabel,
			ValueFormatter: yearFormatter,
		},
		YAxis: chart.YAxis{
			Name:           opts.YLabel,
			ValueFormatter: densityFormatter,
		},
		Series: series,
	}

	if opts.XMin != 0 || opts.XMax != 0 {
		graph.XAxis.Range = &chart.ContinuousRange{Min: opts.XMin, Max: opts.XMax}
	}

	graph.Elements = []chart.Renderable{chart.LegendLeft(&graph)}

	var provider chart.RendererProvider
	switch opts.Format {
	case "", "png", "pdf":
		provider = chart.PNG
	case "svg":
		provider = chart.SVG
	default:
		return fmt.Errorf("format %q is not supported. Use png, svg or pdf", opts.Format)
	}

	// Render to a byte buffer so a failed render writes nothing
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(provider, buffer); err != nil {
		return pfx.Err(err)
	}

	if opts.Format == "pdf" {
		img, err := png.Decode(buffer)
		if err != nil {
			return pfx.Err(err)
		}
		return encode(w, img, opts.Format)
	}

	_, err := buffer.WriteTo(w)
	return err
}

// window returns the (year, value) pairs with years inside [lo, hi], sorted by
// increasing year. Calendar years derived from a BP grid arrive in decreasing
// order. If lo and hi are both zero, every pair is kept.
func window(years, values []float64, lo, hi float64) ([]float64, []float64) {
	keepAll := lo == 0 && hi == 0

	xs := make([]float64, 0, len(years))
	ys := make([]float64, 0, len(years))
	for i := len(years) - 1; i >= 0; i-- {
		if !keepAll && (years[i] < lo || years[i] > hi) {
			continue
		}
		xs = append(xs, years[i])
		ys = append(ys, values[i])
	}

	// Grids built some other way may already be increasing
	if len(xs) > 1 && xs[0] > xs[len(xs)-1] {
		for i, j := 0, len(xs)-1; i < j; i, j = i+1, j-1 {
			xs[i], xs[j] = xs[j], xs[i]
			ys[i], ys[j] = ys[j], ys[i]
		}
	}

	return xs, ys
}

func yearFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.0f", f)
	}
	return ""
}

func densityFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.4f", f)
	}
	return ""
}
