package render

import (
	"fmt"
	"math"

	"github.com/carbocation/pfx"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// dpi converts the figure sizes, which follow the inch-based sizes of the
// published figures, into pixels.
const dpi = 100

// Font sizes in pixels for tick and row labels, and for the axis title.
const (
	labelSize = 12
	titleSize = 16
)

// rowFigure is a figure with one labelled row per sample, read top-down, and
// calendar years along the x axis.
type rowFigure struct {
	dc *gg.Context

	labelFace, titleFace font.Face

	left, right, top, bottom float64
	xmin, xmax               float64
	rows                     int
}

func newRowFigure(width, height int, labels []string, xmin, xmax float64) (*rowFigure, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("no rows to draw")
	}
	if xmax <= xmin {
		return nil, fmt.Errorf("invalid calendar window %v to %v", xmin, xmax)
	}

	labelFace, err := fontFace(labelSize)
	if err != nil {
		return nil, err
	}
	titleFace, err := fontFace(titleSize)
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(drawing.ColorWhite)
	dc.Clear()
	dc.SetFontFace(labelFace)

	labelWidth := 0.0
	for _, label := range labels {
		w, _ := dc.MeasureString(label)
		labelWidth = math.Max(labelWidth, w)
	}

	f := &rowFigure{
		dc:        dc,
		labelFace: labelFace,
		titleFace: titleFace,
		left:      labelWidth + 20,
		right:     float64(width) - 20,
		top:       40,
		bottom:    float64(height) - 60,
		xmin:      xmin,
		xmax:      xmax,
		rows:      len(labels),
	}

	if f.right-f.left < 50 || f.bottom-f.top < 10 {
		return nil, fmt.Errorf("a %dx%d figure is too small for %d rows", width, height, len(labels))
	}

	f.drawLabels(labels)

	return f, nil
}

// x maps a calendar year to a pixel column.
func (f *rowFigure) x(year float64) float64 {
	return f.left + (year-f.xmin)/(f.xmax-f.xmin)*(f.right-f.left)
}

// rowHeight is the pixel height of one row.
func (f *rowFigure) rowHeight() float64 {
	return (f.bottom - f.top) / float64(f.rows)
}

// y maps a 0-based row index to the pixel row of its centre. The first row
// is at the top.
func (f *rowFigure) y(row int) float64 {
	return f.top + (float64(row)+0.5)*f.rowHeight()
}

func (f *rowFigure) clip() {
	f.dc.DrawRectangle(f.left, f.top, f.right-f.left, f.bottom-f.top)
	f.dc.Clip()
}

func (f *rowFigure) drawLabels(labels []string) {
	f.dc.SetColor(drawing.ColorBlack)
	for i, label := range labels {
		f.dc.DrawStringAnchored(label, f.left-8, f.y(i), 1, 0.5)
	}
}

// drawAxes frames the plot with tick marks on every side and year labels
// along the bottom (and the top, if topLabels is set).
func (f *rowFigure) drawAxes(xlabel string, topLabels bool) {
	dc := f.dc
	dc.ResetClip()
	dc.SetColor(drawing.ColorBlack)
	dc.SetLineWidth(1)
	dc.DrawRectangle(f.left, f.top, f.right-f.left, f.bottom-f.top)
	dc.Stroke()

	step := tickStep(f.xmax - f.xmin)
	for year := math.Ceil(f.xmin/step) * step; year <= f.xmax; year += step {
		px := f.x(year)
		dc.DrawLine(px, f.bottom, px, f.bottom-5)
		dc.DrawLine(px, f.top, px, f.top+5)
		dc.Stroke()

		label := fmt.Sprintf("%.0f", year)
		dc.DrawStringAnchored(label, px, f.bottom+14, 0.5, 0.5)
		if topLabels {
			dc.DrawStringAnchored(label, px, f.top-14, 0.5, 0.5)
		}
	}

	for i := 0; i < f.rows; i++ {
		dc.DrawLine(f.left, f.y(i), f.left+5, f.y(i))
		dc.DrawLine(f.right, f.y(i), f.right-5, f.y(i))
	}
	dc.Stroke()

	dc.SetFontFace(f.titleFace)
	dc.DrawStringAnchored(xlabel, (f.left+f.right)/2, f.bottom+40, 0.5, 0.5)
	dc.SetFontFace(f.labelFace)
}

// drawMarker draws the black dot used for an uncalibrated age.
func (f *rowFigure) drawMarker(year float64, row int) {
	f.dc.SetColor(drawing.ColorBlack)
	f.dc.DrawCircle(f.x(year), f.y(row), 3.5)
	f.dc.Fill()
}

// tickStep picks a round spacing that puts roughly ten ticks across span
// years.
func tickStep(span float64) float64 {
	raw := span / 10
	magnitude := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 5, 10} {
		if step := m * magnitude; step >= raw {
			return step
		}
	}
	return 10 * magnitude
}

// rowFigureHeight is the pixel height of a figure with n rows: 16 inches for
// 60 rows plus an inch for the axes.
func rowFigureHeight(n int) int {
	return int((16*float64(n)/60 + 1) * dpi)
}

// fontFace returns the Go regular font at size pixels.
func fontFace(size float64) (font.Face, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, pfx.Err(err)
	}
	return truetype.NewFace(f, &truetype.Options{Size: size}), nil
}
