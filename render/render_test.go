package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/carbocation/c14misc/density"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	pngMagic = []byte("\x89PNG")
	pdfMagic = []byte("%PDF")
)

func triangle(t *testing.T, peak float64) density.Density {
	t.Helper()

	ages := []float64{peak - 40, peak - 20, peak, peak + 20, peak + 40}
	probs := []float64{0, 0.01, 0.02, 0.01, 0}
	d, err := density.New(ages, probs)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestParseColor(t *testing.T) {
	cases := []struct {
		In       string
		Expected drawing.Color
	}{
		{"", drawing.ColorBlack},
		{"blue", drawing.Color{R: 0, G: 0, B: 255, A: 255}},
		{"Indigo", drawing.Color{R: 0x4b, G: 0, B: 0x82, A: 255}},
		{"#ffa500", drawing.Color{R: 255, G: 0xa5, B: 0, A: 255}},
		{"0", drawing.Color{A: 255}},
		{"1", drawing.Color{R: 255, G: 255, B: 255, A: 255}},
		{"0.4", drawing.Color{R: 102, G: 102, B: 102, A: 255}},
	}

	for _, c := range cases {
		got, err := ParseColor(c.In)
		if err != nil {
			t.Errorf("%q: %v", c.In, err)
			continue
		}
		if got != c.Expected {
			t.Errorf("%q: expected %+v, got %+v", c.In, c.Expected, got)
		}
	}

	for _, in := range []string{"chartreuse-ish", "#12345", "#gggggg", "1.5", "-0.1"} {
		if _, err := ParseColor(in); err == nil {
			t.Errorf("Expected an error for %q", in)
		}
	}
}

func TestWithAlpha(t *testing.T) {
	c := drawing.ColorBlack
	if got := withAlpha(c, 0); got.A != 255 {
		t.Errorf("Alpha 0 should leave the color opaque, got %d", got.A)
	}
	if got := withAlpha(c, 0.5); got.A != 128 {
		t.Errorf("Expected alpha 128, got %d", got.A)
	}
}

func TestWindow(t *testing.T) {
	// A BP grid 500..502 maps to calendar years 1450, 1449, 1448
	years := []float64{1450, 1449, 1448}
	values := []float64{0.1, 0.2, 0.3}

	xs, ys := window(years, values, 0, 0)
	if len(xs) != 3 || xs[0] != 1448 || xs[2] != 1450 || ys[0] != 0.3 || ys[2] != 0.1 {
		t.Errorf("Unexpected full window %v %v", xs, ys)
	}

	xs, ys = window(years, values, 1449, 1450)
	if len(xs) != 2 || xs[0] != 1449 || ys[0] != 0.2 {
		t.Errorf("Unexpected window %v %v", xs, ys)
	}

	xs, _ = window([]float64{1, 2, 3}, values, 0, 0)
	if xs[0] != 1 || xs[2] != 3 {
		t.Errorf("An increasing input should stay increasing, got %v", xs)
	}
}

func TestTickStep(t *testing.T) {
	cases := []struct {
		Span     float64
		Expected float64
	}{
		{900, 100},
		{500, 50},
		{150, 20},
		{1000, 100},
		{35, 5},
	}

	for _, c := range cases {
		if got := tickStep(c.Span); got != c.Expected {
			t.Errorf("Span %v: expected %v, got %v", c.Span, c.Expected, got)
		}
	}
}

func TestRoundOut(t *testing.T) {
	lo, hi := roundOut(1012, 1389, 50)
	if lo != 1000 || hi != 1400 {
		t.Errorf("Expected 1000-1400, got %v-%v", lo, hi)
	}

	lo, hi = roundOut(1100, 1100, 50)
	if lo != 1100 || hi != 1150 {
		t.Errorf("Expected 1100-1150, got %v-%v", lo, hi)
	}
}

func TestRowFigureHeight(t *testing.T) {
	if got := rowFigureHeight(60); got != 1700 {
		t.Errorf("Expected 1700 pixels for 60 rows, got %d", got)
	}
	if got := rowFigureHeight(0); got != 100 {
		t.Errorf("Expected 100 pixels for 0 rows, got %d", got)
	}
}

func TestDensities(t *testing.T) {
	grid := density.NewGrid(500, 700)
	values := make([]float64, len(grid))
	for i := range values {
		values[i] = float64(i) / 1000
	}

	lines := []Line{
		{Name: "All", Color: "black", Values: values},
		{Name: "Silvernale", Color: "blue", Alpha: 0.5, Values: values},
	}

	var buf bytes.Buffer
	if err := Densities(&buf, grid, lines, Options{}); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		t.Error("Expected PNG output")
	}

	buf.Reset()
	if err := Densities(&buf, grid, lines, Options{Format: "svg", XMin: 1300, XMax: 1400}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "<svg") {
		t.Error("Expected SVG output")
	}

	buf.Reset()
	if err := Densities(&buf, grid, lines, Options{Format: "pdf", XMin: 1300, XMax: 1400}); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pdfMagic) {
		t.Error("Expected PDF output")
	}

	buf.Reset()
	if err := Densities(&buf, grid, lines, Options{Format: "jpeg"}); err == nil || buf.Len() != 0 {
		t.Errorf("Expected an error and no output for jpeg, got %v", err)
	}
}

func TestDensitiesErrors(t *testing.T) {
	grid := density.NewGrid(500, 700)
	good := make([]float64, len(grid))

	cases := map[string][]Line{
		"no lines":     nil,
		"wrong length": {{Name: "short", Values: []float64{1, 2}}},
		"bad color":    {{Name: "bad", Color: "nope", Values: good}},
	}

	for name, lines := range cases {
		var buf bytes.Buffer
		if err := Densities(&buf, grid, lines, Options{}); err == nil {
			t.Errorf("%s: expected an error", name)
		}
		if buf.Len() != 0 {
			t.Errorf("%s: expected nothing to be written", name)
		}
	}

	var buf bytes.Buffer
	lines := []Line{{Name: "outside", Values: good}}
	if err := Densities(&buf, grid, lines, Options{XMin: 100, XMax: 200}); err == nil {
		t.Error("Expected an error for a window outside the grid")
	}
}

func TestRidges(t *testing.T) {
	ridges := []Ridge{
		{Label: "13GD0002 F1: 10cm", Density: triangle(t, 600), RawAge: 640},
		{Label: "13GD0002 F2: 20cm", Density: triangle(t, 750), RawAge: 800},
	}

	var buf bytes.Buffer
	if err := Ridges(&buf, ridges, true, Options{}); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		t.Error("Expected PNG output")
	}

	buf.Reset()
	if err := Ridges(&buf, ridges, false, Options{XMin: 800, XMax: 1700}); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		t.Error("Expected PNG output")
	}

	buf.Reset()
	if err := Ridges(&buf, ridges, false, Options{Format: "pdf"}); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pdfMagic) {
		t.Error("Expected PDF output")
	}

	buf.Reset()
	if err := Ridges(&buf, ridges, false, Options{Format: "svg"}); err == nil || buf.Len() != 0 {
		t.Errorf("Expected an error and no output for svg, got %v", err)
	}

	if err := Ridges(&buf, nil, false, Options{}); err == nil {
		t.Error("Expected an error with no ridges")
	}

	bad := []Ridge{{Label: "empty", RawAge: 600}}
	if err := Ridges(&buf, bad, false, Options{}); err == nil {
		t.Error("Expected an error for an empty density")
	}
}

func TestRidgeExtent(t *testing.T) {
	ridges := []Ridge{
		{Density: triangle(t, 600), RawAge: 700},
	}

	// Densities span 560..640 BP (1310..1390 AD); the raw age is 1250 AD
	lo, hi := ridgeExtent(ridges)
	if lo != 1250 || hi != 1400 {
		t.Errorf("Expected 1250-1400, got %v-%v", lo, hi)
	}
}

func TestDates(t *testing.T) {
	rows := []DateRow{
		{Label: "a", RawAge: 640, OneSigmaLow: 1290, OneSigmaHigh: 1390, TwoSigmaLow: 1280, TwoSigmaHigh: 1400},
		{Label: "b", RawAge: 800, OneSigmaLow: 1220, OneSigmaHigh: 1260, TwoSigmaLow: 1160, TwoSigmaHigh: 1280},
	}

	var buf bytes.Buffer
	if err := Dates(&buf, rows, Options{}); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		t.Error("Expected PNG output")
	}

	lo, hi := dateExtent(rows)
	if lo != 1150 || hi != 1400 {
		t.Errorf("Expected 1150-1400, got %v-%v", lo, hi)
	}

	buf.Reset()
	if err := Dates(&buf, rows, Options{Format: "pdf"}); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pdfMagic) {
		t.Error("Expected PDF output")
	}

	inverted := []DateRow{{Label: "x", RawAge: 600, TwoSigmaLow: 1400, TwoSigmaHigh: 1300}}
	if err := Dates(&buf, inverted, Options{}); err == nil {
		t.Error("Expected an error for an inverted range")
	}
}

func TestDatesPartialRanges(t *testing.T) {
	cases := []struct {
		Name   string
		Row    DateRow
		Lo, Hi float64
	}{
		// The raw age is 1310 AD, inside the 1-sigma range
		{"1-sigma only", DateRow{Label: "a", RawAge: 640, OneSigmaLow: 1290, OneSigmaHigh: 1390}, 1250, 1400},
		{"2-sigma only", DateRow{Label: "b", RawAge: 640, TwoSigmaLow: 1160, TwoSigmaHigh: 1420}, 1150, 1450},
		// A lone end is not a range and does not widen the window
		{"one end", DateRow{Label: "c", RawAge: 640, OneSigmaLow: 900, TwoSigmaHigh: 1700}, 1300, 1350},
	}

	for _, c := range cases {
		rows := []DateRow{c.Row}

		if lo, hi := dateExtent(rows); lo != c.Lo || hi != c.Hi {
			t.Errorf("%s: expected %v-%v, got %v-%v", c.Name, c.Lo, c.Hi, lo, hi)
		}

		var buf bytes.Buffer
		if err := Dates(&buf, rows, Options{}); err != nil {
			t.Errorf("%s: %v", c.Name, err)
		}
	}

	// An inverted 1-sigma range is an error even without a 2-sigma range
	inverted := []DateRow{{Label: "x", RawAge: 600, OneSigmaLow: 1400, OneSigmaHigh: 1300}}
	if err := Dates(&bytes.Buffer{}, inverted, Options{}); err == nil {
		t.Error("Expected an error for an inverted 1-sigma range")
	}
}
