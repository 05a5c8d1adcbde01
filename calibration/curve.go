// Package calibration converts radiocarbon ages into calendar-age probability
// densities using a named calibration curve such as IntCal13.
package calibration

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/c14misc"
	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/interp"
)

// CurvePoint is one row of a calibration curve: at CalBP calendar years before
// present, the atmosphere had radiocarbon age C14Age with 1-sigma
// uncertainty Sigma. The Delta14C columns are carried but unused.
type CurvePoint struct {
	CalBP      float64 `csv:"cal_bp"`
	C14Age     float64 `csv:"c14_age"`
	Sigma      float64 `csv:"error"`
	Delta14C   float64 `csv:"delta_14c"`
	DeltaSigma float64 `csv:"delta_sigma"`
}

// Curve is a calibration curve, identified by name (e.g., "intcal13"), with
// points sorted by increasing CalBP.
type Curve struct {
	Name   string
	Points []CurvePoint
}

// ParseCurve reads a calibration curve in the comma-delimited .14c format
// distributed by IntCal: lines starting with # are comments, and each data
// line holds CAL BP, 14C age, Error, Delta 14C, Sigma.
func ParseCurve(name string, r io.Reader) (*Curve, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	rows := []*CurvePoint{}
	if err := gocsv.UnmarshalCSVWithoutHeaders(cr, &rows); err != nil {
		return nil, pfx.Err(fmt.Errorf("curve %s: %w", name, err))
	}

	out := &Curve{Name: name, Points: make([]CurvePoint, 0, len(rows))}
	for _, row := range rows {
		out.Points = append(out.Points, *row)
	}

	if len(out.Points) < 2 {
		return nil, fmt.Errorf("curve %s: expected at least 2 points, found %d", name, len(out.Points))
	}

	sort.Slice(out.Points, func(i, j int) bool { return out.Points[i].CalBP < out.Points[j].CalBP })

	for i := 1; i < len(out.Points); i++ {
		if out.Points[i].CalBP == out.Points[i-1].CalBP {
			return nil, fmt.Errorf("curve %s: duplicate CAL BP %v", name, out.Points[i].CalBP)
		}
	}

	return out, nil
}

// LoadCurve reads a curve from a local path or a gs:// URL, decompressing it
// if needed. The curve is named after the file, so
// "gs://bucket/intcal13.14c.gz" becomes "intcal13".
func LoadCurve(path string, client *storage.Client) (*Curve, error) {
	raw, err := c14misc.MaybeReadFromGoogleStorage(path, client)
	if err != nil {
		return nil, err
	}

	b, err := c14misc.MaybeDecompress(raw)
	if err != nil {
		return nil, err
	}

	return ParseCurve(CurveName(path), bytes.NewReader(b))
}

// CurveName derives a curve's name from its file name by dropping the
// directory and every extension.
func CurveName(path string) string {
	base := filepath.Base(path)
	if i := strings.Index(base, "."); i > 0 {
		base = base[:i]
	}
	return strings.ToLower(base)
}

// C14Range returns the youngest and oldest radiocarbon ages on the curve.
func (c *Curve) C14Range() (lo, hi float64) {
	lo, hi = c.Points[0].C14Age, c.Points[0].C14Age
	for _, p := range c.Points {
		if p.C14Age < lo {
			lo = p.C14Age
		}
		if p.C14Age > hi {
			hi = p.C14Age
		}
	}
	return lo, hi
}

// Resolve returns a copy of the curve linearly interpolated onto calendar
// years spaced step apart. IntCal13 is tabulated every 5 years over most of
// the Holocene; resolving it to 1 year gives smoother calendar densities.
func (c *Curve) Resolve(step float64) (*Curve, error) {
	if step <= 0 {
		return nil, fmt.Errorf("curve %s: resolution must be positive, got %v", c.Name, step)
	}

	xs := make([]float64, len(c.Points))
	ages := make([]float64, len(c.Points))
	sigmas := make([]float64, len(c.Points))
	for i, p := range c.Points {
		xs[i], ages[i], sigmas[i] = p.CalBP, p.C14Age, p.Sigma
	}

	var ageFit, sigmaFit interp.PiecewiseLinear
	if err := ageFit.Fit(xs, ages); err != nil {
		return nil, pfx.Err(err)
	}
	if err := sigmaFit.Fit(xs, sigmas); err != nil {
		return nil, pfx.Err(err)
	}

	first, last := xs[0], xs[len(xs)-1]
	out := &Curve{Name: c.Name, Points: make([]CurvePoint, 0, int((last-first)/step)+1)}
	for x := first; x <= last; x += step {
		out.Points = append(out.Points, CurvePoint{
			CalBP:  x,
			C14Age: ageFit.Predict(x),
			Sigma:  sigmaFit.Predict(x),
		})
	}

	return out, nil
}
