package calibration

import (
	"fmt"
	"math"

	"github.com/BenLubar/memoize"
	"github.com/carbocation/c14misc/density"
	"github.com/carbocation/pfx"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultCutoff trims calendar densities to the span where they exceed this
// fraction of their peak.
const DefaultCutoff = 1e-4

// outOfRangeSigmas is how far (in combined standard deviations) a raw age may
// fall beyond the curve's radiocarbon range before calibration is refused.
const outOfRangeSigmas = 4.0

// Calibrator maps raw radiocarbon ages onto calendar-age densities with a
// fixed curve. It is not safe for concurrent use.
type Calibrator struct {
	Curve  *Curve
	Cutoff float64

	c14Lo, c14Hi float64
	maxSigma     float64
	memoized     func(float64, float64) density.Density
}

// NewCalibrator prepares a calibrator for the curve. cutoff <= 0 means
// DefaultCutoff.
func NewCalibrator(curve *Curve, cutoff float64) (*Calibrator, error) {
	if curve == nil || len(curve.Points) < 2 {
		return nil, fmt.Errorf("a calibration curve with at least 2 points is required")
	}

	if cutoff <= 0 {
		cutoff = DefaultCutoff
	}

	c := &Calibrator{Curve: curve, Cutoff: cutoff}
	c.c14Lo, c.c14Hi = curve.C14Range()
	for _, p := range curve.Points {
		c.maxSigma = math.Max(c.maxSigma, p.Sigma)
	}

	// Radiocarbon ages are usually reported to the nearest 5 or 10 years, so
	// the same (age, sigma) pair recurs often within one site.
	c.memoized = memoize.Memoize(c.calibrate).(func(float64, float64) density.Density)

	return c, nil
}

// Calibrate returns the calendar-age density (years BP) of a radiocarbon age
// with 1-sigma uncertainty sigma. The density integrates to 1. The returned
// Density may be shared with other callers and must not be modified.
func (c *Calibrator) Calibrate(age, sigma float64) (density.Density, error) {
	if sigma <= 0 || math.IsNaN(sigma) {
		return nil, fmt.Errorf("sigma must be positive, got %v", sigma)
	}

	if math.IsNaN(age) {
		return nil, fmt.Errorf("age is not a number")
	}

	reach := outOfRangeSigmas * math.Hypot(sigma, c.maxSigma)
	if age < c.c14Lo-reach || age > c.c14Hi+reach {
		return nil, fmt.Errorf("age %v±%v is outside the %s curve range (%v to %v)", age, sigma, c.Curve.Name, c.c14Lo, c.c14Hi)
	}

	out := c.memoized(age, sigma)
	if out == nil {
		return nil, pfx.Err(fmt.Errorf("age %v±%v has no probability mass on the %s curve", age, sigma, c.Curve.Name))
	}

	return out, nil
}

// calibrate computes, at every curve point, the likelihood that the sample's
// raw age was drawn from the curve's radiocarbon age there, with the sample
// and curve uncertainties combined in quadrature. Returns nil if the density
// underflows everywhere.
func (c *Calibrator) calibrate(age, sigma float64) density.Density {
	n := len(c.Curve.Points)
	calBP := make([]float64, n)
	p := make([]float64, n)

	for i, pt := range c.Curve.Points {
		calBP[i] = pt.CalBP
		p[i] = distuv.Normal{Mu: pt.C14Age, Sigma: math.Hypot(sigma, pt.Sigma)}.Prob(age)
	}

	area := integrate.Trapezoidal(calBP, p)
	if area <= 0 || math.IsNaN(area) {
		return nil
	}
	floats.Scale(1/area, p)

	lo, hi := trimSpan(p, floats.Max(p)*c.Cutoff)

	out, err := density.New(calBP[lo:hi+1], p[lo:hi+1])
	if err != nil {
		return nil
	}

	return out
}

// trimSpan returns the first and last indices whose values reach threshold,
// widened by one point on each side (when available) so that the trimmed
// density still falls off towards zero at its edges.
func trimSpan(p []float64, threshold float64) (lo, hi int) {
	lo, hi = 0, len(p)-1
	for lo < hi && p[lo] < threshold {
		lo++
	}
	for hi > lo && p[hi] < threshold {
		hi--
	}

	if lo > 0 {
		lo--
	}
	if hi < len(p)-1 {
		hi++
	}

	return lo, hi
}
