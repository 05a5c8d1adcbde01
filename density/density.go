// Package density aligns calibrated calendar-age probability densities onto a
// common integer-year grid and aggregates them by group.
package density

import (
	"fmt"
	"math"
	"sort"
)

// Epoch is the calendar year that "before present" ages are counted back from.
const Epoch = 1950

// Point is one sample of a calibrated density: a calendar age in years BP and
// the probability density at that age.
type Point struct {
	Age float64
	P   float64
}

// Density is a calibrated calendar-age probability density, ordered by
// increasing age. The spacing between ages need not be uniform.
type Density []Point

// New builds a Density from parallel slices of ages and densities. The
// points are sorted into increasing age order.
func New(ages, probs []float64) (Density, error) {
	if len(ages) != len(probs) {
		return nil, fmt.Errorf("%d ages but %d densities", len(ages), len(probs))
	}

	out := make(Density, 0, len(ages))
	for i := range ages {
		out = append(out, Point{Age: ages[i], P: probs[i]})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Age < out[j].Age })

	return out, out.Validate()
}

// Validate checks that d is non-empty, strictly increasing in age, and has
// finite non-negative densities.
func (d Density) Validate() error {
	if len(d) == 0 {
		return fmt.Errorf("density has no points")
	}

	for i, p := range d {
		if math.IsNaN(p.Age) || math.IsInf(p.Age, 0) {
			return fmt.Errorf("point %d has non-finite age %v", i, p.Age)
		}
		if math.IsNaN(p.P) || math.IsInf(p.P, 0) || p.P < 0 {
			return fmt.Errorf("point %d (age %v) has invalid density %v", i, p.Age, p.P)
		}
		if i > 0 && p.Age <= d[i-1].Age {
			return fmt.Errorf("ages must be strictly increasing, but point %d (%v) follows %v", i, p.Age, d[i-1].Age)
		}
	}

	return nil
}

// Ages returns the calendar ages of d.
func (d Density) Ages() []float64 {
	out := make([]float64, len(d))
	for i, p := range d {
		out[i] = p.Age
	}
	return out
}

// Probs returns the density values of d.
func (d Density) Probs() []float64 {
	out := make([]float64, len(d))
	for i, p := range d {
		out[i] = p.P
	}
	return out
}

// MinAge is the youngest age in the density's support.
func (d Density) MinAge() float64 {
	return d[0].Age
}

// MaxAge is the oldest age in the density's support.
func (d Density) MaxAge() float64 {
	return d[len(d)-1].Age
}
