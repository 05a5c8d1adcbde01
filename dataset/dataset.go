// Package dataset holds a collection of samples together with their calibrated
// and aligned densities.
package dataset

import (
	"fmt"

	"github.com/carbocation/c14misc/density"
	"github.com/carbocation/c14misc/sample"
	"github.com/carbocation/pfx"
)

// Calibrator maps a raw radiocarbon age and its uncertainty to a calendar
// density. *calibration.Calibrator satisfies it.
type Calibrator interface {
	Calibrate(age, sigma float64) (density.Density, error)
}

// Dataset keeps samples, densities and aligned rows in the same order:
// Densities[i] and Aligned.Resampled[i] both belong to Samples[i].
type Dataset struct {
	Samples   []sample.Sample
	Densities []density.Density
	Aligned   density.Aligned
}

// Build calibrates every sample and aligns the results on their common grid.
func Build(samples []sample.Sample, cal Calibrator) (*Dataset, error) {
	if len(samples) == 0 {
		return nil, density.ErrEmptyInput
	}

	out := &Dataset{
		Samples:   samples,
		Densities: make([]density.Density, 0, len(samples)),
	}

	for _, s := range samples {
		d, err := cal.Calibrate(s.Age, s.Sigma)
		if err != nil {
			return nil, pfx.Err(fmt.Errorf("row %d (%s): %w", s.Row, s.LabID, err))
		}
		out.Densities = append(out.Densities, d)
	}

	var err error
	out.Aligned, err = density.Align(out.Densities)
	if err != nil {
		return nil, err
	}

	return out, nil
}

// Len is the number of samples.
func (d *Dataset) Len() int {
	return len(d.Samples)
}

// Mean is the mean aligned density of a group's members. Groups without
// members yield density.ErrEmptyGroup.
func (d *Dataset) Mean(g sample.Group) ([]float64, error) {
	return d.Aligned.Mean(g.Selector(d.Samples))
}

// Subset returns the samples and calibrated densities of a group's members,
// in their original order.
func (d *Dataset) Subset(g sample.Group) ([]sample.Sample, []density.Density) {
	var samples []sample.Sample
	var densities []density.Density

	for i, selected := range g.Selector(d.Samples) {
		if !selected {
			continue
		}
		samples = append(samples, d.Samples[i])
		densities = append(densities, d.Densities[i])
	}

	return samples, densities
}
