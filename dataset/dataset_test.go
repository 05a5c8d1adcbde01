package dataset

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/carbocation/c14misc/density"
	"github.com/carbocation/c14misc/sample"
)

// triangleCalibrator returns a triangular density of half-width sigma centred
// on the raw age, which keeps expected values easy to compute.
type triangleCalibrator struct{}

func (triangleCalibrator) Calibrate(age, sigma float64) (density.Density, error) {
	if sigma <= 0 {
		return nil, fmt.Errorf("bad sigma")
	}
	return density.New([]float64{age - sigma, age, age + sigma}, []float64{0, 1 / sigma, 0})
}

func samples() []sample.Sample {
	return []sample.Sample{
		{Row: 1, LabID: "a", Age: 800, Sigma: 10, Phase: "Silvernale", State: 21, County: "GD", Number: 3},
		{Row: 2, LabID: "b", Age: 900, Sigma: 20, Phase: "Link", State: 21, County: "GD", Number: 3},
		{Row: 3, LabID: "c", Age: 850, Sigma: 10, Phase: "Silvernale", State: 47, County: "PI", Number: 12},
	}
}

func TestBuild(t *testing.T) {
	ds, err := Build(samples(), triangleCalibrator{})
	if err != nil {
		t.Fatal(err)
	}

	if ds.Len() != 3 || ds.Aligned.Len() != 3 {
		t.Fatalf("Expected 3 aligned samples, got %d", ds.Aligned.Len())
	}

	grid := ds.Aligned.Grid
	if grid[0] != 790 || grid[len(grid)-1] != 920 {
		t.Errorf("Unexpected grid %d..%d", grid[0], grid[len(grid)-1])
	}

	for i, row := range ds.Aligned.Resampled {
		if len(row) != len(grid) {
			t.Errorf("Row %d has length %d, expected %d", i, len(row), len(grid))
		}
	}

	mean, err := ds.Mean(sample.ByPhase("Silvernale"))
	if err != nil {
		t.Fatal(err)
	}

	// Both Silvernale samples peak at 0.1; averaged, each peak is 0.05. The
	// grid starts at 790 BP.
	if v := mean[800-grid[0]]; math.Abs(v-0.05) > 1e-12 {
		t.Errorf("Expected 0.05 at 800 BP, got %v", v)
	}
	if v := mean[900-grid[0]]; v != 0 {
		t.Errorf("Expected 0 at 900 BP, got %v", v)
	}

	if _, err := ds.Mean(sample.ByPhase("Bartron")); !errors.Is(err, density.ErrEmptyGroup) {
		t.Errorf("Expected ErrEmptyGroup, got %v", err)
	}

	subset, densities := ds.Subset(sample.BySite("21GD0003"))
	if len(subset) != 2 || len(densities) != 2 || subset[1].LabID != "b" || densities[1].Mode() != 900 {
		t.Errorf("Unexpected subset %v", subset)
	}
}

func TestBuildErrors(t *testing.T) {
	if _, err := Build(nil, triangleCalibrator{}); !errors.Is(err, density.ErrEmptyInput) {
		t.Errorf("Expected ErrEmptyInput, got %v", err)
	}

	bad := samples()
	bad[1].Sigma = 0
	if _, err := Build(bad, triangleCalibrator{}); err == nil {
		t.Error("Expected a calibration error")
	}
}
