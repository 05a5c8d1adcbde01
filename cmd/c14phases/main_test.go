package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/carbocation/c14misc/config"
	"github.com/carbocation/c14misc/dataset"
	"github.com/carbocation/c14misc/density"
	"github.com/carbocation/c14misc/sample"
)

// triangleCalibrator returns a triangular density of half-width sigma
// centred on the raw age.
type triangleCalibrator struct{}

func (triangleCalibrator) Calibrate(age, sigma float64) (density.Density, error) {
	return density.New([]float64{age - sigma, age, age + sigma}, []float64{0, 1 / sigma, 0})
}

func phaseDataset(t *testing.T) *dataset.Dataset {
	t.Helper()

	samples := []sample.Sample{
		{Row: 1, LabID: "a", Age: 800, Sigma: 10, Phase: "Silvernale"},
		{Row: 2, LabID: "b", Age: 900, Sigma: 20, Phase: "Link"},
		{Row: 3, LabID: "c", Age: 850, Sigma: 10, Phase: "Silvernale"},
	}

	ds, err := dataset.Build(samples, triangleCalibrator{})
	if err != nil {
		t.Fatal(err)
	}
	return ds
}

func TestGroupLines(t *testing.T) {
	ds := phaseDataset(t)

	overall, err := ds.Aligned.Overall()
	if err != nil {
		t.Fatal(err)
	}

	set := config.GroupSet{
		Name:   "Pottery phases",
		Output: "PotteryPeriodPDF",
		Groups: []config.GroupSpec{
			{Label: "Silvernale", Color: "blue", Width: 4, Alpha: 0.6},
			{Label: "Bartron", Color: "purple", Width: 4, Alpha: 0.6},
			{Label: "Link", Color: "orange", Width: 2, Alpha: 0.6},
		},
	}
	all := config.GroupSpec{Label: "All", Color: "black", Width: 7}

	lines, err := groupLines(ds, overall, set, all)
	if err != nil {
		t.Fatal(err)
	}

	// Bartron has no samples and is skipped
	if len(lines) != 3 {
		t.Fatalf("Expected the overall line and 2 groups, got %d lines", len(lines))
	}

	cases := []struct {
		Name  string
		Color string
		Width float64
		Alpha float64
	}{
		{"All (3 samples)", "black", 7, 0},
		{"Silvernale (2 samples)", "blue", 4, 0.6},
		{"Link (1 sample)", "orange", 2, 0.6},
	}
	for i, c := range cases {
		l := lines[i]
		if l.Name != c.Name || l.Color != c.Color || l.Width != c.Width || l.Alpha != c.Alpha {
			t.Errorf("Line %d: expected %+v, got %s %s %v %v", i, c, l.Name, l.Color, l.Width, l.Alpha)
		}
		if len(l.Values) != len(ds.Aligned.Grid) {
			t.Errorf("Line %d has %d values for a grid of %d", i, len(l.Values), len(ds.Aligned.Grid))
		}
	}
}

func TestWriteFigure(t *testing.T) {
	ds := phaseDataset(t)

	overall, err := ds.Aligned.Overall()
	if err != nil {
		t.Fatal(err)
	}

	lines, err := groupLines(ds, overall, config.Default().GroupSets[0], config.Default().Overall)
	if err != nil {
		t.Fatal(err)
	}

	for format, magic := range map[string]string{
		"png": "\x89PNG",
		"svg": "<svg",
		"pdf": "%PDF",
	} {
		cfg := config.Default()
		cfg.Format = format
		cfg.XMin, cfg.XMax = 1000, 1200

		path := filepath.Join(t.TempDir(), "PotteryPeriodPDF."+format)
		if err := writeFigure(path, ds.Aligned.Grid, lines, cfg); err != nil {
			t.Fatalf("%s: %v", format, err)
		}

		b, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Contains(b[:min(len(b), 512)], []byte(magic)) {
			t.Errorf("%s: expected %q near the start of the file", format, magic)
		}
	}
}
