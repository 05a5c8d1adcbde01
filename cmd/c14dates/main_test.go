package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/carbocation/c14misc/render"
	"github.com/carbocation/c14misc/sample"
)

func datedSamples() []sample.Sample {
	return []sample.Sample{
		{Row: 1, LabID: "Beta-101", Age: 850, State: 21, County: "GD", Number: 3, Feature: "12", Depth: "40", DepthUnits: "cm",
			OneSigmaLow: 1160, OneSigmaHigh: 1250, TwoSigmaLow: 1045, TwoSigmaHigh: 1270},
		{Row: 2, LabID: "Beta-102", Age: 640, State: 21, County: "GD", Number: 3, Feature: "14", Depth: "55", DepthUnits: "cm",
			OneSigmaLow: 1290, OneSigmaHigh: 1390},
		{Row: 3, LabID: "Beta-103", Age: 900, State: 21, County: "GD", Number: 3, Feature: "15", Depth: "60", DepthUnits: "cm",
			OneSigmaLow: 1100},
		{Row: 4, LabID: "ISGS-7", Age: 780, State: 47, County: "PI", Number: 12, Feature: "2", Depth: "20", DepthUnits: "in"},
	}
}

func TestWithCalendarRanges(t *testing.T) {
	kept := withCalendarRanges(datedSamples())

	// A single range end is not a range
	if len(kept) != 2 || kept[0].LabID != "Beta-101" || kept[1].LabID != "Beta-102" {
		t.Errorf("Unexpected samples %v", kept)
	}
}

func TestWriteDates(t *testing.T) {
	samples := withCalendarRanges(datedSamples())

	for format, magic := range map[string]string{"png": "\x89PNG", "pdf": "%PDF"} {
		path := filepath.Join(t.TempDir(), "21GD0003_dates."+format)
		if err := writeDates(path, samples, render.Options{Format: format}); err != nil {
			t.Fatalf("%s: %v", format, err)
		}

		b, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.HasPrefix(b, []byte(magic)) {
			t.Errorf("%s: expected the file to start with %q", format, magic)
		}
	}

	path := filepath.Join(t.TempDir(), "dates.svg")
	if err := writeDates(path, samples, render.Options{Format: "svg"}); err == nil {
		t.Error("Expected an error for svg")
	}

	if err := writeDates(filepath.Join(t.TempDir(), "missing", "dates.png"), samples, render.Options{}); err == nil {
		t.Error("Expected an error for a missing directory")
	}
}
