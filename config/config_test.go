package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}

	if len(c.GroupSets) != 3 {
		t.Fatalf("Expected 3 default group sets, got %d", len(c.GroupSets))
	}

	all := c.GroupSets[2]
	if len(all.Groups) != 7 {
		t.Errorf("Expected 7 groups in %s, got %d", all.Name, len(all.Groups))
	}

	groups := c.GroupSets[0].SampleGroups()
	if groups[0].Name != "Silvernale" || groups[0].Color != "blue" {
		t.Errorf("Unexpected first group %+v", groups[0])
	}

	if c.Overall.Color != "black" || c.Overall.Width != 7 || c.Overall.Alpha != 0 {
		t.Errorf("Unexpected overall line %+v", c.Overall)
	}

	// In the combined figure the mixed phases are thinner than the single ones
	for _, spec := range all.Groups {
		expected := 4.0
		if strings.Contains(spec.Label, ",") {
			expected = 2
		}
		if spec.Width != expected || spec.Alpha != 0.6 {
			t.Errorf("%s in %s: got width %v alpha %v", spec.Label, all.Name, spec.Width, spec.Alpha)
		}
	}
	for _, spec := range c.GroupSets[1].Groups {
		if spec.Width != 4 {
			t.Errorf("%s in %s: got width %v", spec.Label, c.GroupSets[1].Name, spec.Width)
		}
	}
}

func TestParseYAML(t *testing.T) {
	in := strings.TrimSpace(`
input: /data/Ron14Cpruned.xlsx
sheet: Ron Edited Pottery
curve: /data/intcal13.14c
format: SVG
xmin: 900
xmax: 1500
resolution: 5
overall:
  color: "0.3"
group_sets:
  - name: Two phases
    output: TwoPhases
    groups:
      - label: Silvernale
        color: blue
        width: 3
        alpha: 0.5
      - label: Link
        color: orange
`)

	c, err := Parse([]byte(in))
	if err != nil {
		t.Fatal(err)
	}

	if c.Input != "/data/Ron14Cpruned.xlsx" || c.Sheet != "Ron Edited Pottery" || c.Format != "svg" {
		t.Errorf("Unexpected config %+v", c)
	}

	if c.Layout != "POTTERY" || c.OutputDir != "." {
		t.Errorf("Defaults were not kept: %+v", c)
	}

	if len(c.GroupSets) != 1 || len(c.GroupSets[0].Groups) != 2 || c.GroupSets[0].Groups[1].Color != "orange" {
		t.Errorf("Unexpected group sets %+v", c.GroupSets)
	}

	if g := c.GroupSets[0].Groups[0]; g.Width != 3 || g.Alpha != 0.5 {
		t.Errorf("Line style was not read: %+v", g)
	}

	if c.Resolution != 5 {
		t.Errorf("Expected resolution 5, got %v", c.Resolution)
	}

	// Fields the file leaves out keep their defaults
	if c.Overall.Color != "0.3" || c.Overall.Width != 7 {
		t.Errorf("Unexpected overall line %+v", c.Overall)
	}
}

func TestParsePDF(t *testing.T) {
	c, err := Parse([]byte("format: PDF"))
	if err != nil {
		t.Fatal(err)
	}
	if c.Format != "pdf" {
		t.Errorf("Expected pdf, got %q", c.Format)
	}
}

func TestParseJSON(t *testing.T) {
	c, err := Parse([]byte(`{"input": "dates.csv", "layout": "MAIN", "xmin": 800, "xmax": 1700}`))
	if err != nil {
		t.Fatal(err)
	}

	if c.Input != "dates.csv" || c.Layout != "MAIN" || c.XMax != 1700 {
		t.Errorf("Unexpected config %+v", c)
	}
}

func TestParseInvalid(t *testing.T) {
	for _, in := range []string{
		"format: jpeg",
		"xmin: 1500\nxmax: 900",
		"resolution: -1",
		"overall:\n  alpha: 2",
		"group_sets:\n  - name: bad\n    output: Bad\n    groups:\n      - label: Link\n        width: -1",
		"layout: UNKNOWN",
		"unknown_field: 1",
		"group_sets:\n  - name: empty\n    output: Empty",
	} {
		if _, err := Parse([]byte(in)); err == nil {
			t.Errorf("Expected an error for %q", in)
		}
	}
}

func TestParseConfigFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c14.yaml")
	if err := os.WriteFile(path, []byte("input: dates.xlsx\n"), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := ParseConfigFromPath(path)
	if err != nil {
		t.Fatal(err)
	}

	if c.ConfigPath != path || c.Input != "dates.xlsx" {
		t.Errorf("Unexpected config %+v", c)
	}

	empty := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(empty, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ParseConfigFromPath(empty); err != nil {
		t.Errorf("An empty file should yield the defaults, got %v", err)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if c.Layout != "POTTERY" || c.ConfigPath != "" {
		t.Errorf("Expected the defaults, got %+v", c)
	}
}
