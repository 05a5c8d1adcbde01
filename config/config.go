// Package config reads the run configuration shared by the plotting tools.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/carbocation/c14misc"
	"github.com/carbocation/c14misc/sample"
	"github.com/carbocation/pfx"
	"gopkg.in/yaml.v3"
)

// GroupSpec names one group of samples by its pottery phase, and the line it
// is drawn with. A zero Width uses the renderer's default; a zero Alpha is
// opaque.
type GroupSpec struct {
	Label string  `yaml:"label"`
	Color string  `yaml:"color"`
	Width float64 `yaml:"width"`
	Alpha float64 `yaml:"alpha"`
}

// GroupSet is one figure's worth of groups. Output is the file name, without
// extension, that the figure is written to.
type GroupSet struct {
	Name   string      `yaml:"name"`
	Output string      `yaml:"output"`
	Groups []GroupSpec `yaml:"groups"`
}

// Config is the run configuration. YAML is expected, but since YAML is a
// superset of JSON, JSON files are accepted as well.
type Config struct {
	ConfigPath string `yaml:"-"`

	Input     string     `yaml:"input"`
	Sheet     string     `yaml:"sheet"`
	Layout    string     `yaml:"layout"`
	Curve     string     `yaml:"curve"`
	Cutoff    float64    `yaml:"cutoff"`
	OutputDir string     `yaml:"output_dir"`
	Format    string     `yaml:"format"`
	XMin      float64    `yaml:"xmin"`
	XMax      float64    `yaml:"xmax"`
	GroupSets []GroupSet `yaml:"group_sets"`

	// Step in years BP to interpolate the calibration curve to before
	// calibrating. Zero keeps the curve's own spacing.
	Resolution float64 `yaml:"resolution"`

	// The line for the mean of every sample, drawn under each group set
	Overall GroupSpec `yaml:"overall"`
}

var (
	singlePhases = []GroupSpec{
		{Label: "Silvernale", Color: "blue", Width: 4, Alpha: 0.6},
		{Label: "Link", Color: "orange", Width: 4, Alpha: 0.6},
		{Label: "Bartron", Color: "purple", Width: 4, Alpha: 0.6},
	}

	mixedPhases = []GroupSpec{
		{Label: "Silvernale, Link", Color: "violet", Width: 4, Alpha: 0.6},
		{Label: "Silvernale, Bartron", Color: "indigo", Width: 4, Alpha: 0.6},
		{Label: "Link, Bartron", Color: "red", Width: 4, Alpha: 0.6},
		{Label: "Silvernale, Link, Bartron", Color: "brown", Width: 4, Alpha: 0.6},
	}
)

// withWidth copies specs, drawing each at the given width.
func withWidth(specs []GroupSpec, width float64) []GroupSpec {
	out := make([]GroupSpec, len(specs))
	for i, spec := range specs {
		spec.Width = width
		out[i] = spec
	}
	return out
}

// Default returns the configuration that reproduces the pottery phase
// figures: single phases, mixed phases, and both together.
func Default() Config {
	return Config{
		Layout:    "POTTERY",
		OutputDir: ".",
		Format:    "png",
		XMin:      950,
		XMax:      1450,
		Overall:   GroupSpec{Label: "All", Color: "black", Width: 7},
		GroupSets: []GroupSet{
			{Name: "Pottery phases", Output: "PotteryPeriodPDF", Groups: singlePhases},
			{Name: "Mixed pottery phases", Output: "PotteryPeriodMixPDF", Groups: mixedPhases},
			// Mixed phases are drawn thinner so the single phases stay legible
			{Name: "All pottery phases", Output: "PotteryPeriodAllPDF", Groups: append(withWidth(mixedPhases, 2), singlePhases...)},
		},
	}
}

// Load returns the configuration at path, or Default if path is empty.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	return ParseConfigFromPath(path)
}

// ParseConfigFromPath reads a configuration file. Fields the file leaves
// unset keep their Default values.
func ParseConfigFromPath(path string) (Config, error) {
	b, err := os.ReadFile(c14misc.ExpandHome(path))
	if err != nil {
		return Config{}, pfx.Err(err)
	}

	out, err := Parse(b)
	if err != nil {
		return out, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}
	out.ConfigPath = path

	return out, nil
}

// Parse reads a configuration from YAML (or JSON) bytes on top of Default.
func Parse(b []byte) (Config, error) {
	out := Default()

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&out); err != nil && !errors.Is(err, io.EOF) {
		return out, err
	}

	// Interpret ~ if present
	out.Input = c14misc.ExpandHome(out.Input)
	out.Curve = c14misc.ExpandHome(out.Curve)
	out.OutputDir = c14misc.ExpandHome(out.OutputDir)

	out.Format = strings.ToLower(out.Format)

	return out, out.Validate()
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	switch c.Format {
	case "png", "svg", "pdf":
	default:
		return fmt.Errorf("format must be png, svg or pdf, got %q", c.Format)
	}

	if c.Resolution < 0 {
		return fmt.Errorf("resolution must not be negative, got %v", c.Resolution)
	}

	if c.XMax <= c.XMin {
		return fmt.Errorf("xmax (%v) must exceed xmin (%v)", c.XMax, c.XMin)
	}

	if _, err := sample.LookupLayout(c.Layout); err != nil {
		return err
	}

	if err := c.Overall.validate(); err != nil {
		return fmt.Errorf("overall: %w", err)
	}

	for _, set := range c.GroupSets {
		if set.Output == "" {
			return fmt.Errorf("group set %q has no output name", set.Name)
		}
		if len(set.Groups) == 0 {
			return fmt.Errorf("group set %q has no groups", set.Name)
		}
		for _, spec := range set.Groups {
			if err := spec.validate(); err != nil {
				return fmt.Errorf("group set %q: %w", set.Name, err)
			}
		}
	}

	return nil
}

func (s GroupSpec) validate() error {
	if s.Width < 0 {
		return fmt.Errorf("group %q has a negative width", s.Label)
	}
	if s.Alpha < 0 || s.Alpha > 1 {
		return fmt.Errorf("group %q has alpha %v, which is outside [0, 1]", s.Label, s.Alpha)
	}
	return nil
}

// SampleGroups converts a group set into phase groups with their colors.
func (s GroupSet) SampleGroups() []sample.Group {
	out := make([]sample.Group, 0, len(s.Groups))
	for _, spec := range s.Groups {
		g := sample.ByPhase(spec.Label)
		g.Color = spec.Color
		out = append(out, g)
	}
	return out
}
