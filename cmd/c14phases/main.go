// c14phases plots, for each group set in the configuration, the mean
// calibrated density of every pottery phase against the mean of the whole
// collection.
package main

import (
	"errors"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strconv"

	_ "github.com/carbocation/c14misc/compileinfoprint"
	"github.com/carbocation/c14misc/config"
	"github.com/carbocation/c14misc/dataset"
	"github.com/carbocation/c14misc/density"
	"github.com/carbocation/c14misc/render"
	"github.com/carbocation/pfx"
)

func main() {
	var configPath, input, sheet, curve, outputDir, format string

	flag.StringVar(&configPath, "config", "", "(Optional) Path to a YAML or JSON run configuration. Without one, the pottery phase defaults are used.")
	flag.StringVar(&input, "input", "", "Spreadsheet of radiocarbon dates (.xlsx, .xls, .csv or .tsv; local or gs://). Overrides the configuration.")
	flag.StringVar(&sheet, "sheet", "", "(Optional) Sheet to read. Overrides the configuration.")
	flag.StringVar(&curve, "curve", "", "Calibration curve in .14c format (local or gs://). Overrides the configuration.")
	flag.StringVar(&outputDir, "out", "", "(Optional) Directory for the figures. Overrides the configuration.")
	flag.StringVar(&format, "format", "", "(Optional) png, svg or pdf. Overrides the configuration.")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalln(err)
	}
	override(&cfg.Input, input)
	override(&cfg.Sheet, sheet)
	override(&cfg.Curve, curve)
	override(&cfg.OutputDir, outputDir)
	override(&cfg.Format, format)

	if cfg.Input == "" || cfg.Curve == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalln(err)
	}

	if err := run(cfg); err != nil {
		log.Fatalln(err)
	}
}

func override(field *string, value string) {
	if value != "" {
		*field = value
	}
}

func run(cfg config.Config) error {
	ds, err := dataset.FromConfig(cfg)
	if err != nil {
		return err
	}

	overall, err := ds.Aligned.Overall()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return pfx.Err(err)
	}

	for _, set := range cfg.GroupSets {
		lines, err := groupLines(ds, overall, set, cfg.Overall)
		if err != nil {
			return err
		}

		path := filepath.Join(cfg.OutputDir, set.Output+"."+cfg.Format)
		if err := writeFigure(path, ds.Aligned.Grid, lines, cfg); err != nil {
			return err
		}
		log.Printf("%s: wrote %d groups to %s\n", set.Name, len(lines)-1, path)
	}

	return nil
}

// groupLines returns the overall mean line followed by the mean of each
// group in the set. Groups without samples are logged and left out.
func groupLines(ds *dataset.Dataset, overall []float64, set config.GroupSet, all config.GroupSpec) ([]render.Line, error) {
	lines := []render.Line{{
		Name:   legendName(all.Label, ds.Len()),
		Color:  all.Color,
		Width:  all.Width,
		Alpha:  all.Alpha,
		Values: overall,
	}}

	for i, g := range set.SampleGroups() {
		spec := set.Groups[i]

		mean, err := ds.Mean(g)
		if errors.Is(err, density.ErrEmptyGroup) {
			log.Printf("%s: no samples are assigned to %q, skipping it\n", set.Name, g.Name)
			continue
		} else if err != nil {
			return nil, pfx.Err(err)
		}

		lines = append(lines, render.Line{
			Name:   legendName(g.Name, g.Count(ds.Samples)),
			Color:  spec.Color,
			Width:  spec.Width,
			Alpha:  spec.Alpha,
			Values: mean,
		})
	}

	return lines, nil
}

func legendName(name string, n int) string {
	if n == 1 {
		return name + " (1 sample)"
	}
	return name + " (" + strconv.Itoa(n) + " samples)"
}

func writeFigure(path string, grid density.Grid, lines []render.Line, cfg config.Config) error {
	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}
	defer f.Close()

	opts := render.Options{
		XMin:   cfg.XMin,
		XMax:   cfg.XMax,
		Format: cfg.Format,
	}

	if err := render.Densities(f, grid, lines, opts); err != nil {
		return pfx.Err(err)
	}

	return f.Close()
}
