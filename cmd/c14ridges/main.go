// c14ridges draws every sample's calibrated density as a ridge, one row per
// sample in sheet order, for the whole collection and then for each site.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	_ "github.com/carbocation/c14misc/compileinfoprint"
	"github.com/carbocation/c14misc/config"
	"github.com/carbocation/c14misc/dataset"
	"github.com/carbocation/c14misc/density"
	"github.com/carbocation/c14misc/render"
	"github.com/carbocation/c14misc/sample"
	"github.com/carbocation/pfx"
)

func main() {
	var configPath, input, sheet, layout, curve, outputDir, name, format string
	var xmin, xmax float64

	flag.StringVar(&configPath, "config", "", "(Optional) Path to a YAML or JSON run configuration.")
	flag.StringVar(&input, "input", "", "Spreadsheet of radiocarbon dates (.xlsx, .xls, .csv or .tsv; local or gs://).")
	flag.StringVar(&sheet, "sheet", "", "(Optional) Sheet to read. Defaults to the layout's sheet.")
	flag.StringVar(&layout, "layout", "MAIN", "Sheet layout. Valid names include: "+sample.LayoutNames())
	flag.StringVar(&curve, "curve", "", "Calibration curve in .14c format (local or gs://).")
	flag.StringVar(&outputDir, "out", "", "(Optional) Directory for the figures.")
	flag.StringVar(&name, "name", "AllSites_14C", "File name, without extension, of the full-collection figure.")
	flag.StringVar(&format, "format", "", "(Optional) png or pdf. Overrides the configuration.")
	flag.Float64Var(&xmin, "xmin", 800, "First calendar year (AD/CE) of the full-collection figure.")
	flag.Float64Var(&xmax, "xmax", 1700, "Last calendar year (AD/CE) of the full-collection figure.")
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
	if configPath == "" {
		cfg.Layout = layout
	}

	if cfg.Input == "" || cfg.Curve == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalln(err)
	}
	if cfg.Format == "svg" {
		log.Fatalln("Ridge plots can be written as png or pdf, not svg")
	}

	ds, err := dataset.FromConfig(cfg)
	if err != nil {
		log.Fatalln(err)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		log.Fatalln(err)
	}

	// The full collection gets a fixed window and a legend; the per-site
	// figures fit their own data.
	full := render.Options{Width: 12 * 100, Height: 16 * 100, XMin: xmin, XMax: xmax, Format: cfg.Format}
	path := filepath.Join(cfg.OutputDir, name+"."+cfg.Format)
	if err := writeRidges(path, ds.Samples, ds.Densities, true, full); err != nil {
		log.Fatalln(err)
	}
	log.Println("Wrote", ds.Len(), "samples to", path)

	for _, site := range sample.Sites(ds.Samples) {
		samples, densities := ds.Subset(sample.BySite(site))

		path := filepath.Join(cfg.OutputDir, site+"_14C."+cfg.Format)
		if err := writeRidges(path, samples, densities, false, render.Options{Format: cfg.Format}); err != nil {
			log.Fatalln(err)
		}
		log.Println("Wrote", len(samples), "samples to", path)
	}
}

func override(field *string, value string) {
	if value != "" {
		*field = value
	}
}

func writeRidges(path string, samples []sample.Sample, densities []density.Density, legend bool, opts render.Options) error {
	ridges := make([]render.Ridge, len(samples))
	for i, s := range samples {
		ridges[i] = render.Ridge{Label: s.Label(), Density: densities[i], RawAge: s.Age}
	}

	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}
	defer f.Close()

	if err := render.Ridges(f, ridges, legend, opts); err != nil {
		return pfx.Err(err)
	}

	return f.Close()
}
