// c14align writes every sample's calibrated density resampled onto the common
// integer-year grid as a tab-delimited matrix on stdout: one row per grid
// year and one column per sample.
package main

import (
	"encoding/csv"
	"flag"
	"log"
	"os"
	"strconv"

	_ "github.com/carbocation/c14misc/compileinfoprint"
	"github.com/carbocation/c14misc/config"
	"github.com/carbocation/c14misc/dataset"
	"github.com/carbocation/c14misc/density"
	"github.com/gocarina/gocsv"
)

func main() {
	var configPath, input, sheet, layout, curve string
	var withMean bool

	flag.StringVar(&configPath, "config", "", "(Optional) Path to a YAML or JSON run configuration.")
	flag.StringVar(&input, "input", "", "Spreadsheet of radiocarbon dates (.xlsx, .xls, .csv or .tsv; local or gs://).")
	flag.StringVar(&sheet, "sheet", "", "(Optional) Sheet to read. Defaults to the layout's sheet.")
	flag.StringVar(&layout, "layout", "", "(Optional) Sheet layout. Overrides the configuration.")
	flag.StringVar(&curve, "curve", "", "Calibration curve in .14c format (local or gs://).")
	flag.BoolVar(&withMean, "mean", false, "Add a final column with the mean density of all samples.")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalln(err)
	}
	override(&cfg.Input, input)
	override(&cfg.Sheet, sheet)
	override(&cfg.Layout, layout)
	override(&cfg.Curve, curve)

	if cfg.Input == "" || cfg.Curve == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	ds, err := dataset.FromConfig(cfg)
	if err != nil {
		log.Fatalln(err)
	}

	var mean []float64
	if withMean {
		if mean, err = ds.Aligned.Overall(); err != nil {
			log.Fatalln(err)
		}
	}

	tsv := csv.NewWriter(os.Stdout)
	tsv.Comma = '\t'
	if err := writeMatrix(gocsv.NewSafeCSVWriter(tsv), ds, mean); err != nil {
		log.Fatalln(err)
	}
}

func override(field *string, value string) {
	if value != "" {
		*field = value
	}
}

func writeMatrix(w *gocsv.SafeCSVWriter, ds *dataset.Dataset, mean []float64) error {
	header := []string{"year_bp", "year_adce"}
	for _, s := range ds.Samples {
		header = append(header, s.LabID)
	}
	if mean != nil {
		header = append(header, "mean")
	}
	if err := w.Write(header); err != nil {
		return err
	}

	row := make([]string, 0, len(header))
	for i, year := range ds.Aligned.Grid {
		row = row[:0]
		row = append(row, strconv.Itoa(year), strconv.Itoa(density.Epoch-year))
		for _, resampled := range ds.Aligned.Resampled {
			row = append(row, strconv.FormatFloat(resampled[i], 'g', 6, 64))
		}
		if mean != nil {
			row = append(row, strconv.FormatFloat(mean[i], 'g', 6, 64))
		}

		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
