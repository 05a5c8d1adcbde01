// c14summary tabulates, for every group in the configuration, the number of
// samples, their median raw age, and the mode and mean of the group's mean
// calibrated density. It can also test, site by site, whether the raw ages
// could all date a single event.
package main

import (
	"encoding/csv"
	"flag"
	"io"
	"log"
	"os"

	"github.com/aybabtme/uniplot/histogram"
	_ "github.com/carbocation/c14misc/compileinfoprint"
	"github.com/carbocation/c14misc/config"
	"github.com/carbocation/c14misc/dataset"
	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
)

func main() {
	var configPath, input, sheet, layout, curve, sitesPath, column string
	var alpha float64
	var bins int

	flag.StringVar(&configPath, "config", "", "(Optional) Path to a YAML or JSON run configuration. Without one, the pottery phase defaults are used.")
	flag.StringVar(&input, "input", "", "Spreadsheet of radiocarbon dates (.xlsx, .xls, .csv or .tsv; local or gs://).")
	flag.StringVar(&sheet, "sheet", "", "(Optional) Sheet to read. Defaults to the layout's sheet.")
	flag.StringVar(&layout, "layout", "", "(Optional) Sheet layout. Overrides the configuration.")
	flag.StringVar(&curve, "curve", "", "Calibration curve in .14c format (local or gs://).")
	flag.StringVar(&column, "column", "", "(Optional) Also summarize the samples grouped by each distinct value of this sheet column, e.g. \"Depth units\".")
	flag.StringVar(&sitesPath, "sites", "", "(Optional) File to which a per-site Ward & Wilson test table is written. Requires a layout with site columns.")
	flag.Float64Var(&alpha, "alpha", 0.05, "Significance level for the per-site test.")
	flag.IntVar(&bins, "bins", 20, "Number of bins in the histogram of per-sample calendar modes printed to stderr. 0 disables it.")
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

	groups, err := summarizeGroups(ds, cfg.GroupSets)
	if err != nil {
		log.Fatalln(err)
	}

	if column != "" {
		byColumn, err := summarizeColumn(ds, column)
		if err != nil {
			log.Fatalln(err)
		}
		groups = append(groups, byColumn...)
	}

	if err := writeTSV(os.Stdout, &groups); err != nil {
		log.Fatalln(err)
	}

	if sitesPath != "" {
		sites, err := summarizeSites(ds.Samples, alpha)
		if err != nil {
			log.Fatalln(err)
		}

		f, err := os.Create(sitesPath)
		if err != nil {
			log.Fatalln(err)
		}
		if err := writeTSV(f, &sites); err != nil {
			log.Fatalln(err)
		}
		if err := f.Close(); err != nil {
			log.Fatalln(err)
		}
		log.Println("Wrote", len(sites), "sites to", sitesPath)
	}

	if bins > 0 {
		log.Println("Calendar modes (AD/CE) of the individual samples:")
		hist := histogram.Hist(bins, sampleModes(ds))
		if err := histogram.Fprint(os.Stderr, hist, histogram.Linear(40)); err != nil {
			log.Fatalln(err)
		}
	}
}

func override(field *string, value string) {
	if value != "" {
		*field = value
	}
}

// writeTSV writes a slice of structs, with a header, as tab-delimited text.
func writeTSV(w io.Writer, rows interface{}) error {
	tsv := csv.NewWriter(w)
	tsv.Comma = '\t'

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(tsv)); err != nil {
		return pfx.Err(err)
	}

	return nil
}
