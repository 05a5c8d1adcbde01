// c14dates draws the uncalibrated age and the 1- and 2-sigma calendar ranges
// recorded in the sheet for each sample, for the whole collection and then for
// each site. No calibration curve is needed.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/carbocation/c14misc"
	_ "github.com/carbocation/c14misc/compileinfoprint"
	"github.com/carbocation/c14misc/render"
	"github.com/carbocation/c14misc/sample"
	"github.com/carbocation/pfx"
)

func main() {
	var input, sheet, layoutName, outputDir, name, format string

	flag.StringVar(&input, "input", "", "Spreadsheet of radiocarbon dates (.xlsx, .xls, .csv or .tsv; local or gs://).")
	flag.StringVar(&sheet, "sheet", "", "(Optional) Sheet to read. Defaults to the layout's sheet.")
	flag.StringVar(&layoutName, "layout", "MAIN", "Sheet layout. Valid names include: "+sample.LayoutNames())
	flag.StringVar(&outputDir, "out", ".", "Directory for the figures.")
	flag.StringVar(&name, "name", "AllSites_dates", "File name, without extension, of the full-collection figure.")
	flag.StringVar(&format, "format", "png", "png or pdf.")
	flag.Parse()

	if input == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	format = strings.ToLower(format)
	if format != "png" && format != "pdf" {
		log.Fatalln("Format must be png or pdf, got", format)
	}

	layout, err := sample.LookupLayout(layoutName)
	if err != nil {
		log.Fatalln(err)
	}

	client, err := c14misc.NewStorageClientIfNeeded(input)
	if err != nil {
		log.Fatalln(err)
	}
	if client != nil {
		defer client.Close()
	}

	samples, err := sample.Load(input, sheet, layout, client)
	if err != nil {
		log.Fatalln(err)
	}

	samples = withCalendarRanges(samples)
	if len(samples) == 0 {
		log.Fatalln("No samples with calendar ranges were found in", input)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		log.Fatalln(err)
	}

	path := filepath.Join(outputDir, name+"."+format)
	if err := writeDates(path, samples, render.Options{Height: 16 * 100, Format: format}); err != nil {
		log.Fatalln(err)
	}
	log.Println("Wrote", len(samples), "samples to", path)

	for _, site := range sample.Sites(samples) {
		subset := sample.Subset(samples, sample.BySite(site).Selector(samples))

		path := filepath.Join(outputDir, site+"_dates."+format)
		if err := writeDates(path, subset, render.Options{Format: format}); err != nil {
			log.Fatalln(err)
		}
		log.Println("Wrote", len(subset), "samples to", path)
	}
}

// withCalendarRanges keeps the samples with at least one complete calendar
// range on the sheet.
func withCalendarRanges(samples []sample.Sample) []sample.Sample {
	var out []sample.Sample
	for _, s := range samples {
		if !s.HasSigmaBounds() {
			log.Printf("Row %d (%s) has no complete calendar range, skipping it\n", s.Row, s.LabID)
			continue
		}
		out = append(out, s)
	}
	return out
}

func writeDates(path string, samples []sample.Sample, opts render.Options) error {
	rows := make([]render.DateRow, len(samples))
	for i, s := range samples {
		rows[i] = render.DateRow{
			Label:        s.Label(),
			RawAge:       s.Age,
			OneSigmaLow:  s.OneSigmaLow,
			OneSigmaHigh: s.OneSigmaHigh,
			TwoSigmaLow:  s.TwoSigmaLow,
			TwoSigmaHigh: s.TwoSigmaHigh,
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}
	defer f.Close()

	if err := render.Dates(f, rows, opts); err != nil {
		return pfx.Err(err)
	}

	return f.Close()
}
