// sheet2tsv prints one sheet of a spreadsheet, or every sheet stacked under a
// single header, as tab-delimited text.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/carbocation/c14misc"
	_ "github.com/carbocation/c14misc/compileinfoprint"
	"github.com/carbocation/c14misc/sample"
)

func main() {
	var filename, sheet string

	flag.StringVar(&filename, "filename", "", "Spreadsheet to read (.xlsx, .xls, .csv or .tsv; local or gs://)")
	flag.StringVar(&sheet, "sheet", "", "(Optional) Sheet to print. If not set, every sheet is printed with an extra Sheet column.")
	flag.Parse()

	if filename == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	client, err := c14misc.NewStorageClientIfNeeded(filename)
	if err != nil {
		log.Fatalln(err)
	}
	if client != nil {
		defer client.Close()
	}

	var output [][]string
	if sheet != "" {
		t, err := sample.ReadTable(filename, sheet, client)
		if err != nil {
			log.Fatalln(err)
		}
		output = append([][]string{t.Header}, t.Rows...)
	} else {
		tables, err := sample.ReadTables(filename, client)
		if err != nil {
			log.Fatalln(err)
		}
		for _, t := range tables {
			log.Printf("Parsing sheet %s (%d rows)\n", t.Name, len(t.Rows))
		}
		output = stack(tables)
	}

	log.Println(len(output[0]), "Columns")
	for _, row := range output {
		fmt.Printf("%s\n", strings.Join(row, "\t"))
	}
}

// stack combines the tables under the first table's header, matching columns
// by name, and appends a Sheet column. Columns that the first table lacks are
// dropped with a log line.
func stack(tables []sample.Table) [][]string {
	if len(tables) == 0 {
		return [][]string{{"Sheet"}}
	}

	header := tables[0].Header
	output := [][]string{append(append([]string{}, header...), "Sheet")}

	for _, t := range tables {
		cols := make(map[string]int, len(t.Header))
		for i, h := range t.Header {
			cols[h] = i
			if !contains(header, h) {
				log.Printf("Sheet %s: dropping column %q, which the first sheet does not have\n", t.Name, h)
			}
		}

		for _, row := range t.Rows {
			out := make([]string, len(header)+1)
			for i, h := range header {
				if j, exists := cols[h]; exists && j < len(row) {
					out[i] = row[j]
				}
			}
			out[len(header)] = t.Name
			output = append(output, out)
		}
	}

	return output
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
