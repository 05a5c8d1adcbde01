package sample

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/c14misc"
	"github.com/carbocation/pfx"
	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// Table is one sheet of a spreadsheet: a header row and the data rows below
// it. Every row is padded to the width of the header.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// ReadTables reads every sheet of the spreadsheet at path, which may be local
// or a gs:// URL. .xlsx and .xls workbooks are supported; anything else is
// read as delimited text (optionally compressed) with an auto-detected
// delimiter and yields a single table named after the file.
func ReadTables(path string, client *storage.Client) ([]Table, error) {
	raw, err := c14misc.MaybeReadFromGoogleStorage(path, client)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return readXLSX(raw)
	case ".xls":
		return readXLS(raw)
	}

	t, err := readDelimited(filepath.Base(path), raw)
	if err != nil {
		return nil, err
	}

	return []Table{t}, nil
}

// ReadTable reads one sheet from the spreadsheet at path. An empty sheet name
// selects the first sheet. Delimited text has no sheets, so sheet is ignored
// for it.
func ReadTable(path, sheet string, client *storage.Client) (Table, error) {
	tables, err := ReadTables(path, client)
	if err != nil {
		return Table{}, err
	}

	if !isWorkbook(path) {
		return tables[0], nil
	}

	return selectTable(path, tables, sheet)
}

func selectTable(path string, tables []Table, sheet string) (Table, error) {
	if len(tables) == 0 {
		return Table{}, fmt.Errorf("%s contains no sheets", path)
	}

	if sheet == "" {
		return tables[0], nil
	}

	names := make([]string, 0, len(tables))
	for _, t := range tables {
		if t.Name == sheet {
			return t, nil
		}
		names = append(names, t.Name)
	}

	return Table{}, fmt.Errorf("%s has no sheet named %q. Sheets: %s", path, sheet, strings.Join(names, ", "))
}

func isWorkbook(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xls":
		return true
	}
	return false
}

// NewTable builds a table from raw rows. Fully blank rows are dropped; the
// first remaining row is the header.
func NewTable(name string, rows [][]string) Table {
	out := Table{Name: name}

	for _, row := range rows {
		if isBlank(row) {
			continue
		}

		if out.Header == nil {
			out.Header = trimTrailingBlanks(row)
			continue
		}

		padded := make([]string, len(out.Header))
		copy(padded, row)
		out.Rows = append(out.Rows, padded)
	}

	return out
}

func readXLSX(raw []byte) ([]Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	var out []Table
	for _, name := range f.GetSheetList() {
		// Raw values, so a number format like "#,##0" doesn't leak into ages
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, pfx.Err(fmt.Errorf("sheet %s: %w", name, err))
		}
		out = append(out, NewTable(name, rows))
	}

	return out, nil
}

func readXLS(raw []byte) ([]Table, error) {
	spreadsheet, err := xls.OpenReader(bytes.NewReader(raw), "utf-8")
	if err != nil {
		return nil, pfx.Err(err)
	}
	if spreadsheet == nil {
		return nil, fmt.Errorf("no Workbook stream was found")
	}

	var out []Table
	for sheetID := 0; sheetID < spreadsheet.NumSheets(); sheetID++ {
		sheet := spreadsheet.GetSheet(sheetID)
		if sheet == nil {
			return nil, fmt.Errorf("Sheet %d was nil", sheetID)
		}

		// Rows without a ROW record report LastCol 0, so read at least as
		// wide as the widest row seen so far
		width := 0
		rows := make([][]string, 0, int(sheet.MaxRow)+1)
		for rowID := 0; rowID <= int(sheet.MaxRow); rowID++ {
			row := xlsRow(sheet, rowID)
			if row == nil {
				continue
			}

			if row.LastCol() > width {
				width = row.LastCol()
			}

			values := make([]string, 0, width+1)
			for colID := 0; colID <= width; colID++ {
				values = append(values, row.Col(colID))
			}
			rows = append(rows, values)
		}

		out = append(out, NewTable(sheet.Name, rows))
	}

	return out, nil
}

// xlsRow returns nil for a row the sheet holds no cells for. WorkSheet.Row
// dereferences the missing row instead.
func xlsRow(sheet *xls.WorkSheet, rowID int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()

	return sheet.Row(rowID)
}

func readDelimited(name string, raw []byte) (Table, error) {
	b, err := c14misc.MaybeDecompress(raw)
	if err != nil {
		return Table{}, err
	}

	r := csv.NewReader(bytes.NewReader(b))
	r.Comma = c14misc.DetermineDelimiterBytes(b)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return Table{}, pfx.Err(fmt.Errorf("%s: %w", name, err))
	}

	return NewTable(name, rows), nil
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func trimTrailingBlanks(row []string) []string {
	end := len(row)
	for end > 0 && strings.TrimSpace(row[end-1]) == "" {
		end--
	}

	out := make([]string, end)
	for i := range out {
		out[i] = strings.TrimSpace(row[i])
	}
	return out
}
