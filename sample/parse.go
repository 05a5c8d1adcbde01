package sample

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// Load reads the samples on the given sheet of the spreadsheet at path. If
// sheet is empty, the layout's sheet is used.
func Load(path, sheet string, layout Layout, client *storage.Client) ([]Sample, error) {
	if sheet == "" {
		sheet = layout.Sheet
	}

	t, err := ReadTable(path, sheet, client)
	if err != nil {
		return nil, err
	}

	return Parse(t, layout)
}

// Parse converts the rows of a table into samples according to the layout.
func Parse(t Table, layout Layout) ([]Sample, error) {
	cols := make(map[string]int, len(t.Header))
	for i, h := range t.Header {
		cols[h] = i
	}

	for field, header := range layout.required() {
		if _, exists := cols[header]; !exists {
			return nil, fmt.Errorf("sheet %s: the %s column %q is missing. Found columns: %s", t.Name, field, header, strings.Join(t.Header, ", "))
		}
	}

	cell := func(row []string, header string) string {
		if header == "" {
			return ""
		}
		i, exists := cols[header]
		if !exists || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	out := make([]Sample, 0, len(t.Rows))
	for k, row := range t.Rows {
		s := Sample{
			Row:        k + 1,
			LabID:      cell(row, layout.ColLabID),
			County:     cell(row, layout.ColCounty),
			Feature:    integralString(cell(row, layout.ColFeature)),
			Depth:      integralString(cell(row, layout.ColDepth)),
			DepthUnits: cell(row, layout.ColDepthUnits),
			Phase:      cell(row, layout.ColPhase),
			Labels:     make(map[string]string, len(t.Header)),
		}

		for i, h := range t.Header {
			if i < len(row) {
				s.Labels[h] = row[i]
			}
		}

		var err error
		if s.Age, err = parseRequired(cell(row, layout.ColAge)); err != nil {
			return nil, pfx.Err(fmt.Errorf("sheet %s row %d (%s): %s: %w", t.Name, s.Row, s.LabID, layout.ColAge, err))
		}
		if s.Sigma, err = parseRequired(cell(row, layout.ColSigma)); err != nil {
			return nil, pfx.Err(fmt.Errorf("sheet %s row %d (%s): %s: %w", t.Name, s.Row, s.LabID, layout.ColSigma, err))
		}

		optional := []struct {
			Header string
			Dest   *float64
		}{
			{layout.ColOneSigmaLow, &s.OneSigmaLow},
			{layout.ColOneSigmaHigh, &s.OneSigmaHigh},
			{layout.ColTwoSigmaLow, &s.TwoSigmaLow},
			{layout.ColTwoSigmaHigh, &s.TwoSigmaHigh},
		}
		for _, o := range optional {
			if *o.Dest, err = parseOptional(cell(row, o.Header)); err != nil {
				return nil, pfx.Err(fmt.Errorf("sheet %s row %d (%s): %s: %w", t.Name, s.Row, s.LabID, o.Header, err))
			}
		}

		var state, number float64
		if state, err = parseOptional(cell(row, layout.ColState)); err != nil {
			return nil, pfx.Err(fmt.Errorf("sheet %s row %d (%s): %s: %w", t.Name, s.Row, s.LabID, layout.ColState, err))
		}
		if number, err = parseOptional(cell(row, layout.ColNumber)); err != nil {
			return nil, pfx.Err(fmt.Errorf("sheet %s row %d (%s): %s: %w", t.Name, s.Row, s.LabID, layout.ColNumber, err))
		}
		s.State, s.Number = int(state), int(number)

		out = append(out, s)
	}

	return out, nil
}

func parseRequired(value string) (float64, error) {
	if value == "" {
		return 0, fmt.Errorf("value is empty")
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("value %q is not finite", value)
	}

	return f, nil
}

func parseOptional(value string) (float64, error) {
	if value == "" {
		return 0, nil
	}
	return parseRequired(value)
}

// integralString renders spreadsheet numbers like "12.0" as "12". Anything
// else is returned unchanged.
func integralString(value string) string {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return value
	}
	return strconv.FormatInt(int64(f), 10)
}
