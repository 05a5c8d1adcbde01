package c14misc

import (
	"bytes"
	"io"
	"strings"

	"github.com/csimplestring/go-csv/detector"
)

// sheetDelimiters are the delimiters that exported sample sheets and
// calibration tables use.
const sheetDelimiters = ",\t;|"

// DetermineDelimiter guesses the delimiter of a CSV-like sheet. The detector's
// candidates are taken in order of likelihood and the first that is one of
// sheetDelimiters wins, so a '-' recurring in lab IDs is never chosen. A
// comma is assumed if nothing matches.
func DetermineDelimiter(r io.Reader) rune {
	for _, candidate := range detector.New().DetectDelimiter(r, '"') {
		if candidate == "" {
			continue
		}
		if d := rune(candidate[0]); strings.ContainsRune(sheetDelimiters, d) {
			return d
		}
	}

	return ','
}

// DetermineDelimiterBytes is DetermineDelimiter over an in-memory file.
func DetermineDelimiterBytes(b []byte) rune {
	return DetermineDelimiter(bytes.NewReader(b))
}
