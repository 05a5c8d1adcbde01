// Package sample loads radiocarbon-dated specimens from spreadsheets and
// groups them by their categorical labels.
package sample

import (
	"fmt"
	"strconv"
)

// Sample is one dated specimen. Age and Sigma are in uncalibrated radiocarbon
// years BP. The sigma bounds, when the sheet provides them, are calendar
// years AD/CE and are zero otherwise.
type Sample struct {
	Row   int // 1-based data row in the source sheet
	LabID string
	Age   float64
	Sigma float64

	State      int
	County     string
	Number     int
	Feature    string
	Depth      string
	DepthUnits string
	Phase      string

	OneSigmaLow  float64
	OneSigmaHigh float64
	TwoSigmaLow  float64
	TwoSigmaHigh float64

	// Every column of the source row, keyed by header
	Labels map[string]string
}

// Site is the site trinomial: the 2-digit state code, the county
// abbreviation, and the 4-digit site number, e.g. "21GD0003".
func (s Sample) Site() string {
	return fmt.Sprintf("%02d%s%04d", s.State, s.County, s.Number)
}

// Label identifies the sample within its site by feature and depth, e.g.
// "21GD0003 F12: 40cm".
func (s Sample) Label() string {
	return s.Site() + " F" + s.Feature + ": " + s.Depth + s.DepthUnits
}

// Column returns the value of an arbitrary column of the source row.
func (s Sample) Column(header string) string {
	return s.Labels[header]
}

// HasOneSigma reports whether both ends of the 1-sigma calendar range are
// present.
func (s Sample) HasOneSigma() bool {
	return s.OneSigmaLow != 0 && s.OneSigmaHigh != 0
}

// HasTwoSigma reports whether both ends of the 2-sigma calendar range are
// present.
func (s Sample) HasTwoSigma() bool {
	return s.TwoSigmaLow != 0 && s.TwoSigmaHigh != 0
}

// HasSigmaBounds reports whether the sheet supplied at least one complete
// calendar range for this sample. A range with a single end is ignored.
func (s Sample) HasSigmaBounds() bool {
	return s.HasOneSigma() || s.HasTwoSigma()
}

func (s Sample) String() string {
	return s.LabID + " (" + strconv.FormatFloat(s.Age, 'f', -1, 64) + "±" + strconv.FormatFloat(s.Sigma, 'f', -1, 64) + ")"
}
