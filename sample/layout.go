package sample

import (
	"fmt"
	"sort"
	"strings"
)

// Layout names the spreadsheet header of each Sample field. Fields whose
// header is empty are not read. LabID, Age and Sigma are required.
type Layout struct {
	Sheet string // Sheet to read when none is requested

	ColLabID      string
	ColAge        string
	ColSigma      string
	ColState      string
	ColCounty     string
	ColNumber     string
	ColFeature    string
	ColDepth      string
	ColDepthUnits string
	ColPhase      string

	ColOneSigmaLow  string
	ColOneSigmaHigh string
	ColTwoSigmaLow  string
	ColTwoSigmaHigh string
}

// Layouts are the known sheet layouts. The sigma column is always named "±";
// files that carry a mis-encoded variant of that header must be fixed at the
// source or read with a custom Layout.
var Layouts = map[string]Layout{
	"MAIN": {
		Sheet:           "Ron Edited Main",
		ColLabID:        "Lab ID#",
		ColAge:          "14C age",
		ColSigma:        "±",
		ColState:        "State",
		ColCounty:       "County",
		ColNumber:       "Number",
		ColFeature:      "Feature",
		ColDepth:        "Depth",
		ColDepthUnits:   "Depth units",
		ColPhase:        "Pottery Phase",
		ColOneSigmaLow:  "1sig low",
		ColOneSigmaHigh: "1sig hi",
		ColTwoSigmaLow:  "2sig low",
		ColTwoSigmaHigh: "2sig hi",
	},
	"POTTERY": {
		Sheet:    "Ron Edited Pottery",
		ColLabID: "Lab ID#",
		ColAge:   "14C age",
		ColSigma: "±",
		ColPhase: "Pottery Phase",
	},
}

// LayoutNames lists the known layouts, sorted, separated by commas.
func LayoutNames() string {
	names := make([]string, 0, len(Layouts))
	for m := range Layouts {
		names = append(names, m)
	}
	sort.Strings(names)

	return strings.Join(names, ", ")
}

// LookupLayout returns the named layout. Names are case insensitive.
func LookupLayout(name string) (Layout, error) {
	l, exists := Layouts[strings.ToUpper(name)]
	if !exists {
		return l, fmt.Errorf("Layout %s is not found. Valid layout names include: %s", name, LayoutNames())
	}

	return l, nil
}

func (l Layout) required() map[string]string {
	return map[string]string{
		"lab ID": l.ColLabID,
		"age":    l.ColAge,
		"sigma":  l.ColSigma,
	}
}
