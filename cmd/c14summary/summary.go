package main

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/carbocation/c14misc/calibration"
	"github.com/carbocation/c14misc/config"
	"github.com/carbocation/c14misc/dataset"
	"github.com/carbocation/c14misc/density"
	"github.com/carbocation/c14misc/sample"
	"github.com/carbocation/runningvariance"
	"github.com/montanaflynn/stats"
)

type groupSummary struct {
	Set         string  `csv:"group_set"`
	Group       string  `csv:"group"`
	N           int     `csv:"n"`
	MedianAgeBP float64 `csv:"median_14c_age_bp"`
	SDAge       float64 `csv:"sd_14c_age"`
	ModeADCE    int     `csv:"mode_year_adce"`
	MeanADCE    float64 `csv:"mean_year_adce"`
}

type siteSummary struct {
	Site       string  `csv:"site"`
	N          int     `csv:"n"`
	PooledAge  float64 `csv:"pooled_14c_age_bp"`
	PooledSD   float64 `csv:"pooled_sigma"`
	T          float64 `csv:"t"`
	P          float64 `csv:"p"`
	Consistent bool    `csv:"consistent"`
}

// summarizeGroups describes the whole collection, then every group of every
// group set. Groups without samples are logged and left out.
func summarizeGroups(ds *dataset.Dataset, sets []config.GroupSet) ([]groupSummary, error) {
	all, err := summarizeGroup(ds, "", sample.All())
	if err != nil {
		return nil, err
	}
	out := []groupSummary{all}

	for _, set := range sets {
		for _, g := range set.SampleGroups() {
			summary, err := summarizeGroup(ds, set.Name, g)
			if errors.Is(err, density.ErrEmptyGroup) {
				log.Printf("%s: no samples are assigned to %q, skipping it\n", set.Name, g.Name)
				continue
			} else if err != nil {
				return nil, err
			}
			out = append(out, summary)
		}
	}

	return out, nil
}

// columnGroups is one group per distinct non-blank value of an arbitrary
// sheet column, sorted by value.
func columnGroups(samples []sample.Sample, header string) []sample.Group {
	seen := make(map[string]struct{})
	for _, s := range samples {
		if v := strings.TrimSpace(s.Column(header)); v != "" {
			seen[v] = struct{}{}
		}
	}

	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)

	out := make([]sample.Group, 0, len(values))
	for _, v := range values {
		out = append(out, sample.ByLabel(header, v))
	}
	return out
}

// summarizeColumn describes the samples grouped by the values of one sheet
// column. The column name is used as the group set name.
func summarizeColumn(ds *dataset.Dataset, header string) ([]groupSummary, error) {
	groups := columnGroups(ds.Samples, header)
	if len(groups) == 0 {
		return nil, fmt.Errorf("no sample has a value in column %q", header)
	}

	out := make([]groupSummary, 0, len(groups))
	for _, g := range groups {
		summary, err := summarizeGroup(ds, header, g)
		if err != nil {
			return nil, err
		}
		out = append(out, summary)
	}

	return out, nil
}

func summarizeGroup(ds *dataset.Dataset, set string, g sample.Group) (groupSummary, error) {
	mean, err := ds.Mean(g)
	if err != nil {
		return groupSummary{}, err
	}

	members, _ := ds.Subset(g)
	ages := make([]float64, len(members))
	spread := runningvariance.NewRunningStat()
	for i, s := range members {
		ages[i] = s.Age
		spread.Push(s.Age)
	}

	median, err := stats.Median(ages)
	if err != nil {
		return groupSummary{}, fmt.Errorf("%s: %w", g.Name, err)
	}

	grid := ds.Aligned.Grid
	return groupSummary{
		Set:         set,
		Group:       g.Name,
		N:           len(members),
		MedianAgeBP: median,
		SDAge:       spread.StandardDeviation(),
		ModeADCE:    density.Epoch - density.ModeOnGrid(grid, mean),
		MeanADCE:    density.Epoch - density.MeanOnGrid(grid, mean),
	}, nil
}

// summarizeSites pools the raw ages of each site and applies the Ward &
// Wilson test to them.
func summarizeSites(samples []sample.Sample, alpha float64) ([]siteSummary, error) {
	var out []siteSummary

	for _, site := range sample.Sites(samples) {
		members := sample.Subset(samples, sample.BySite(site).Selector(samples))

		ages := make([]float64, len(members))
		sigmas := make([]float64, len(members))
		for i, s := range members {
			ages[i], sigmas[i] = s.Age, s.Sigma
		}

		c, err := calibration.Combine(ages, sigmas)
		if err != nil {
			return nil, fmt.Errorf("site %s: %w", site, err)
		}

		out = append(out, siteSummary{
			Site:       site,
			N:          c.N,
			PooledAge:  c.Age,
			PooledSD:   c.Sigma,
			T:          c.T,
			P:          c.P,
			Consistent: c.Consistent(alpha),
		})
	}

	return out, nil
}

// sampleModes is the calendar year (AD/CE) at which each sample's density
// peaks.
func sampleModes(ds *dataset.Dataset) []float64 {
	out := make([]float64, len(ds.Densities))
	for i, d := range ds.Densities {
		out[i] = density.Epoch - d.Mode()
	}
	return out
}
