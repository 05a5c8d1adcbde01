package sample

import (
	"sort"
	"strings"
)

// Group is a named subset of samples defined by a predicate over their
// attributes. Color is an optional rendering hint.
type Group struct {
	Name  string
	Color string
	Match func(Sample) bool
}

// Selector evaluates the group once over the samples. Entry i is true when
// samples[i] belongs to the group.
func (g Group) Selector(samples []Sample) []bool {
	out := make([]bool, len(samples))
	for i, s := range samples {
		out[i] = g.Match(s)
	}
	return out
}

// Count is the number of samples that belong to the group.
func (g Group) Count(samples []Sample) int {
	return Count(g.Selector(samples))
}

// Count is the number of true entries in a selector.
func Count(selector []bool) int {
	n := 0
	for _, v := range selector {
		if v {
			n++
		}
	}
	return n
}

// All is the group of every sample.
func All() Group {
	return Group{Name: "All", Match: func(Sample) bool { return true }}
}

// ByPhase selects samples whose pottery phase is exactly phase, e.g.
// "Silvernale" or the mixed assignment "Silvernale, Link".
func ByPhase(phase string) Group {
	return Group{
		Name:  phase,
		Match: func(s Sample) bool { return s.Phase == phase },
	}
}

// BySite selects the samples from one site trinomial.
func BySite(site string) Group {
	return Group{
		Name:  site,
		Match: func(s Sample) bool { return s.Site() == site },
	}
}

// ByLabel selects samples whose value in an arbitrary source column matches
// value, ignoring surrounding whitespace.
func ByLabel(header, value string) Group {
	value = strings.TrimSpace(value)
	return Group{
		Name:  value,
		Match: func(s Sample) bool { return strings.TrimSpace(s.Labels[header]) == value },
	}
}

// Sites returns the distinct site trinomials among the samples, sorted.
func Sites(samples []Sample) []string {
	seen := make(map[string]struct{})
	for _, s := range samples {
		seen[s.Site()] = struct{}{}
	}

	out := make([]string, 0, len(seen))
	for site := range seen {
		out = append(out, site)
	}
	sort.Strings(out)

	return out
}

// Subset returns the samples chosen by the selector, in their original order.
func Subset(samples []Sample, selector []bool) []Sample {
	var out []Sample
	for i, s := range samples {
		if selector[i] {
			out = append(out, s)
		}
	}
	return out
}
