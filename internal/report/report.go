// Package report reduces detection annotations and household summaries to
// the aggregate numbers the CLI prints and runs persist.
//
// Every function here is pure over slices; nothing reads the store or the
// config.
package report

import (
	"sort"

	"pitcount/internal/dedupe"
	"pitcount/internal/flatten"
	"pitcount/internal/match"
)

// TierCounts breaks one group of records down by detection outcome.
type TierCounts struct {
	Records        int
	Likely         int
	SomewhatLikely int
	Possible       int
	NoIdentity     int
	Unique         int
}

// Flagged returns the number of records at any duplicate tier.
func (c TierCounts) Flagged() int {
	return c.Likely + c.SomewhatLikely + c.Possible
}

// FlaggedPercent returns the flagged share of all records, 0-100.
func (c TierCounts) FlaggedPercent() float64 {
	if c.Records == 0 {
		return 0
	}
	return float64(c.Flagged()) / float64(c.Records) * 100
}

func (c *TierCounts) add(ann dedupe.Annotation) {
	c.Records++
	switch {
	case ann.Tier == match.TierLikely:
		c.Likely++
	case ann.Tier == match.TierSomewhatLikely:
		c.SomewhatLikely++
	case ann.Tier == match.TierPossible:
		c.Possible++
	case ann.Label == dedupe.LabelNoIdentity:
		c.NoIdentity++
	default:
		c.Unique++
	}
}

// DedupSummary is the per-source and overall outcome of one detection run.
type DedupSummary struct {
	Total    TierCounts
	Sources  []string
	BySource map[string]TierCounts
}

// Summarize aggregates detection annotations per source and overall.
func Summarize(annotations []dedupe.Annotation) DedupSummary {
	summary := DedupSummary{BySource: make(map[string]TierCounts)}
	for _, ann := range annotations {
		summary.Total.add(ann)
		counts := summary.BySource[ann.Source]
		counts.add(ann)
		summary.BySource[ann.Source] = counts
	}
	for source := range summary.BySource {
		summary.Sources = append(summary.Sources, source)
	}
	sort.Strings(summary.Sources)
	return summary
}

// HouseholdSummary aggregates household composition for one dataset.
type HouseholdSummary struct {
	Households int
	Persons    int

	HouseholdsByType map[flatten.HouseholdType]int
	PersonsByType    map[flatten.HouseholdType]int

	Adults   int
	Youth    int
	Children int

	YouthHouseholds     int
	Veterans            int
	ChronicallyHomeless int
}

// SummarizeHouseholds reduces flattened household records to HUD-style
// composition counts.
func SummarizeHouseholds(households []flatten.Household) HouseholdSummary {
	summary := HouseholdSummary{
		HouseholdsByType: make(map[flatten.HouseholdType]int),
		PersonsByType:    make(map[flatten.HouseholdType]int),
	}
	for _, hh := range households {
		summary.Households++
		summary.Persons += hh.Members
		summary.HouseholdsByType[hh.Type]++
		summary.PersonsByType[hh.Type] += hh.Members
		summary.Adults += hh.Adults
		summary.Youth += hh.Youth
		summary.Children += hh.Children
		if hh.YouthHousehold {
			summary.YouthHouseholds++
		}
		summary.Veterans += hh.Veterans
		summary.ChronicallyHomeless += hh.ChronicCount
	}
	return summary
}
