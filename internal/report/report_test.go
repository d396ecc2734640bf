package report_test

import (
	"testing"

	"pitcount/internal/dedupe"
	"pitcount/internal/flatten"
	"pitcount/internal/match"
	"pitcount/internal/report"
)

func TestSummarizeCountsTiersPerSource(t *testing.T) {
	annotations := []dedupe.Annotation{
		{RowRef: 1, Source: "ES", Tier: match.TierLikely, Label: dedupe.LabelLikely},
		{RowRef: 2, Source: "ES", Tier: match.TierPossible, Label: dedupe.LabelPossible},
		{RowRef: 3, Source: "ES", Label: dedupe.LabelNotDuplicate},
		{RowRef: 4, Source: "TH", Tier: match.TierSomewhatLikely, Label: dedupe.LabelSomewhatLikely},
		{RowRef: 5, Source: "TH", Label: dedupe.LabelNoIdentity},
	}

	summary := report.Summarize(annotations)
	if summary.Total.Records != 5 {
		t.Fatalf("total records = %d, want 5", summary.Total.Records)
	}
	if summary.Total.Flagged() != 3 {
		t.Fatalf("flagged = %d, want 3", summary.Total.Flagged())
	}
	if summary.Total.FlaggedPercent() != 60 {
		t.Fatalf("flagged percent = %v, want 60", summary.Total.FlaggedPercent())
	}
	if got := summary.Sources; len(got) != 2 || got[0] != "ES" || got[1] != "TH" {
		t.Fatalf("sources = %v", got)
	}

	es := summary.BySource["ES"]
	if es.Likely != 1 || es.Possible != 1 || es.Unique != 1 {
		t.Fatalf("unexpected ES counts: %+v", es)
	}
	th := summary.BySource["TH"]
	if th.SomewhatLikely != 1 || th.NoIdentity != 1 || th.Unique != 0 {
		t.Fatalf("unexpected TH counts: %+v", th)
	}
}

func TestSummarizeHouseholds(t *testing.T) {
	households := []flatten.Household{
		{ID: 1, Type: flatten.HouseholdAdultsAndChildren, Members: 4, Adults: 2, Children: 2, Veterans: 1},
		{ID: 2, Type: flatten.HouseholdWithoutChildren, Members: 1, Youth: 1, YouthHousehold: true, ChronicCount: 1},
		{ID: 3, Type: flatten.HouseholdWithoutChildren, Members: 2, Adults: 2},
	}

	summary := report.SummarizeHouseholds(households)
	if summary.Households != 3 || summary.Persons != 7 {
		t.Fatalf("households/persons = %d/%d", summary.Households, summary.Persons)
	}
	if summary.HouseholdsByType[flatten.HouseholdWithoutChildren] != 2 {
		t.Fatalf("without-children households = %d", summary.HouseholdsByType[flatten.HouseholdWithoutChildren])
	}
	if summary.PersonsByType[flatten.HouseholdAdultsAndChildren] != 4 {
		t.Fatalf("adult+child persons = %d", summary.PersonsByType[flatten.HouseholdAdultsAndChildren])
	}
	if summary.Adults != 4 || summary.Youth != 1 || summary.Children != 2 {
		t.Fatalf("composition = %d/%d/%d", summary.Adults, summary.Youth, summary.Children)
	}
	if summary.YouthHouseholds != 1 || summary.Veterans != 1 || summary.ChronicallyHomeless != 1 {
		t.Fatalf("flags = %d/%d/%d", summary.YouthHouseholds, summary.Veterans, summary.ChronicallyHomeless)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	summary := report.Summarize(nil)
	if summary.Total.Records != 0 || summary.Total.FlaggedPercent() != 0 {
		t.Fatalf("unexpected empty summary: %+v", summary.Total)
	}
}
