package validate_test

import (
	"testing"

	"pitcount/internal/survey"
	"pitcount/internal/validate"
)

func TestCheckFlagsUnknownValues(t *testing.T) {
	records := []survey.Record{
		{
			Source: "ES",
			RowRef: 1,
			Fields: map[survey.FieldKey]string{
				survey.FieldSex:      "Male",
				survey.FieldAgeRange: "31-40", // not a catalog bucket
			},
		},
		{
			Source: "ES",
			RowRef: 2,
			Fields: map[survey.FieldKey]string{
				survey.FieldAgeRange: "25-34",
				survey.FieldVeteran:  "maybe",
			},
		},
	}

	issues := validate.Check(records)
	if len(issues) != 2 {
		t.Fatalf("issue count = %d, want 2: %v", len(issues), issues)
	}
	if issues[0].RowRef != 1 || issues[0].Field != survey.FieldAgeRange {
		t.Fatalf("unexpected first issue: %+v", issues[0])
	}
	if issues[1].RowRef != 2 || issues[1].Field != survey.FieldVeteran || issues[1].Value != "maybe" {
		t.Fatalf("unexpected second issue: %+v", issues[1])
	}
}

func TestCheckSplitsMultiSelectAnswers(t *testing.T) {
	records := []survey.Record{
		{
			Source: "TH",
			RowRef: 3,
			Fields: map[survey.FieldKey]string{
				survey.FieldRace: "White; Asian or Asian American, Klingon",
			},
		},
	}

	issues := validate.Check(records)
	if len(issues) != 1 {
		t.Fatalf("issue count = %d, want 1: %v", len(issues), issues)
	}
	if issues[0].Value != "Klingon" {
		t.Fatalf("unexpected flagged value: %q", issues[0].Value)
	}
}

func TestCheckIgnoresEmptyAndCaseDifferences(t *testing.T) {
	records := []survey.Record{
		{
			Source: "ES",
			RowRef: 4,
			Fields: map[survey.FieldKey]string{
				survey.FieldSex:      "female",
				survey.FieldAgeRange: "",
				survey.FieldVeteran:  "YES",
			},
		},
	}

	if issues := validate.Check(records); len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}
}
