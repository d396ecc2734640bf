// Package validate checks categorical survey answers against the HUD option
// lists the intake forms offer.
//
// Unknown values are reported as issues for manual review, never as errors:
// a typo in a race answer should not block detection or export. Empty fields
// are never issues.
package validate

import (
	"fmt"
	"sort"
	"strings"

	"pitcount/internal/survey"
)

// Issue is one out-of-catalog answer found in a record.
type Issue struct {
	RowRef  int
	Source  string
	Field   survey.FieldKey
	Value   string
	Allowed []string
}

func (i Issue) String() string {
	return fmt.Sprintf("row %d (%s): %s value %q is not a recognized option", i.RowRef, i.Source, i.Field, i.Value)
}

// AgeRangeOptions lists the declared age-range buckets intake forms offer.
var AgeRangeOptions = []string{
	"Under 18", "18-24", "25-34", "35-44", "45-54", "55-64", "65+",
}

var sexOptions = []string{
	"Male", "Female", "Refused",
}

var genderOptions = []string{
	"Man", "Woman", "Non-Binary", "Transgender", "Questioning",
	"Culturally Specific Identity", "Different Identity", "Refused",
}

var raceOptions = []string{
	"American Indian, Alaska Native, or Indigenous",
	"Asian or Asian American",
	"Black, African American, or African",
	"Hispanic/Latina/e/o",
	"Middle Eastern or North African",
	"Native Hawaiian or Pacific Islander",
	"White",
	"Refused",
}

var yesNoOptions = []string{
	"Yes", "No", "Refused", "Don't Know",
}

// catalogs maps each validated field to its option list. Multi-select
// answers split before validation.
var catalogs = map[survey.FieldKey]struct {
	options     []string
	multiSelect bool
}{
	survey.FieldAgeRange:           {options: AgeRangeOptions},
	survey.FieldSex:                {options: sexOptions},
	survey.FieldGender:             {options: genderOptions, multiSelect: true},
	survey.FieldRace:               {options: raceOptions, multiSelect: true},
	survey.FieldVeteran:            {options: yesNoOptions},
	survey.FieldDVFleeing:          {options: yesNoOptions},
	survey.FieldDisablingCondition: {options: yesNoOptions},
}

// Check validates every record's categorical answers and returns the issues
// found, ordered by row reference then field name.
func Check(records []survey.Record) []Issue {
	var issues []Issue
	for i := range records {
		issues = append(issues, checkRecord(&records[i])...)
	}
	sort.Slice(issues, func(a, b int) bool {
		if issues[a].RowRef != issues[b].RowRef {
			return issues[a].RowRef < issues[b].RowRef
		}
		return issues[a].Field < issues[b].Field
	})
	return issues
}

func checkRecord(rec *survey.Record) []Issue {
	var issues []Issue
	for key, catalog := range catalogs {
		value := rec.Field(key)
		if value == "" {
			continue
		}
		parts := []string{value}
		if catalog.multiSelect {
			parts = splitMultiSelect(value)
		}
		for _, part := range parts {
			if !allowed(part, catalog.options) {
				issues = append(issues, Issue{
					RowRef:  rec.RowRef,
					Source:  rec.Source,
					Field:   key,
					Value:   part,
					Allowed: catalog.options,
				})
			}
		}
	}
	return issues
}

func splitMultiSelect(value string) []string {
	parts := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ';'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func allowed(value string, options []string) bool {
	for _, option := range options {
		if strings.EqualFold(value, option) {
			return true
		}
	}
	return false
}
