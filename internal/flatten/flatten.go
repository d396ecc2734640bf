package flatten

import (
	"time"

	"pitcount/internal/identity"
	"pitcount/internal/ingest"
	"pitcount/internal/schema"
	"pitcount/internal/services"
	"pitcount/internal/survey"
)

// Options adjusts flattening behaviour.
type Options struct {
	// ReferenceDate anchors age derivation from birth dates for household
	// classification. Zero means the current date.
	ReferenceDate time.Time
}

// Flatten walks household rows and emits one record per existing member plus
// a household summary per row. Member order is stable: household by
// household, adults before children, slots ascending.
func Flatten(table *ingest.Table, desc *schema.Descriptor, source string, opts Options) ([]survey.Record, []Household, error) {
	if table == nil {
		return nil, nil, services.Wrap(services.ErrStructural, "flatten", "flatten", "no table to flatten", nil)
	}
	if desc == nil {
		return nil, nil, services.Wrap(services.ErrStructural, "flatten", "flatten", "no region descriptor", nil)
	}
	ref := opts.ReferenceDate
	if ref.IsZero() {
		ref = time.Now()
	}

	var records []survey.Record
	var households []Household
	for rowIdx, row := range table.Rows {
		householdID := rowIdx + 1
		var members []survey.Record

		for slot := 1; slot <= desc.MaxAdults; slot++ {
			if rec, ok := extractMember(row, desc, source, householdID, survey.RoleAdult, slot, ref); ok {
				members = append(members, rec)
			}
		}
		for slot := 1; slot <= desc.MaxChildren; slot++ {
			if rec, ok := extractMember(row, desc, source, householdID, survey.RoleChild, slot, ref); ok {
				members = append(members, rec)
			}
		}
		if len(members) == 0 {
			continue
		}

		households = append(households, summarize(householdID, members, ref))
		records = append(records, members...)
	}
	return records, households, nil
}

// extractMember resolves one member slot. The member exists when its sex or
// race answer is present; slots with neither are treated as unoccupied even
// when stray cells carry values.
func extractMember(row map[string]string, desc *schema.Descriptor, source string, householdID int, role survey.Role, slot int, ref time.Time) (survey.Record, bool) {
	rec := survey.Record{
		Source:      source,
		HouseholdID: householdID,
		Role:        role,
		Slot:        slot,
	}
	for _, key := range schema.MemberFields() {
		for _, header := range desc.MemberColumns(role, slot, key) {
			if value := row[header]; value != "" {
				rec.SetField(key, value)
				break
			}
		}
	}
	if rec.Field(survey.FieldSex) == "" && rec.Field(survey.FieldRace) == "" {
		return survey.Record{}, false
	}

	synthesizeInitials(&rec)
	if role == survey.RoleAdult && isYouthAge(&rec, ref) {
		rec.Role = survey.RoleYouth
	}
	return rec, true
}

// synthesizeInitials fills the privacy triple from captured full names so
// full-name uploads stay comparable against initials-only uploads. Captured
// values are never overwritten.
func synthesizeInitials(rec *survey.Record) {
	if rec.Field(survey.FieldFirstInitial) == "" {
		if letter := nthRune(rec.Field(survey.FieldFirstName), 1); letter != "" {
			rec.SetField(survey.FieldFirstInitial, letter)
		}
	}
	last := rec.Field(survey.FieldLastName)
	if last == "" {
		last = rec.Field(survey.FieldFirstLetterLast)
	}
	if rec.Field(survey.FieldLastInitial) == "" {
		if letter := nthRune(last, 1); letter != "" {
			rec.SetField(survey.FieldLastInitial, letter)
		}
	}
	if rec.Field(survey.FieldLastThird) == "" {
		if letter := nthRune(rec.Field(survey.FieldLastName), 3); letter != "" {
			rec.SetField(survey.FieldLastThird, letter)
		}
	}
}

func nthRune(value string, n int) string {
	runes := []rune(value)
	if n < 1 || len(runes) < n {
		return ""
	}
	return string(runes[n-1])
}

// memberAge derives a whole-year age for classification: exact age first,
// then birth date, then the declared bracket's lower bound. Returns false
// when no age signal exists.
func memberAge(rec *survey.Record, ref time.Time) (int, bool) {
	profile := identity.Normalize(rec, nil)
	switch profile.AgeForm {
	case identity.AgeFormExact:
		return profile.Age, true
	case identity.AgeFormDOB:
		return identity.AgeAt(profile.DOB, ref), true
	case identity.AgeFormRange:
		return profile.Bracket.Lo, true
	}
	return 0, false
}

func isYouthAge(rec *survey.Record, ref time.Time) bool {
	age, ok := memberAge(rec, ref)
	return ok && age >= 18 && age <= 24
}
