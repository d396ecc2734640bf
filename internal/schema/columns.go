package schema

import (
	"fmt"

	"pitcount/internal/survey"
)

// baseAliases maps each canonical field to its raw header spellings for the
// primary adult, ordered by recency: the current intake form's header first,
// then spellings from earlier form revisions. Other member slots use the same
// spellings behind a slot prefix.
var baseAliases = map[survey.FieldKey][]string{
	survey.FieldFirstInitial:    {"1st Letter of First Name", "First Initial of First Name"},
	survey.FieldLastInitial:     {"1st Letter of Last Name", "First Initial of Last Name"},
	survey.FieldLastThird:       {"3rd Letter of Last Name", "Third Letter of Last Name"},
	survey.FieldFirstName:       {"First Name"},
	survey.FieldLastName:        {"Last Name"},
	survey.FieldFirstLetterLast: {"First Letter of Last Name"},
	survey.FieldDOB:             {"Date of Birth", "DOB"},
	survey.FieldAge:             {"Age"},
	survey.FieldAgeRange:        {"Age Range"},

	survey.FieldSex:          {"Sex"},
	survey.FieldGender:       {"Gender"},
	survey.FieldRace:         {"Race/Ethnicity", "Race"},
	survey.FieldRelationship: {"Relationship to Head of Household", "Relationship"},
	survey.FieldVeteran:      {"Veteran Status (Yes/No)", "Veteran Status"},
	survey.FieldDVFleeing: {
		"Currently Fleeing Domestic/Sexual/Dating Violence",
		"Are you currently fleeing domestic violence?",
	},
	survey.FieldDisablingCondition: {"Disabling Condition (Yes/No)", "Disabling Condition"},
	survey.FieldHomelessDuration:   {"Length of Time Homeless", "How Long Homeless"},
	survey.FieldTimesHomeless:      {"Number of Times Homeless in Past 3 Years", "Times Homeless in Past 3 Years"},
}

// memberFieldOrder fixes the canonical column order used by flattening,
// validation, and export.
var memberFieldOrder = []survey.FieldKey{
	survey.FieldFirstName,
	survey.FieldFirstInitial,
	survey.FieldLastName,
	survey.FieldLastInitial,
	survey.FieldLastThird,
	survey.FieldFirstLetterLast,
	survey.FieldDOB,
	survey.FieldAge,
	survey.FieldAgeRange,
	survey.FieldSex,
	survey.FieldGender,
	survey.FieldRace,
	survey.FieldRelationship,
	survey.FieldVeteran,
	survey.FieldDVFleeing,
	survey.FieldDisablingCondition,
	survey.FieldHomelessDuration,
	survey.FieldTimesHomeless,
}

// MemberFields lists the canonical keys a flattened member record may carry,
// in canonical column order.
func MemberFields() []survey.FieldKey {
	fields := make([]survey.FieldKey, len(memberFieldOrder))
	copy(fields, memberFieldOrder)
	return fields
}

// SlotPrefix returns the raw-header prefix for a member slot. The primary
// adult's headers are unprefixed; additional adults and children are
// prefixed per the intake form ("Adult/Parent #2: ", "Child #1: ").
func SlotPrefix(role survey.Role, slot int) string {
	if role == survey.RoleChild {
		return fmt.Sprintf("Child #%d: ", slot)
	}
	if slot <= 1 {
		return ""
	}
	return fmt.Sprintf("Adult/Parent #%d: ", slot)
}

// MemberColumns returns the ordered raw-header aliases carrying one canonical
// field for a member slot.
func (d *Descriptor) MemberColumns(role survey.Role, slot int, key survey.FieldKey) []string {
	aliases, ok := baseAliases[key]
	if !ok {
		return nil
	}
	prefix := SlotPrefix(role, slot)
	headers := make([]string, 0, len(aliases))
	for _, alias := range aliases {
		headers = append(headers, prefix+alias)
	}
	return headers
}
