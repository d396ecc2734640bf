package survey

import "strings"

// FieldKey names one canonical member attribute produced by flattening.
// Raw spreadsheet headers are resolved to these keys before any downstream
// component sees the data.
type FieldKey string

const (
	FieldFirstName       FieldKey = "first_name"
	FieldFirstInitial    FieldKey = "first_initial"
	FieldLastName        FieldKey = "last_name"
	FieldLastInitial     FieldKey = "last_initial"
	FieldLastThird       FieldKey = "last_third"
	FieldFirstLetterLast FieldKey = "first_letter_last"
	FieldDOB             FieldKey = "dob"
	FieldAge             FieldKey = "age"
	FieldAgeRange        FieldKey = "age_range"

	FieldSex                FieldKey = "sex"
	FieldGender             FieldKey = "gender"
	FieldRace               FieldKey = "race"
	FieldRelationship       FieldKey = "relationship"
	FieldVeteran            FieldKey = "veteran"
	FieldDVFleeing          FieldKey = "dv_fleeing"
	FieldDisablingCondition FieldKey = "disabling_condition"
	FieldHomelessDuration   FieldKey = "homeless_duration"
	FieldTimesHomeless      FieldKey = "times_homeless"
)

// Role classifies a household member by intake slot. Adults in the 18-24
// bracket are upgraded to RoleYouth during flattening.
type Role string

const (
	RoleAdult Role = "adult"
	RoleYouth Role = "youth"
	RoleChild Role = "child"
)

// Record is one household member flattened from an intake upload. RowRef is
// the member's 1-based position in the combined candidate pool and doubles as
// the human-facing row number after the export header offset. Records are
// immutable once built; the detection core never writes to one.
type Record struct {
	Source      string
	RowRef      int
	HouseholdID int
	Role        Role
	Slot        int
	Fields      map[FieldKey]string
}

// Field returns the trimmed value stored under key, or "" when the field is
// absent or whitespace-only.
func (r *Record) Field(key FieldKey) string {
	if r == nil || r.Fields == nil {
		return ""
	}
	return strings.TrimSpace(r.Fields[key])
}

// FirstNonEmpty resolves an ordered alias chain: the first key holding a
// non-empty value wins and later keys never override it.
func (r *Record) FirstNonEmpty(keys ...FieldKey) string {
	for _, key := range keys {
		if v := r.Field(key); v != "" {
			return v
		}
	}
	return ""
}

// SetField stores a value, allocating the field map on first use. Flattening
// uses it while assembling a record; callers beyond that treat records as
// read-only.
func (r *Record) SetField(key FieldKey, value string) {
	if r.Fields == nil {
		r.Fields = make(map[FieldKey]string)
	}
	r.Fields[key] = value
}
