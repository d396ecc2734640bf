package identity

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"

	"pitcount/internal/schema"
	"pitcount/internal/survey"
)

// defaultPlan consults every known alias chain; used when no region
// descriptor is supplied.
var defaultPlan = schema.FieldPlan{
	FirstName:    []survey.FieldKey{survey.FieldFirstName},
	FirstInitial: []survey.FieldKey{survey.FieldFirstInitial},
	LastName:     []survey.FieldKey{survey.FieldLastName, survey.FieldFirstLetterLast},
	LastInitial:  []survey.FieldKey{survey.FieldLastInitial, survey.FieldFirstLetterLast},
	LastThird:    []survey.FieldKey{survey.FieldLastThird},
	DOB:          []survey.FieldKey{survey.FieldDOB},
	Age:          []survey.FieldKey{survey.FieldAge},
	AgeRange:     []survey.FieldKey{survey.FieldAgeRange},
}

// Normalize derives the identity profile for one flattened record through
// the region descriptor's field plan. A nil descriptor falls back to
// consulting every known alias. Resolution order for the name: full-name
// pair first, initials triple second; for the age: birth date, exact age,
// then declared bracket. Malformed values degrade to the next fallback;
// Normalize never errors and never panics.
func Normalize(rec *survey.Record, desc *schema.Descriptor) Profile {
	var profile Profile
	if rec == nil {
		return profile
	}
	plan := defaultPlan
	if desc != nil {
		plan = desc.Plan(rec.Role)
	}

	first := foldName(rec.FirstNonEmpty(plan.FirstName...))
	last := foldName(rec.FirstNonEmpty(plan.LastName...))

	triple := Triple{
		First: initialLetter(rec.FirstNonEmpty(plan.FirstInitial...)),
		Last:  initialLetter(rec.FirstNonEmpty(plan.LastInitial...)),
		Third: initialLetter(rec.FirstNonEmpty(plan.LastThird...)),
	}
	if triple.First == "" {
		triple.First = initialLetter(first)
	}
	if triple.Last == "" {
		triple.Last = initialLetter(last)
	}
	if triple.Third == "" {
		triple.Third = nthLetter(last, 3)
	}

	switch {
	case first != "" && last != "":
		profile.NameForm = NameFormFull
		profile.FirstKey = first
		profile.LastKey = last
		profile.Triple = triple
	case triple.Valid():
		profile.NameForm = NameFormInitials
		profile.Triple = triple
	}

	if dob, ok := ParseDOB(rec.FirstNonEmpty(plan.DOB...)); ok {
		profile.AgeForm = AgeFormDOB
		profile.DOB = dob
	} else if age, ok := parseAge(rec.FirstNonEmpty(plan.Age...)); ok {
		profile.AgeForm = AgeFormExact
		profile.Age = age
	} else if bracket, ok := ParseBracket(rec.FirstNonEmpty(plan.AgeRange...)); ok {
		profile.AgeForm = AgeFormRange
		profile.Bracket = bracket
	}
	return profile
}

// foldName produces a case-insensitive comparison key with inner whitespace
// collapsed to single spaces.
func foldName(value string) string {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return ""
	}
	return cases.Fold().String(strings.Join(fields, " "))
}

// initialLetter returns the first letter or digit of a value, uppercased.
// Anything else (punctuation-only, empty) yields "".
func initialLetter(value string) string {
	return nthLetter(value, 1)
}

// nthLetter returns the uppercased n-th character of a value, counting from
// 1, when that character is a letter or digit. Derived surname third letters
// come through here, so a too-short token or a space at that position yields
// "" and keeps the triple incomplete.
func nthLetter(value string, n int) string {
	runes := []rune(strings.TrimSpace(value))
	if n < 1 || len(runes) < n {
		return ""
	}
	r := runes[n-1]
	if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
		return ""
	}
	return strings.ToUpper(string(r))
}

// parseAge parses a non-negative whole-year age, tolerating the ".0" suffix
// spreadsheet numeric cells produce.
func parseAge(value string) (int, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(value); err == nil {
		if n < 0 {
			return 0, false
		}
		return n, true
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f < 0 || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}
