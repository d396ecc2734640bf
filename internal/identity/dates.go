package identity

import (
	"strings"
	"time"
)

// dobLayouts lists accepted birth-date spellings, tried in order. US month
// order is preferred for ambiguous dates; day-first layouts only catch
// values the US layouts reject.
var dobLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"1-2-2006",
	"2006/1/2",
	"2/1/2006",
	"2-1-2006",
	"1/2/06",
	"2/1/06",
	"20060102",
}

// ParseDOB parses a birth-date string against the accepted layouts. A
// trailing time component (spreadsheet datetime cells) is ignored.
func ParseDOB(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if i := strings.IndexAny(value, " T"); i > 0 {
		value = value[:i]
	}
	for _, layout := range dobLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// AgeAt returns the whole-year age on the reference date for a person born
// on dob, never negative.
func AgeAt(dob, ref time.Time) int {
	years := ref.Year() - dob.Year()
	if ref.Month() < dob.Month() || (ref.Month() == dob.Month() && ref.Day() < dob.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
