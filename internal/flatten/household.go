package flatten

import (
	"strings"
	"time"

	"pitcount/internal/survey"
)

// HouseholdType buckets a household per HUD reporting conventions.
type HouseholdType string

const (
	HouseholdAdultsAndChildren HouseholdType = "Households with at Least One Adult and One Child"
	HouseholdWithoutChildren   HouseholdType = "Households without Children"
	HouseholdOnlyChildren      HouseholdType = "Households with Only Children"
)

// Household is the composition summary for one intake row.
type Household struct {
	ID       int
	Type     HouseholdType
	Members  int
	Adults   int
	Youth    int
	Children int
	// YouthHousehold marks households where every member is under 25 and at
	// least one is 18-24.
	YouthHousehold bool
	Veterans       int
	// ChronicCount is the number of members meeting the chronic-homelessness
	// screen: a disabling condition plus a year or more homeless, or four or
	// more episodes in three years.
	ChronicCount int
}

func summarize(id int, members []survey.Record, ref time.Time) Household {
	hh := Household{ID: id, Members: len(members)}

	allUnder25 := true
	for i := range members {
		rec := &members[i]
		switch rec.Role {
		case survey.RoleChild:
			hh.Children++
		case survey.RoleYouth:
			hh.Youth++
		default:
			hh.Adults++
		}
		if age, ok := memberAge(rec, ref); !ok || age >= 25 {
			allUnder25 = false
		}
		if isAffirmative(rec.Field(survey.FieldVeteran)) {
			hh.Veterans++
		}
		if isChronic(rec) {
			hh.ChronicCount++
		}
	}

	hh.YouthHousehold = allUnder25 && hh.Youth > 0

	adults := hh.Adults + hh.Youth
	switch {
	case adults > 0 && hh.Children > 0:
		hh.Type = HouseholdAdultsAndChildren
	case adults > 0:
		hh.Type = HouseholdWithoutChildren
	default:
		hh.Type = HouseholdOnlyChildren
	}
	return hh
}

// isChronic applies the chronic-homelessness screen when the intake form
// captured the underlying questions; absent answers never qualify.
func isChronic(rec *survey.Record) bool {
	if !isAffirmative(rec.Field(survey.FieldDisablingCondition)) {
		return false
	}
	duration := strings.ToLower(rec.Field(survey.FieldHomelessDuration))
	if strings.Contains(duration, "year") && !strings.Contains(duration, "less") {
		return true
	}
	times := strings.ToLower(rec.Field(survey.FieldTimesHomeless))
	return strings.HasPrefix(times, "4") || strings.Contains(times, "4 or more")
}

func isAffirmative(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "y", "true", "1":
		return true
	default:
		return false
	}
}
