package schema

import (
	"fmt"
	"strings"

	"pitcount/internal/survey"
)

// Region identifies a regional data-capture schema.
type Region string

const (
	RegionNewEngland Region = "new-england"
	RegionGreatLakes Region = "great-lakes"
)

// Regions lists the supported regions in detection order.
func Regions() []Region {
	return []Region{RegionNewEngland, RegionGreatLakes}
}

// DisplayName returns the human form of the region name.
func (r Region) DisplayName() string {
	switch r {
	case RegionNewEngland:
		return "New England"
	case RegionGreatLakes:
		return "Great Lakes"
	default:
		return string(r)
	}
}

// ParseRegion accepts a region in id or display form, case-insensitively.
func ParseRegion(value string) (Region, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = strings.ReplaceAll(normalized, " ", "-")
	normalized = strings.ReplaceAll(normalized, "_", "-")
	for _, region := range Regions() {
		if normalized == string(region) {
			return region, nil
		}
	}
	return "", fmt.Errorf("unknown region %q (expected one of: new-england, great-lakes)", value)
}

// NameCapture describes how a region records member names.
type NameCapture int

const (
	// NameInitialsTriple captures first-name initial, surname initial, and
	// the surname's third letter.
	NameInitialsTriple NameCapture = iota
	// NameFirstPlusLast captures the full first name plus a surname token,
	// either the full surname or just its first letter.
	NameFirstPlusLast
)

// ChildAgeCapture describes which age signal child slots carry.
type ChildAgeCapture int

const (
	ChildBirthDates ChildAgeCapture = iota
	ChildAgesOnly
)

// Descriptor is the capture schema for one region. Values returned by
// ForRegion are shared; callers must not mutate them.
type Descriptor struct {
	Region      Region
	NameCapture NameCapture
	ChildAge    ChildAgeCapture
	MaxAdults   int
	MaxChildren int
	Timezone    string

	signatures []signatureGroup
}

// FieldPlan lists, per identity slot, the ordered canonical keys the
// normalizer consults. The first key holding a value wins.
type FieldPlan struct {
	FirstName    []survey.FieldKey
	FirstInitial []survey.FieldKey
	LastName     []survey.FieldKey
	LastInitial  []survey.FieldKey
	LastThird    []survey.FieldKey
	DOB          []survey.FieldKey
	Age          []survey.FieldKey
	AgeRange     []survey.FieldKey
}

// Plan returns the normalizer field plan for a role in this region. The
// great-lakes surname token may live under the first-letter-of-last-name
// column, and its child slots never carry birth dates.
func (d *Descriptor) Plan(role survey.Role) FieldPlan {
	plan := FieldPlan{
		FirstName:    []survey.FieldKey{survey.FieldFirstName},
		FirstInitial: []survey.FieldKey{survey.FieldFirstInitial},
		LastName:     []survey.FieldKey{survey.FieldLastName},
		LastInitial:  []survey.FieldKey{survey.FieldLastInitial},
		LastThird:    []survey.FieldKey{survey.FieldLastThird},
		DOB:          []survey.FieldKey{survey.FieldDOB},
		Age:          []survey.FieldKey{survey.FieldAge},
		AgeRange:     []survey.FieldKey{survey.FieldAgeRange},
	}
	if d.NameCapture == NameFirstPlusLast {
		plan.LastName = append(plan.LastName, survey.FieldFirstLetterLast)
		plan.LastInitial = append(plan.LastInitial, survey.FieldFirstLetterLast)
	}
	if role == survey.RoleChild && d.ChildAge == ChildAgesOnly {
		plan.DOB = nil
	}
	return plan
}

var (
	newEngland = &Descriptor{
		Region:      RegionNewEngland,
		NameCapture: NameInitialsTriple,
		ChildAge:    ChildBirthDates,
		MaxAdults:   4,
		MaxChildren: 6,
		Timezone:    "America/New_York",
		signatures:  newEnglandSignatures,
	}
	greatLakes = &Descriptor{
		Region:      RegionGreatLakes,
		NameCapture: NameFirstPlusLast,
		ChildAge:    ChildAgesOnly,
		MaxAdults:   2,
		MaxChildren: 6,
		Timezone:    "America/Chicago",
		signatures:  greatLakesSignatures,
	}
)

// ForRegion returns the shared capture descriptor for a region.
func ForRegion(region Region) (*Descriptor, error) {
	switch region {
	case RegionNewEngland:
		return newEngland, nil
	case RegionGreatLakes:
		return greatLakes, nil
	default:
		return nil, fmt.Errorf("unknown region %q", region)
	}
}
