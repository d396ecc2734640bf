package match_test

import (
	"testing"
	"time"

	"pitcount/internal/identity"
	"pitcount/internal/match"
	"pitcount/internal/schema"
	"pitcount/internal/survey"
)

var countDate = time.Date(2026, time.January, 28, 0, 0, 0, 0, time.UTC)

func policy() match.Policy {
	return match.Policy{ReferenceDate: countDate}
}

func fullNameProfile(t *testing.T, first, last string, extra map[survey.FieldKey]string) identity.Profile {
	t.Helper()
	desc, err := schema.ForRegion(schema.RegionGreatLakes)
	if err != nil {
		t.Fatalf("ForRegion: %v", err)
	}
	fields := map[survey.FieldKey]string{
		survey.FieldFirstName: first,
		survey.FieldLastName:  last,
	}
	for k, v := range extra {
		fields[k] = v
	}
	rec := &survey.Record{Source: "ES", RowRef: 1, HouseholdID: 1, Role: survey.RoleAdult, Slot: 1, Fields: fields}
	return identity.Normalize(rec, desc)
}

func initialsProfile(t *testing.T, first, last, third string, extra map[survey.FieldKey]string) identity.Profile {
	t.Helper()
	desc, err := schema.ForRegion(schema.RegionNewEngland)
	if err != nil {
		t.Fatalf("ForRegion: %v", err)
	}
	fields := map[survey.FieldKey]string{
		survey.FieldFirstInitial: first,
		survey.FieldLastInitial:  last,
		survey.FieldLastThird:    third,
	}
	for k, v := range extra {
		fields[k] = v
	}
	rec := &survey.Record{Source: "TH", RowRef: 2, HouseholdID: 1, Role: survey.RoleAdult, Slot: 1, Fields: fields}
	return identity.Normalize(rec, desc)
}

func TestCompareRuleLadder(t *testing.T) {
	dob := map[survey.FieldKey]string{survey.FieldDOB: "1990-01-01"}

	cases := []struct {
		name string
		a, b identity.Profile
		tier match.Tier
		rule match.Rule
	}{
		{
			name: "full names and birth dates",
			a:    fullNameProfile(t, "John", "Smith", dob),
			b:    fullNameProfile(t, "JOHN", "smith", dob),
			tier: match.TierLikely,
			rule: match.RuleFullNameDOB,
		},
		{
			name: "full name versus initials with shared birth date",
			a:    fullNameProfile(t, "John", "Smith", dob),
			b:    initialsProfile(t, "J", "S", "i", dob),
			tier: match.TierLikely,
			rule: match.RuleInitialsDOB,
		},
		{
			name: "full names and equal stated ages",
			a:    fullNameProfile(t, "John", "Smith", map[survey.FieldKey]string{survey.FieldAge: "34"}),
			b:    fullNameProfile(t, "John", "Smith", map[survey.FieldKey]string{survey.FieldAge: "34"}),
			tier: match.TierLikely,
			rule: match.RuleFullNameAge,
		},
		{
			name: "initials and equal stated ages",
			a:    initialsProfile(t, "J", "S", "I", map[survey.FieldKey]string{survey.FieldAge: "34"}),
			b:    initialsProfile(t, "j", "s", "i", map[survey.FieldKey]string{survey.FieldAge: "34"}),
			tier: match.TierSomewhatLikely,
			rule: match.RuleInitialsAge,
		},
		{
			name: "full name with age inside declared range",
			a:    fullNameProfile(t, "John", "Smith", map[survey.FieldKey]string{survey.FieldAge: "31"}),
			b:    fullNameProfile(t, "John", "Smith", map[survey.FieldKey]string{survey.FieldAgeRange: "31-40"}),
			tier: match.TierSomewhatLikely,
			rule: match.RuleFullNameRange,
		},
		{
			name: "initials with age inside declared range",
			a:    initialsProfile(t, "J", "S", "I", map[survey.FieldKey]string{survey.FieldAge: "34"}),
			b:    initialsProfile(t, "J", "S", "I", map[survey.FieldKey]string{survey.FieldAgeRange: "31-40"}),
			tier: match.TierPossible,
			rule: match.RuleInitialsRange,
		},
		{
			name: "overlapping declared ranges on initials",
			a:    initialsProfile(t, "J", "S", "I", map[survey.FieldKey]string{survey.FieldAgeRange: "25-34"}),
			b:    initialsProfile(t, "J", "S", "I", map[survey.FieldKey]string{survey.FieldAgeRange: "31-40"}),
			tier: match.TierPossible,
			rule: match.RuleInitialsRange,
		},
		{
			name: "different surnames never match",
			a:    fullNameProfile(t, "John", "Smith", dob),
			b:    fullNameProfile(t, "John", "Smythe", dob),
			tier: match.TierNone,
			rule: match.RuleNone,
		},
		{
			name: "different triples never match",
			a:    initialsProfile(t, "J", "S", "I", dob),
			b:    initialsProfile(t, "J", "S", "Y", dob),
			tier: match.TierNone,
			rule: match.RuleNone,
		},
		{
			name: "matching names without any age signal",
			a:    fullNameProfile(t, "John", "Smith", nil),
			b:    fullNameProfile(t, "John", "Smith", nil),
			tier: match.TierNone,
			rule: match.RuleNone,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tier, rule := policy().Compare(tc.a, tc.b)
			if tier != tc.tier || rule != tc.rule {
				t.Fatalf("Compare = %s/%v, want %s/%v", tier, rule, tc.tier, tc.rule)
			}
			// Argument order must never change the outcome.
			revTier, revRule := policy().Compare(tc.b, tc.a)
			if revTier != tier || revRule != rule {
				t.Fatalf("Compare not symmetric: %s/%v vs %s/%v", tier, rule, revTier, revRule)
			}
		})
	}
}

func TestCompareBirthDateAgainstStatedAge(t *testing.T) {
	// Born 1990-06-15: turns 36 during 2026, still 35 on the January count
	// date. Both stated ages are consistent; 34 is not.
	dobProfile := fullNameProfile(t, "John", "Smith", map[survey.FieldKey]string{survey.FieldDOB: "1990-06-15"})

	cases := []struct {
		age  string
		tier match.Tier
	}{
		{"35", match.TierLikely},
		{"36", match.TierLikely},
		{"34", match.TierNone},
	}
	for _, tc := range cases {
		aged := fullNameProfile(t, "John", "Smith", map[survey.FieldKey]string{survey.FieldAge: tc.age})
		tier, _ := policy().Compare(dobProfile, aged)
		if tier != tc.tier {
			t.Fatalf("stated age %s: tier = %s, want %s", tc.age, tier, tc.tier)
		}
	}
}

func TestCompareUnequalBirthDatesDoNotReconcile(t *testing.T) {
	// Same derivable age, different birth dates: derivation applies only
	// when exactly one side has a date.
	a := fullNameProfile(t, "John", "Smith", map[survey.FieldKey]string{survey.FieldDOB: "1990-01-01"})
	b := fullNameProfile(t, "John", "Smith", map[survey.FieldKey]string{survey.FieldDOB: "1990-06-01"})

	tier, _ := policy().Compare(a, b)
	if tier != match.TierNone {
		t.Fatalf("tier = %s, want none for unequal birth dates", tier)
	}
}

func TestCompareBirthDateAgainstRange(t *testing.T) {
	dobProfile := initialsProfile(t, "J", "S", "I", map[survey.FieldKey]string{survey.FieldDOB: "1990-06-15"})

	inRange := initialsProfile(t, "J", "S", "I", map[survey.FieldKey]string{survey.FieldAgeRange: "35-44"})
	tier, rule := policy().Compare(dobProfile, inRange)
	if tier != match.TierPossible || rule != match.RuleInitialsRange {
		t.Fatalf("derived age versus range = %s/%v, want possible/initials-range", tier, rule)
	}

	open := initialsProfile(t, "J", "S", "I", map[survey.FieldKey]string{survey.FieldAgeRange: "65+"})
	if tier, _ := policy().Compare(dobProfile, open); tier != match.TierNone {
		t.Fatalf("35-year-old in 65+ bracket = %s, want none", tier)
	}
}

func TestCompareNoNameSignalNeverMatches(t *testing.T) {
	desc, _ := schema.ForRegion(schema.RegionNewEngland)
	blank := identity.Normalize(&survey.Record{
		Source: "ES", RowRef: 3, HouseholdID: 2, Role: survey.RoleAdult, Slot: 1,
		Fields: map[survey.FieldKey]string{survey.FieldDOB: "1990-01-01"},
	}, desc)
	named := fullNameProfile(t, "John", "Smith", map[survey.FieldKey]string{survey.FieldDOB: "1990-01-01"})

	if tier, _ := policy().Compare(blank, named); tier != match.TierNone {
		t.Fatalf("nameless profile matched at %s", tier)
	}
	if tier, _ := policy().Compare(named, blank); tier != match.TierNone {
		t.Fatalf("nameless profile matched at %s (reversed)", tier)
	}
}

func TestRuleMetadata(t *testing.T) {
	if match.TierLikely.Score() != 3 || match.TierNone.Score() != 0 {
		t.Fatalf("tier ordinals: likely=%d none=%d", match.TierLikely.Score(), match.TierNone.Score())
	}
	if match.RuleInitialsDOB.Tier() != match.TierLikely {
		t.Fatalf("initials+DOB should award likely")
	}
	if match.RuleInitialsRange.Tier() != match.TierPossible {
		t.Fatalf("initials+range should award possible")
	}
	if got := match.RuleFullNameDOB.Reason(); got != "Full name and DOB match" {
		t.Fatalf("reason = %q", got)
	}
	if !match.RuleFullNameDOB.StrongerThan(match.RuleInitialsDOB) {
		t.Fatalf("full-name DOB rule should outrank initials DOB rule")
	}
	if match.RuleNone.StrongerThan(match.RuleInitialsRange) {
		t.Fatalf("RuleNone must never outrank a real rule")
	}
}
