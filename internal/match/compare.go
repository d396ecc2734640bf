package match

import (
	"time"

	"pitcount/internal/identity"
)

// Policy fixes the reference date for birth-date/stated-age reconciliation.
// The zero value resolves the date per comparison; scans pin it once up
// front so every pair in a run sees the same date.
type Policy struct {
	ReferenceDate time.Time
}

// Resolved returns the policy with a concrete reference date.
func (p Policy) Resolved() Policy {
	if p.ReferenceDate.IsZero() {
		p.ReferenceDate = time.Now()
	}
	return p
}

// Compare evaluates the rule ladder strongest-first and returns the first
// tier satisfied along with the rule that fired. Symmetric in its arguments;
// profiles lacking a name signal never match.
func (p Policy) Compare(a, b identity.Profile) (Tier, Rule) {
	if a.NameForm == identity.NameFormNone || b.NameForm == identity.NameFormNone {
		return TierNone, RuleNone
	}

	names := a.NameForm == identity.NameFormFull && b.NameForm == identity.NameFormFull &&
		a.FirstKey == b.FirstKey && a.LastKey == b.LastKey
	triples := a.Triple.Valid() && b.Triple.Valid() && a.Triple.Equal(b.Triple)
	if !names && !triples {
		return TierNone, RuleNone
	}

	dob := birthDatesEqual(a, b)
	ages := p.exactAgesEqual(a, b)
	ranged := p.rangeCompatible(a, b)

	switch {
	case names && dob:
		return TierLikely, RuleFullNameDOB
	case triples && dob:
		return TierLikely, RuleInitialsDOB
	case names && ages:
		return TierLikely, RuleFullNameAge
	case triples && ages:
		return TierSomewhatLikely, RuleInitialsAge
	case names && ranged:
		return TierSomewhatLikely, RuleFullNameRange
	case triples && ranged:
		return TierPossible, RuleInitialsRange
	}
	return TierNone, RuleNone
}

func birthDatesEqual(a, b identity.Profile) bool {
	if a.AgeForm != identity.AgeFormDOB || b.AgeForm != identity.AgeFormDOB {
		return false
	}
	ay, am, ad := a.DOB.Date()
	by, bm, bd := b.DOB.Date()
	return ay == by && am == bm && ad == bd
}

// exactAgesEqual covers stated-age equality and the one-sided birth-date
// derivation. Two differing birth dates never reconcile through derived
// ages.
func (p Policy) exactAgesEqual(a, b identity.Profile) bool {
	switch {
	case a.AgeForm == identity.AgeFormExact && b.AgeForm == identity.AgeFormExact:
		return a.Age == b.Age
	case a.AgeForm == identity.AgeFormDOB && b.AgeForm == identity.AgeFormExact:
		return p.consistent(a.DOB, b.Age)
	case a.AgeForm == identity.AgeFormExact && b.AgeForm == identity.AgeFormDOB:
		return p.consistent(b.DOB, a.Age)
	}
	return false
}

func (p Policy) rangeCompatible(a, b identity.Profile) bool {
	switch {
	case a.AgeForm == identity.AgeFormRange && b.AgeForm == identity.AgeFormRange:
		return a.Bracket.Overlaps(b.Bracket)
	case a.AgeForm == identity.AgeFormRange:
		return p.agesWithin(b, a.Bracket)
	case b.AgeForm == identity.AgeFormRange:
		return p.agesWithin(a, b.Bracket)
	}
	return false
}

func (p Policy) agesWithin(profile identity.Profile, bracket identity.Bracket) bool {
	switch profile.AgeForm {
	case identity.AgeFormExact:
		return bracket.Contains(profile.Age)
	case identity.AgeFormDOB:
		for _, age := range p.candidateAges(profile.DOB) {
			if bracket.Contains(age) {
				return true
			}
		}
	}
	return false
}

func (p Policy) consistent(dob time.Time, age int) bool {
	for _, candidate := range p.candidateAges(dob) {
		if candidate == age {
			return true
		}
	}
	return false
}

// candidateAges returns the ages a person born on dob can be during the
// reference year: the age they turn, and one less for a birthday not yet
// reached.
func (p Policy) candidateAges(dob time.Time) []int {
	ref := p.ReferenceDate
	if ref.IsZero() {
		ref = time.Now()
	}
	turns := ref.Year() - dob.Year()
	ages := make([]int, 0, 2)
	for _, age := range []int{turns, turns - 1} {
		if age >= 0 {
			ages = append(ages, age)
		}
	}
	return ages
}
