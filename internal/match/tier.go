package match

// Tier is the confidence level a record pair achieves. Ordered: only the
// maximum tier between two records is ever retained.
type Tier int

const (
	TierNone Tier = iota
	TierPossible
	TierSomewhatLikely
	TierLikely
)

func (t Tier) String() string {
	switch t {
	case TierPossible:
		return "possible"
	case TierSomewhatLikely:
		return "somewhat-likely"
	case TierLikely:
		return "likely"
	default:
		return "none"
	}
}

// Score is the tier's ordinal: 0 none, 1 possible, 2 somewhat likely,
// 3 likely.
func (t Tier) Score() int {
	return int(t)
}

// Rule identifies which rung of the ladder matched a pair. Within a tier,
// lower ordinals are stronger evidence.
type Rule int

const (
	RuleNone Rule = iota
	RuleFullNameDOB
	RuleInitialsDOB
	RuleFullNameAge
	RuleInitialsAge
	RuleFullNameRange
	RuleInitialsRange
)

// Tier returns the confidence tier the rule awards.
func (r Rule) Tier() Tier {
	switch r {
	case RuleFullNameDOB, RuleInitialsDOB, RuleFullNameAge:
		return TierLikely
	case RuleInitialsAge, RuleFullNameRange:
		return TierSomewhatLikely
	case RuleInitialsRange:
		return TierPossible
	default:
		return TierNone
	}
}

// Reason renders the human explanation attached to annotations.
func (r Rule) Reason() string {
	switch r {
	case RuleFullNameDOB:
		return "Full name and DOB match"
	case RuleInitialsDOB:
		return "Initials and DOB match"
	case RuleFullNameAge:
		return "Full name and age match"
	case RuleInitialsAge:
		return "Initials and age match"
	case RuleFullNameRange:
		return "Full name and age range match"
	case RuleInitialsRange:
		return "Initials and age range match"
	default:
		return ""
	}
}

// StrongerThan reports whether r outranks other as evidence. RuleNone never
// outranks anything.
func (r Rule) StrongerThan(other Rule) bool {
	if r == RuleNone {
		return false
	}
	return other == RuleNone || r < other
}
