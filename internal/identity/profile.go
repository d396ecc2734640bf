package identity

import (
	"fmt"
	"time"
)

// NameForm tags how a profile's name signal is represented.
type NameForm int

const (
	NameFormNone NameForm = iota
	NameFormInitials
	NameFormFull
)

func (f NameForm) String() string {
	switch f {
	case NameFormInitials:
		return "initials"
	case NameFormFull:
		return "full-name"
	default:
		return "none"
	}
}

// AgeForm tags how a profile's age signal is represented.
type AgeForm int

const (
	AgeFormNone AgeForm = iota
	AgeFormRange
	AgeFormExact
	AgeFormDOB
)

func (f AgeForm) String() string {
	switch f {
	case AgeFormRange:
		return "age-range"
	case AgeFormExact:
		return "exact-age"
	case AgeFormDOB:
		return "birth-date"
	default:
		return "none"
	}
}

// Triple is the privacy-preserving partial-name signal: first-name initial,
// surname initial, and the surname's third letter, each a single uppercased
// character. A triple participates in matching only when complete.
type Triple struct {
	First string
	Last  string
	Third string
}

func (t Triple) Valid() bool {
	return t.First != "" && t.Last != "" && t.Third != ""
}

func (t Triple) Equal(other Triple) bool {
	return t.First == other.First && t.Last == other.Last && t.Third == other.Third
}

func (t Triple) String() string {
	if !t.Valid() {
		return ""
	}
	return t.First + "/" + t.Last + "/" + t.Third
}

// Bracket is a declared age range with inclusive bounds; OpenEnded means no
// upper bound ("65+").
type Bracket struct {
	Lo        int
	Hi        int
	OpenEnded bool
}

// Contains reports whether an exact age falls inside the bracket. Boundary
// ages count as contained.
func (b Bracket) Contains(age int) bool {
	return age >= b.Lo && (b.OpenEnded || age <= b.Hi)
}

// Overlaps reports whether two brackets share at least one age.
func (b Bracket) Overlaps(other Bracket) bool {
	if !b.OpenEnded && other.Lo > b.Hi {
		return false
	}
	if !other.OpenEnded && b.Lo > other.Hi {
		return false
	}
	return true
}

func (b Bracket) String() string {
	if b.OpenEnded {
		return fmt.Sprintf("%d+", b.Lo)
	}
	return fmt.Sprintf("%d-%d", b.Lo, b.Hi)
}

// Profile is the canonical identity signal derived from one record. FirstKey
// and LastKey are folded, whitespace-collapsed comparison keys populated for
// full-name profiles; Triple is populated whenever derivable, regardless of
// name form.
type Profile struct {
	NameForm NameForm
	FirstKey string
	LastKey  string
	Triple   Triple

	AgeForm AgeForm
	DOB     time.Time
	Age     int
	Bracket Bracket
}

// NoIdentity reports whether the profile carries no matchable signal at all,
// the distinct "no identity data" outcome.
func (p Profile) NoIdentity() bool {
	return p.NameForm == NameFormNone && p.AgeForm == AgeFormNone
}
