package dedupe

import (
	"sort"
	"strings"

	"pitcount/internal/match"
)

// Human labels attached to annotations and rendered by exports.
const (
	LabelLikely         = "Likely Duplicate"
	LabelSomewhatLikely = "Somewhat Likely Duplicate"
	LabelPossible       = "Possible Duplicate"
	LabelNotDuplicate   = "Not Duplicate"
	LabelNoIdentity     = "Incomplete/No Identity Data"
)

// Label returns the human label for a tier above none.
func Label(tier match.Tier) string {
	switch tier {
	case match.TierLikely:
		return LabelLikely
	case match.TierSomewhatLikely:
		return LabelSomewhatLikely
	case match.TierPossible:
		return LabelPossible
	default:
		return LabelNotDuplicate
	}
}

// Annotation is the engine's final output for one record. DuplicatesWith
// holds only the winning tier's partners, ascending; lower-tier matches are
// discarded once a higher tier exists.
type Annotation struct {
	RowRef         int
	Source         string
	Tier           match.Tier
	Score          int
	Label          string
	Reason         string
	DuplicatesWith []int
}

// Annotate produces one annotation per scanned record, in ascending
// row-reference order. Never mutates the result; calling it again yields
// identical output.
func (r *Result) Annotate() []Annotation {
	annotations := make([]Annotation, 0, len(r.entries))
	for _, e := range r.entries {
		annotations = append(annotations, e.annotate(r.opts))
	}
	return annotations
}

func (e *entry) annotate(opts Options) Annotation {
	rec := e.candidate.Record
	ann := Annotation{RowRef: rec.RowRef, Source: rec.Source, Label: LabelNotDuplicate}

	best := match.TierNone
	for tier := range e.evidence {
		if tier > best {
			best = tier
		}
	}
	if best == match.TierNone {
		if e.profile.NoIdentity() {
			ann.Label = LabelNoIdentity
		}
		return ann
	}

	ev := e.evidence[best]
	ann.Tier = best
	ann.Score = best.Score()
	ann.Label = Label(best)
	ann.Reason = reason(ev, opts)
	ann.DuplicatesWith = sortedRefs(ev.refs)
	return ann
}

func reason(ev *tierEvidence, opts Options) string {
	text := ev.rule.Reason()
	if !opts.DemographicNotes {
		return text
	}
	notes := make([]string, 0, 2)
	if ev.sameGender {
		notes = append(notes, "same gender")
	}
	if ev.sameRace {
		notes = append(notes, "same race")
	}
	if len(notes) == 0 {
		return text
	}
	return text + " (" + strings.Join(notes, ", ") + ")"
}

func sortedRefs(refs []int) []int {
	out := append([]int(nil), refs...)
	sort.Ints(out)
	// refs are recorded once per unordered pair, so no duplicates to drop.
	return out
}
