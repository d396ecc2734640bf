package dedupe

import (
	"fmt"
	"sort"
	"strings"

	"pitcount/internal/identity"
	"pitcount/internal/match"
	"pitcount/internal/schema"
	"pitcount/internal/services"
	"pitcount/internal/survey"
)

// Candidate pairs one record with the capture descriptor of its source
// region so cross-region pools normalize correctly.
type Candidate struct {
	Record *survey.Record
	Schema *schema.Descriptor
}

// Options configures a scan.
type Options struct {
	// Policy supplies the reference date for birth-date/stated-age
	// reconciliation. A zero policy is pinned to the current date once at
	// scan start so every pair sees the same date.
	Policy match.Policy
	// DemographicNotes appends "(same gender)"/"(same race)" to a reason
	// when every best-tier partner shares the value.
	DemographicNotes bool
}

// Evidence is one record's accumulated matches: partner row references keyed
// by the best tier each pair achieved.
type Evidence map[match.Tier][]int

type tierEvidence struct {
	refs       []int
	rule       match.Rule
	sameGender bool
	sameRace   bool
}

type entry struct {
	candidate Candidate
	profile   identity.Profile
	evidence  map[match.Tier]*tierEvidence
}

// Result holds the scanned pool in canonical order (ascending row
// reference) with each record's profile and evidence.
type Result struct {
	opts    Options
	entries []*entry
	byRef   map[int]*entry
}

// Scan compares every unordered pair of distinct records in the pool.
// Structural problems (nil record, missing source, non-positive or duplicate
// row references, missing descriptor) fail before any comparison runs.
func Scan(pool []Candidate, opts Options) (*Result, error) {
	if err := checkPool(pool); err != nil {
		return nil, err
	}
	opts.Policy = opts.Policy.Resolved()

	result := &Result{
		opts:    opts,
		entries: make([]*entry, 0, len(pool)),
		byRef:   make(map[int]*entry, len(pool)),
	}
	for _, candidate := range pool {
		e := &entry{
			candidate: candidate,
			profile:   identity.Normalize(candidate.Record, candidate.Schema),
			evidence:  make(map[match.Tier]*tierEvidence),
		}
		result.entries = append(result.entries, e)
		result.byRef[candidate.Record.RowRef] = e
	}
	sort.Slice(result.entries, func(i, j int) bool {
		return result.entries[i].candidate.Record.RowRef < result.entries[j].candidate.Record.RowRef
	})

	for i, a := range result.entries {
		if a.profile.NameForm == identity.NameFormNone {
			continue
		}
		for _, b := range result.entries[i+1:] {
			tier, rule := opts.Policy.Compare(a.profile, b.profile)
			if tier == match.TierNone {
				continue
			}
			sameGender := opts.DemographicNotes && fieldsAgree(a.candidate.Record, b.candidate.Record, survey.FieldGender)
			sameRace := opts.DemographicNotes && fieldsAgree(a.candidate.Record, b.candidate.Record, survey.FieldRace)
			a.record(tier, rule, b.candidate.Record.RowRef, sameGender, sameRace)
			b.record(tier, rule, a.candidate.Record.RowRef, sameGender, sameRace)
		}
	}
	return result, nil
}

// Len returns the number of records scanned.
func (r *Result) Len() int {
	return len(r.entries)
}

// Evidence returns a copy of one record's evidence with partner references
// sorted ascending. Every scanned record has an entry, empty when nothing
// matched; an unknown row reference returns nil.
func (r *Result) Evidence(rowRef int) Evidence {
	e, ok := r.byRef[rowRef]
	if !ok {
		return nil
	}
	out := make(Evidence, len(e.evidence))
	for tier, ev := range e.evidence {
		refs := append([]int(nil), ev.refs...)
		sort.Ints(refs)
		out[tier] = refs
	}
	return out
}

func (e *entry) record(tier match.Tier, rule match.Rule, ref int, sameGender, sameRace bool) {
	ev := e.evidence[tier]
	if ev == nil {
		e.evidence[tier] = &tierEvidence{
			refs:       []int{ref},
			rule:       rule,
			sameGender: sameGender,
			sameRace:   sameRace,
		}
		return
	}
	ev.refs = append(ev.refs, ref)
	if rule.StrongerThan(ev.rule) {
		ev.rule = rule
	}
	ev.sameGender = ev.sameGender && sameGender
	ev.sameRace = ev.sameRace && sameRace
}

func checkPool(pool []Candidate) error {
	seen := make(map[int]bool, len(pool))
	for i, candidate := range pool {
		rec := candidate.Record
		if rec == nil {
			return structuralErr(fmt.Sprintf("record %d is nil", i))
		}
		if candidate.Schema == nil {
			return structuralErr(fmt.Sprintf("record %d (%s) has no region descriptor", i, rec.Source))
		}
		if strings.TrimSpace(rec.Source) == "" {
			return structuralErr(fmt.Sprintf("record %d has no source", i))
		}
		if rec.RowRef < 1 {
			return structuralErr(fmt.Sprintf("record %d (%s) has row reference %d", i, rec.Source, rec.RowRef))
		}
		if seen[rec.RowRef] {
			return structuralErr(fmt.Sprintf("duplicate row reference %d", rec.RowRef))
		}
		seen[rec.RowRef] = true
	}
	return nil
}

func structuralErr(message string) error {
	return services.Wrap(services.ErrStructural, "dedupe", "scan", message, nil)
}

func fieldsAgree(a, b *survey.Record, key survey.FieldKey) bool {
	av, bv := a.Field(key), b.Field(key)
	return av != "" && strings.EqualFold(av, bv)
}
