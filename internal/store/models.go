package store

import (
	"strconv"
	"strings"
	"time"

	"pitcount/internal/schema"
	"pitcount/internal/survey"
)

// Dataset is one ingested intake upload. Source labels are unique; ingesting
// a label again replaces the previous dataset.
type Dataset struct {
	ID             int64
	Source         string
	Region         schema.Region
	OriginalFile   string
	HouseholdCount int
	MemberCount    int
	SummaryJSON    string
	CreatedAt      time.Time
}

// Run is one persisted detection run.
type Run struct {
	ID          string
	CreatedAt   time.Time
	CountDate   string
	Sources     []string
	SummaryJSON string
}

// Annotation is one persisted per-record detection outcome.
type Annotation struct {
	RunID          string
	RowRef         int
	DatasetID      int64
	Position       int
	Source         string
	Score          int
	Label          string
	Reason         string
	DuplicatesWith []int
}

// PoolRecord is one candidate-pool member with its storage coordinates. The
// record's RowRef is assigned at load over the combined (dataset, position)
// ordering.
type PoolRecord struct {
	Record    survey.Record
	DatasetID int64
	Position  int
	Region    schema.Region
}

func joinRefs(refs []int) string {
	if len(refs) == 0 {
		return ""
	}
	parts := make([]string, len(refs))
	for i, ref := range refs {
		parts[i] = strconv.Itoa(ref)
	}
	return strings.Join(parts, ",")
}

func splitRefs(value string) []int {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	refs := make([]int, 0, len(parts))
	for _, part := range parts {
		ref, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		refs = append(refs, ref)
	}
	return refs
}

func joinSources(sources []string) string {
	return strings.Join(sources, ",")
}

func splitSources(value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	sources := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			sources = append(sources, part)
		}
	}
	return sources
}

func parseTimestamp(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return ts
}
