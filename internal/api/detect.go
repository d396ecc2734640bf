package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"pitcount/internal/config"
	"pitcount/internal/dedupe"
	"pitcount/internal/logging"
	"pitcount/internal/match"
	"pitcount/internal/report"
	"pitcount/internal/schema"
	"pitcount/internal/services"
	"pitcount/internal/store"
)

// DetectRequest configures one duplicate-detection run.
type DetectRequest struct {
	Config *config.Config
	Logger *slog.Logger
	// Sources limits the candidate pool to named dataset labels. Empty scans
	// every stored dataset.
	Sources []string
	// CountDate overrides the configured count date (YYYY-MM-DD) used for
	// birth-date/stated-age reconciliation.
	CountDate string
}

// DetectResult carries the persisted run and its per-record annotations.
type DetectResult struct {
	Run         store.Run
	Annotations []dedupe.Annotation
	Summary     report.DedupSummary
}

// Detect scans every unordered pair across the stored datasets, annotates
// each record with its best match, and persists the run.
func Detect(ctx context.Context, req DetectRequest) (DetectResult, error) {
	cfg := req.Config
	if cfg == nil {
		return DetectResult{}, services.Wrap(services.ErrConfiguration, "api", "detect", "configuration is required", nil)
	}
	referenceDate, err := resolveCountDate(cfg, req.CountDate)
	if err != nil {
		return DetectResult{}, err
	}

	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	logger := logging.NewComponentLogger(logging.WithContext(ctx, req.Logger), "detect")

	lock, err := store.AcquireLock(cfg)
	if err != nil {
		return DetectResult{}, err
	}
	defer lock.Release()

	st, err := store.Open(cfg)
	if err != nil {
		return DetectResult{}, err
	}
	defer st.Close()

	// Sort requested sources so the pool ordering (and hence every row
	// reference) is reproducible when export reloads it from run.Sources.
	sources := append([]string(nil), req.Sources...)
	sort.Strings(sources)

	pool, err := st.LoadPool(ctx, sources)
	if err != nil {
		return DetectResult{}, err
	}
	if len(pool) == 0 {
		return DetectResult{}, services.Wrap(services.ErrValidation, "api", "detect",
			"no datasets to scan (run ingest first)", nil)
	}

	candidates, err := buildCandidates(pool)
	if err != nil {
		return DetectResult{}, err
	}
	logger.Info("scanning candidate pool",
		logging.Int("records", len(pool)),
		logging.String("count_date", referenceDate.Format("2006-01-02")))

	result, err := dedupe.Scan(candidates, dedupe.Options{
		Policy:           match.Policy{ReferenceDate: referenceDate},
		DemographicNotes: cfg.Detection.DemographicNotes,
	})
	if err != nil {
		return DetectResult{}, err
	}
	annotations := result.Annotate()
	summary := report.Summarize(annotations)
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return DetectResult{}, fmt.Errorf("marshal run summary: %w", err)
	}

	run := store.Run{
		ID:          runID,
		CreatedAt:   time.Now().UTC(),
		CountDate:   referenceDate.Format("2006-01-02"),
		Sources:     summary.Sources,
		SummaryJSON: string(summaryJSON),
	}
	stored, err := storedAnnotations(runID, pool, annotations)
	if err != nil {
		return DetectResult{}, err
	}
	if err := st.SaveRun(ctx, run, stored); err != nil {
		return DetectResult{}, err
	}

	logger.Info("run persisted",
		logging.Int("records", summary.Total.Records),
		logging.Int("flagged", summary.Total.Flagged()),
		logging.Int("no_identity", summary.Total.NoIdentity))

	return DetectResult{Run: run, Annotations: annotations, Summary: summary}, nil
}

// buildCandidates pairs each pool record with its region's capture schema.
func buildCandidates(pool []store.PoolRecord) ([]dedupe.Candidate, error) {
	descriptors := make(map[schema.Region]*schema.Descriptor)
	candidates := make([]dedupe.Candidate, 0, len(pool))
	for i := range pool {
		pr := &pool[i]
		desc, ok := descriptors[pr.Region]
		if !ok {
			var err error
			desc, err = schema.ForRegion(pr.Region)
			if err != nil {
				return nil, err
			}
			descriptors[pr.Region] = desc
		}
		candidates = append(candidates, dedupe.Candidate{Record: &pr.Record, Schema: desc})
	}
	return candidates, nil
}

// storedAnnotations joins scan annotations back onto their storage
// coordinates. Every annotation must have a pool record; a mismatch means
// the pool changed mid-run.
func storedAnnotations(runID string, pool []store.PoolRecord, annotations []dedupe.Annotation) ([]store.Annotation, error) {
	byRef := make(map[int]*store.PoolRecord, len(pool))
	for i := range pool {
		byRef[pool[i].Record.RowRef] = &pool[i]
	}
	stored := make([]store.Annotation, 0, len(annotations))
	for _, ann := range annotations {
		pr, ok := byRef[ann.RowRef]
		if !ok {
			return nil, services.Wrap(services.ErrStructural, "api", "detect",
				fmt.Sprintf("annotation row %d has no pool record", ann.RowRef), nil)
		}
		stored = append(stored, store.Annotation{
			RunID:          runID,
			RowRef:         ann.RowRef,
			DatasetID:      pr.DatasetID,
			Position:       pr.Position,
			Source:         ann.Source,
			Score:          ann.Score,
			Label:          ann.Label,
			Reason:         ann.Reason,
			DuplicatesWith: ann.DuplicatesWith,
		})
	}
	return stored, nil
}

// resolveCountDate applies the override chain: explicit request value, then
// the configured count date, then today.
func resolveCountDate(cfg *config.Config, override string) (time.Time, error) {
	value := strings.TrimSpace(override)
	if value != "" {
		date, err := time.Parse("2006-01-02", value)
		if err != nil {
			return time.Time{}, services.Wrap(services.ErrValidation, "api", "detect",
				fmt.Sprintf("count date %q must be YYYY-MM-DD", value), err)
		}
		return date, nil
	}
	if date := cfg.CountDate(); !date.IsZero() {
		return date, nil
	}
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
}
