package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"pitcount/internal/config"
	"pitcount/internal/flatten"
	"pitcount/internal/ingest"
	"pitcount/internal/logging"
	"pitcount/internal/report"
	"pitcount/internal/schema"
	"pitcount/internal/services"
	"pitcount/internal/store"
	"pitcount/internal/validate"
)

// IngestRequest describes one upload to ingest into the workspace.
type IngestRequest struct {
	Config *config.Config
	Logger *slog.Logger
	// Path is the CSV or XLSX file to read.
	Path string
	// Source labels the dataset ("ES", "TH", "Unsheltered", ...). Ingesting
	// a label again replaces the previous dataset.
	Source string
	// Region forces a capture schema, bypassing detection. Empty uses the
	// configured default, then auto-detection.
	Region string
}

// IngestResult reports what was stored.
type IngestResult struct {
	Dataset    store.Dataset
	Detection  schema.Detection
	Households report.HouseholdSummary
	Members    int
	Issues     []validate.Issue
}

// Ingest reads an upload, identifies its region, flattens households into
// member records, validates categorical answers, and stores the dataset.
func Ingest(ctx context.Context, req IngestRequest) (IngestResult, error) {
	cfg := req.Config
	if cfg == nil {
		return IngestResult{}, services.Wrap(services.ErrConfiguration, "api", "ingest", "configuration is required", nil)
	}
	source := strings.TrimSpace(req.Source)
	if source == "" {
		return IngestResult{}, services.Wrap(services.ErrValidation, "api", "ingest", "a --source label is required", nil)
	}
	if strings.ContainsAny(source, ",") {
		return IngestResult{}, services.Wrap(services.ErrValidation, "api", "ingest", "source labels must not contain commas", nil)
	}

	ctx = services.WithSource(ctx, source)
	logger := logging.NewComponentLogger(logging.WithContext(ctx, req.Logger), "ingest")

	table, err := ingest.Read(req.Path)
	if err != nil {
		return IngestResult{}, err
	}
	logger.Info("upload read",
		logging.String("file", filepath.Base(req.Path)),
		logging.Int("rows", len(table.Rows)))

	detection, desc, err := resolveRegion(cfg, req.Region, table.Headers)
	if err != nil {
		return IngestResult{}, err
	}
	logger.Info("region identified",
		logging.String(logging.FieldRegion, string(detection.Region)),
		logging.Float64("confidence", detection.Confidence))

	records, households, err := flatten.Flatten(table, desc, source, flatten.Options{ReferenceDate: cfg.CountDate()})
	if err != nil {
		return IngestResult{}, err
	}
	if len(records) == 0 {
		return IngestResult{}, services.Wrap(services.ErrIngest, "api", "ingest",
			"no household members found (check that sex/race columns are populated)", nil)
	}

	issues := validate.Check(records)
	householdSummary := report.SummarizeHouseholds(households)
	summaryJSON, err := json.Marshal(householdSummary)
	if err != nil {
		return IngestResult{}, fmt.Errorf("marshal household summary: %w", err)
	}

	lock, err := store.AcquireLock(cfg)
	if err != nil {
		return IngestResult{}, err
	}
	defer lock.Release()

	st, err := store.Open(cfg)
	if err != nil {
		return IngestResult{}, err
	}
	defer st.Close()

	dataset := store.Dataset{
		Source:         source,
		Region:         detection.Region,
		OriginalFile:   filepath.Base(req.Path),
		HouseholdCount: len(households),
		SummaryJSON:    string(summaryJSON),
	}
	id, err := st.ReplaceDataset(ctx, dataset, records)
	if err != nil {
		return IngestResult{}, err
	}
	dataset.ID = id
	dataset.MemberCount = len(records)

	logger.Info("dataset stored",
		logging.Int64(logging.FieldDataset, id),
		logging.Int("households", len(households)),
		logging.Int("members", len(records)),
		logging.Int("validation_issues", len(issues)))

	return IngestResult{
		Dataset:    dataset,
		Detection:  detection,
		Households: householdSummary,
		Members:    len(records),
		Issues:     issues,
	}, nil
}

// resolveRegion applies the override chain: explicit request region, then
// the configured default, then header-based detection.
func resolveRegion(cfg *config.Config, override string, headers []string) (schema.Detection, *schema.Descriptor, error) {
	forced := strings.TrimSpace(override)
	if forced == "" {
		forced = cfg.Count.Region
	}
	if forced != "" {
		region, err := schema.ParseRegion(forced)
		if err != nil {
			return schema.Detection{}, nil, services.Wrap(services.ErrValidation, "api", "ingest", "region override", err)
		}
		desc, err := schema.ForRegion(region)
		if err != nil {
			return schema.Detection{}, nil, err
		}
		return schema.Detection{Region: region, Confidence: 1}, desc, nil
	}

	detection, err := schema.Detect(headers, cfg.Detection.MinRegionConfidence)
	if err != nil {
		return schema.Detection{}, nil, services.Wrap(services.ErrIngest, "api", "ingest", "region detection", err)
	}
	desc, err := schema.ForRegion(detection.Region)
	if err != nil {
		return schema.Detection{}, nil, err
	}
	return detection, desc, nil
}
