package api_test

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pitcount/internal/api"
	"pitcount/internal/config"
	"pitcount/internal/logging"
	"pitcount/internal/schema"
	"pitcount/internal/survey"
	"pitcount/internal/testsupport"
)

var newEnglandHeaders = []string{
	"1st Letter of First Name",
	"1st Letter of Last Name",
	"3rd Letter of Last Name",
	"Date of Birth",
	"Sex",
	"Gender",
	"Race/Ethnicity",
	"Veteran Status (Yes/No)",
	"Currently Fleeing Domestic/Sexual/Dating Violence",
}

func writeCSV(t *testing.T, name string, headers []string, rows [][]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(headers); err != nil {
		t.Fatalf("write header: %v", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			t.Fatalf("write row: %v", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		t.Fatalf("flush fixture: %v", err)
	}
	return path
}

func ingestFixture(t *testing.T, cfg *config.Config, source, name string, rows [][]string) api.IngestResult {
	t.Helper()

	path := writeCSV(t, name, newEnglandHeaders, rows)
	result, err := api.Ingest(context.Background(), api.IngestRequest{
		Config: cfg,
		Logger: logging.NewNop(),
		Path:   path,
		Source: source,
	})
	if err != nil {
		t.Fatalf("Ingest(%s): %v", source, err)
	}
	return result
}

func TestIngestDetectsRegionAndStoresDataset(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithCountDate("2026-01-28"))

	result := ingestFixture(t, cfg, "ES", "shelter.csv", [][]string{
		{"J", "S", "I", "1980-05-12", "Male", "Man", "White", "No", "No"},
		{"M", "D", "E", "1992-11-02", "Female", "Woman", "Black, African American, or African", "No", "Yes"},
	})

	if result.Detection.Region != schema.RegionNewEngland {
		t.Fatalf("region = %q, want %q", result.Detection.Region, schema.RegionNewEngland)
	}
	if result.Members != 2 {
		t.Fatalf("members = %d, want 2", result.Members)
	}
	if result.Dataset.HouseholdCount != 2 {
		t.Fatalf("households = %d, want 2", result.Dataset.HouseholdCount)
	}
	if len(result.Issues) != 0 {
		t.Fatalf("unexpected validation issues: %v", result.Issues)
	}
}

func TestIngestRejectsMissingSource(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	path := writeCSV(t, "shelter.csv", newEnglandHeaders, nil)

	_, err := api.Ingest(context.Background(), api.IngestRequest{
		Config: cfg,
		Logger: logging.NewNop(),
		Path:   path,
	})
	if err == nil || !strings.Contains(err.Error(), "--source") {
		t.Fatalf("expected source error, got %v", err)
	}
}

func TestIngestFlagsOutOfCatalogAnswers(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithCountDate("2026-01-28"))

	result := ingestFixture(t, cfg, "ES", "shelter.csv", [][]string{
		{"J", "S", "I", "1980-05-12", "Martian", "Man", "White", "No", "No"},
	})
	if len(result.Issues) != 1 {
		t.Fatalf("issues = %d, want 1: %v", len(result.Issues), result.Issues)
	}
	if result.Issues[0].Field != survey.FieldSex {
		t.Fatalf("issue field = %q, want sex", result.Issues[0].Field)
	}
}

func TestDetectFindsCrossSourceDuplicate(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithCountDate("2026-01-28"))

	ingestFixture(t, cfg, "ES", "shelter.csv", [][]string{
		{"J", "S", "I", "1980-05-12", "Male", "Man", "White", "No", "No"},
	})
	ingestFixture(t, cfg, "TH", "transitional.csv", [][]string{
		{"J", "S", "I", "1980-05-12", "Male", "Man", "White", "No", "No"},
		{"Q", "Z", "X", "1999-01-01", "Female", "Woman", "Asian or Asian American", "No", "No"},
	})

	result, err := api.Detect(context.Background(), api.DetectRequest{
		Config: cfg,
		Logger: logging.NewNop(),
	})
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if result.Summary.Total.Records != 3 {
		t.Fatalf("records = %d, want 3", result.Summary.Total.Records)
	}
	if result.Summary.Total.Likely != 2 {
		t.Fatalf("likely = %d, want 2", result.Summary.Total.Likely)
	}
	if result.Summary.Total.Unique != 1 {
		t.Fatalf("unique = %d, want 1", result.Summary.Total.Unique)
	}
	if got := result.Run.Sources; len(got) != 2 || got[0] != "ES" || got[1] != "TH" {
		t.Fatalf("run sources = %v", got)
	}
}

func TestDetectRequiresDatasets(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	_, err := api.Detect(context.Background(), api.DetectRequest{
		Config: cfg,
		Logger: logging.NewNop(),
	})
	if err == nil || !strings.Contains(err.Error(), "ingest") {
		t.Fatalf("expected empty-pool error, got %v", err)
	}
}

func TestExportWritesAnnotatedCSV(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithCountDate("2026-01-28"))

	ingestFixture(t, cfg, "ES", "shelter.csv", [][]string{
		{"J", "S", "I", "1980-05-12", "Male", "Man", "White", "No", "No"},
	})
	ingestFixture(t, cfg, "Unsheltered", "street.csv", [][]string{
		{"J", "S", "I", "1980-05-12", "Male", "Man", "White", "No", "No"},
	})
	if _, err := api.Detect(context.Background(), api.DetectRequest{Config: cfg, Logger: logging.NewNop()}); err != nil {
		t.Fatalf("Detect: %v", err)
	}

	result, err := api.Export(context.Background(), api.ExportRequest{
		Config: cfg,
		Logger: logging.NewNop(),
		Path:   "annotated.csv",
	})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if result.Records != 2 {
		t.Fatalf("records = %d, want 2", result.Records)
	}
	if filepath.Dir(result.Path) != cfg.Paths.ExportDir {
		t.Fatalf("path %q not under export dir %q", result.Path, cfg.Paths.ExportDir)
	}

	f, err := os.Open(result.Path)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	// Header plus two annotated records.
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	joined := strings.Join(rows[1], ",")
	if !strings.Contains(joined, "Likely Duplicate") {
		t.Fatalf("first record not flagged: %v", rows[1])
	}
}

func TestExportRejectsUnknownExtension(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	_, err := api.Export(context.Background(), api.ExportRequest{
		Config: cfg,
		Logger: logging.NewNop(),
		Path:   "annotated.pdf",
	})
	if err == nil || !strings.Contains(err.Error(), ".xlsx or .csv") {
		t.Fatalf("expected extension error, got %v", err)
	}
}

func TestStatusListsDatasetsAndRuns(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithCountDate("2026-01-28"))

	ingestFixture(t, cfg, "ES", "shelter.csv", [][]string{
		{"J", "S", "I", "1980-05-12", "Male", "Man", "White", "No", "No"},
	})
	if _, err := api.Detect(context.Background(), api.DetectRequest{Config: cfg, Logger: logging.NewNop()}); err != nil {
		t.Fatalf("Detect: %v", err)
	}

	status, err := api.Status(context.Background(), api.StatusRequest{Config: cfg, Logger: logging.NewNop()})
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(status.Datasets) != 1 || status.Datasets[0].Source != "ES" {
		t.Fatalf("datasets = %+v", status.Datasets)
	}
	if len(status.Runs) != 1 {
		t.Fatalf("runs = %d, want 1", len(status.Runs))
	}
}

func TestReportReloadsPersistedSummaries(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithCountDate("2026-01-28"))

	ingestFixture(t, cfg, "ES", "shelter.csv", [][]string{
		{"J", "S", "I", "1980-05-12", "Male", "Man", "White", "No", "No"},
		{"M", "D", "E", "1992-11-02", "Female", "Woman", "White", "No", "No"},
	})
	detected, err := api.Detect(context.Background(), api.DetectRequest{Config: cfg, Logger: logging.NewNop()})
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}

	result, err := api.Report(context.Background(), api.ReportRequest{Config: cfg, Logger: logging.NewNop()})
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if result.Run.ID != detected.Run.ID {
		t.Fatalf("run = %q, want %q", result.Run.ID, detected.Run.ID)
	}
	if result.Summary.Total.Records != 2 {
		t.Fatalf("records = %d, want 2", result.Summary.Total.Records)
	}
	if len(result.Datasets) != 1 || result.Datasets[0].Households.Households != 2 {
		t.Fatalf("datasets = %+v", result.Datasets)
	}
}

func TestValidateAuditsStoredDatasets(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithCountDate("2026-01-28"))

	ingestFixture(t, cfg, "ES", "shelter.csv", [][]string{
		{"J", "S", "I", "1980-05-12", "Male", "Man", "Plaid", "No", "No"},
	})

	result, err := api.Validate(context.Background(), api.ValidateRequest{Config: cfg, Logger: logging.NewNop()})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if result.Records != 1 {
		t.Fatalf("records = %d, want 1", result.Records)
	}
	if len(result.Issues) != 1 || result.Issues[0].Field != survey.FieldRace {
		t.Fatalf("issues = %+v", result.Issues)
	}
}

func TestRemoveDataset(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithCountDate("2026-01-28"))

	ingestFixture(t, cfg, "ES", "shelter.csv", [][]string{
		{"J", "S", "I", "1980-05-12", "Male", "Man", "White", "No", "No"},
	})

	if err := api.RemoveDataset(context.Background(), api.RemoveDatasetRequest{
		Config: cfg, Logger: logging.NewNop(), Source: "ES",
	}); err != nil {
		t.Fatalf("RemoveDataset: %v", err)
	}
	err := api.RemoveDataset(context.Background(), api.RemoveDatasetRequest{
		Config: cfg, Logger: logging.NewNop(), Source: "ES",
	})
	if err == nil {
		t.Fatal("expected not-found error on second removal")
	}
}
