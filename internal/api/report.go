package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"pitcount/internal/config"
	"pitcount/internal/report"
	"pitcount/internal/services"
	"pitcount/internal/store"
)

// ReportRequest selects a persisted run to summarize.
type ReportRequest struct {
	Config *config.Config
	Logger *slog.Logger
	// RunID selects a persisted run. Empty reports the latest run.
	RunID string
}

// DatasetReport pairs a stored dataset with its household composition.
type DatasetReport struct {
	Dataset    store.Dataset
	Households report.HouseholdSummary
}

// ReportResult carries the run's deduplication summary and the household
// composition of each dataset the run covered.
type ReportResult struct {
	Run      store.Run
	Summary  report.DedupSummary
	Datasets []DatasetReport
}

// Report loads a persisted run's summary and the household breakdowns of
// the datasets it scanned.
func Report(ctx context.Context, req ReportRequest) (ReportResult, error) {
	cfg := req.Config
	if cfg == nil {
		return ReportResult{}, services.Wrap(services.ErrConfiguration, "api", "report", "configuration is required", nil)
	}

	st, err := store.Open(cfg)
	if err != nil {
		return ReportResult{}, err
	}
	defer st.Close()

	run, err := resolveRun(ctx, st, req.RunID)
	if err != nil {
		return ReportResult{}, err
	}

	var summary report.DedupSummary
	if err := json.Unmarshal([]byte(run.SummaryJSON), &summary); err != nil {
		return ReportResult{}, services.Wrap(services.ErrStructural, "api", "report",
			fmt.Sprintf("run %s carries a malformed summary", run.ID), err)
	}

	result := ReportResult{Run: run, Summary: summary}
	for _, source := range run.Sources {
		dataset, err := st.GetDataset(ctx, source)
		if err != nil {
			// Dataset replaced or removed since the run; report what remains.
			continue
		}
		var households report.HouseholdSummary
		if dataset.SummaryJSON != "" {
			if err := json.Unmarshal([]byte(dataset.SummaryJSON), &households); err != nil {
				return ReportResult{}, services.Wrap(services.ErrStructural, "api", "report",
					fmt.Sprintf("dataset %q carries a malformed household summary", source), err)
			}
		}
		result.Datasets = append(result.Datasets, DatasetReport{Dataset: dataset, Households: households})
	}
	return result, nil
}
