package api

import (
	"context"
	"log/slog"

	"pitcount/internal/config"
	"pitcount/internal/logging"
	"pitcount/internal/services"
	"pitcount/internal/store"
	"pitcount/internal/survey"
	"pitcount/internal/validate"
)

// ValidateRequest asks for a categorical-answer audit of stored datasets.
type ValidateRequest struct {
	Config *config.Config
	Logger *slog.Logger
	// Sources limits the audit to named dataset labels. Empty audits every
	// stored dataset.
	Sources []string
}

// ValidateResult lists out-of-catalog answers per record.
type ValidateResult struct {
	Records int
	Issues  []validate.Issue
}

// Validate re-checks stored member records against the categorical answer
// catalogs. Read-only; does not take the workspace lock.
func Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	cfg := req.Config
	if cfg == nil {
		return ValidateResult{}, services.Wrap(services.ErrConfiguration, "api", "validate", "configuration is required", nil)
	}
	logger := logging.NewComponentLogger(logging.WithContext(ctx, req.Logger), "validate")

	st, err := store.Open(cfg)
	if err != nil {
		return ValidateResult{}, err
	}
	defer st.Close()

	pool, err := st.LoadPool(ctx, req.Sources)
	if err != nil {
		return ValidateResult{}, err
	}
	if len(pool) == 0 {
		return ValidateResult{}, services.Wrap(services.ErrValidation, "api", "validate",
			"no datasets to audit (run ingest first)", nil)
	}

	records := make([]survey.Record, 0, len(pool))
	for i := range pool {
		records = append(records, pool[i].Record)
	}
	issues := validate.Check(records)

	logger.Info("audit complete",
		logging.Int("records", len(records)),
		logging.Int("issues", len(issues)))

	return ValidateResult{Records: len(records), Issues: issues}, nil
}
