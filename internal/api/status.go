package api

import (
	"context"
	"log/slog"

	"pitcount/internal/config"
	"pitcount/internal/services"
	"pitcount/internal/store"
)

// StatusRequest asks for a workspace overview.
type StatusRequest struct {
	Config *config.Config
	Logger *slog.Logger
}

// StatusResult lists stored datasets and detection runs.
type StatusResult struct {
	Datasets []store.Dataset
	Runs     []store.Run
}

// Status summarizes the workspace: every stored dataset and every persisted
// detection run, newest runs first.
func Status(ctx context.Context, req StatusRequest) (StatusResult, error) {
	cfg := req.Config
	if cfg == nil {
		return StatusResult{}, services.Wrap(services.ErrConfiguration, "api", "status", "configuration is required", nil)
	}

	st, err := store.Open(cfg)
	if err != nil {
		return StatusResult{}, err
	}
	defer st.Close()

	datasets, err := st.ListDatasets(ctx)
	if err != nil {
		return StatusResult{}, err
	}
	runs, err := st.ListRuns(ctx)
	if err != nil {
		return StatusResult{}, err
	}
	return StatusResult{Datasets: datasets, Runs: runs}, nil
}

// RemoveDatasetRequest names a stored dataset to drop.
type RemoveDatasetRequest struct {
	Config *config.Config
	Logger *slog.Logger
	Source string
}

// RemoveDataset drops a stored dataset by its source label.
func RemoveDataset(ctx context.Context, req RemoveDatasetRequest) error {
	cfg := req.Config
	if cfg == nil {
		return services.Wrap(services.ErrConfiguration, "api", "remove", "configuration is required", nil)
	}

	lock, err := store.AcquireLock(cfg)
	if err != nil {
		return err
	}
	defer lock.Release()

	st, err := store.Open(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	return st.RemoveDataset(ctx, req.Source)
}
