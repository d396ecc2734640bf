package api

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"pitcount/internal/config"
	"pitcount/internal/export"
	"pitcount/internal/logging"
	"pitcount/internal/services"
	"pitcount/internal/store"
)

// ExportRequest names the output file and the run to export.
type ExportRequest struct {
	Config *config.Config
	Logger *slog.Logger
	// Path is the output file; the extension (.xlsx or .csv) selects the
	// format. Relative paths resolve under the configured export directory.
	Path string
	// RunID selects a persisted run. Empty exports the latest run.
	RunID string
}

// ExportResult reports where the annotated sheet was written.
type ExportResult struct {
	Run     store.Run
	Path    string
	Format  string
	Records int
}

// Export writes the annotated member sheet for a persisted run. Read-only
// against the store; does not take the workspace lock.
func Export(ctx context.Context, req ExportRequest) (ExportResult, error) {
	cfg := req.Config
	if cfg == nil {
		return ExportResult{}, services.Wrap(services.ErrConfiguration, "api", "export", "configuration is required", nil)
	}
	path, format, err := resolveOutputPath(cfg, req.Path)
	if err != nil {
		return ExportResult{}, err
	}

	st, err := store.Open(cfg)
	if err != nil {
		return ExportResult{}, err
	}
	defer st.Close()

	run, err := resolveRun(ctx, st, req.RunID)
	if err != nil {
		return ExportResult{}, err
	}
	ctx = services.WithRunID(ctx, run.ID)
	logger := logging.NewComponentLogger(logging.WithContext(ctx, req.Logger), "export")

	annotations, err := st.Annotations(ctx, run.ID)
	if err != nil {
		return ExportResult{}, err
	}
	pool, err := st.LoadPool(ctx, run.Sources)
	if err != nil {
		return ExportResult{}, err
	}
	if len(pool) != len(annotations) {
		return ExportResult{}, services.Wrap(services.ErrExport, "api", "export",
			fmt.Sprintf("run covers %d records but the pool now holds %d (datasets changed since the run; re-run detect)",
				len(annotations), len(pool)), nil)
	}

	opts := export.OptionsFromConfig(cfg)
	sheet, err := export.Build(pool, annotations, opts)
	if err != nil {
		return ExportResult{}, err
	}

	switch format {
	case "xlsx":
		err = export.WriteXLSX(path, sheet, opts)
	case "csv":
		err = export.WriteCSV(path, sheet)
	}
	if err != nil {
		return ExportResult{}, err
	}

	logger.Info("sheet written",
		logging.String("path", path),
		logging.String("format", format),
		logging.Int("records", len(sheet.Rows)))

	return ExportResult{Run: run, Path: path, Format: format, Records: len(sheet.Rows)}, nil
}

// resolveRun loads the named run, or the most recent one when id is empty.
func resolveRun(ctx context.Context, st *store.Store, id string) (store.Run, error) {
	if strings.TrimSpace(id) != "" {
		return st.GetRun(ctx, strings.TrimSpace(id))
	}
	return st.LatestRun(ctx)
}

func resolveOutputPath(cfg *config.Config, path string) (string, string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", "", services.Wrap(services.ErrValidation, "api", "export", "an output path is required", nil)
	}
	var format string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		format = "xlsx"
	case ".csv":
		format = "csv"
	default:
		return "", "", services.Wrap(services.ErrValidation, "api", "export",
			fmt.Sprintf("unsupported output extension %q (use .xlsx or .csv)", filepath.Ext(path)), nil)
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(cfg.Paths.ExportDir, path)
	}
	return path, format, nil
}
