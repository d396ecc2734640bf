package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pitcount/internal/services"
)

const runColumns = "id, created_at, count_date, sources, summary_json"

// SaveRun persists a detection run together with its annotations.
func (s *Store) SaveRun(ctx context.Context, run Run, annotations []Annotation) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin run tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, count_date, sources, summary_json) VALUES (?, ?, ?, ?, ?)`,
		run.ID,
		createdAt.Format(time.RFC3339Nano),
		run.CountDate,
		joinSources(run.Sources),
		nullableString(run.SummaryJSON),
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO annotations (run_id, row_ref, dataset_id, position, source, score, label, reason, duplicates_with)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare annotation insert: %w", err)
	}
	defer stmt.Close()

	for _, ann := range annotations {
		if _, err := stmt.ExecContext(ctx,
			run.ID, ann.RowRef, ann.DatasetID, ann.Position, ann.Source,
			ann.Score, ann.Label, ann.Reason, joinRefs(ann.DuplicatesWith),
		); err != nil {
			return fmt.Errorf("insert annotation for row %d: %w", ann.RowRef, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// ListRuns returns all detection runs, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+runColumns+" FROM runs ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun returns one run by identifier.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+runColumns+" FROM runs WHERE id = ?", id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, services.Wrap(services.ErrNotFound, "store", "get run", fmt.Sprintf("no run %q", id), nil)
	}
	return run, err
}

// LatestRun returns the most recent detection run.
func (s *Store) LatestRun(ctx context.Context) (Run, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+runColumns+" FROM runs ORDER BY created_at DESC, id DESC LIMIT 1")
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, services.Wrap(services.ErrNotFound, "store", "latest run", "no detection runs stored", nil)
	}
	return run, err
}

// Annotations returns a run's annotations in ascending row-reference order.
func (s *Store) Annotations(ctx context.Context, runID string) ([]Annotation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, row_ref, dataset_id, position, source, score, label, reason, duplicates_with
         FROM annotations WHERE run_id = ? ORDER BY row_ref`, runID)
	if err != nil {
		return nil, fmt.Errorf("load annotations: %w", err)
	}
	defer rows.Close()

	var annotations []Annotation
	for rows.Next() {
		var (
			ann  Annotation
			refs string
		)
		if err := rows.Scan(&ann.RunID, &ann.RowRef, &ann.DatasetID, &ann.Position, &ann.Source,
			&ann.Score, &ann.Label, &ann.Reason, &refs); err != nil {
			return nil, fmt.Errorf("scan annotation: %w", err)
		}
		ann.DuplicatesWith = splitRefs(refs)
		annotations = append(annotations, ann)
	}
	return annotations, rows.Err()
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (Run, error) {
	var (
		id         string
		createdRaw string
		countDate  sql.NullString
		sources    sql.NullString
		summary    sql.NullString
	)
	if err := scanner.Scan(&id, &createdRaw, &countDate, &sources, &summary); err != nil {
		return Run{}, err
	}
	return Run{
		ID:          id,
		CreatedAt:   parseTimestamp(createdRaw),
		CountDate:   countDate.String,
		Sources:     splitSources(sources.String),
		SummaryJSON: summary.String,
	}, nil
}
