package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pitcount/internal/schema"
	"pitcount/internal/services"
	"pitcount/internal/survey"
)

const datasetColumns = "id, source, region, original_file, household_count, member_count, summary_json, created_at"

// ReplaceDataset stores an ingested upload and its flattened members,
// replacing any previous dataset carrying the same source label. Member
// positions are their 1-based order within the dataset.
func (s *Store) ReplaceDataset(ctx context.Context, dataset Dataset, records []survey.Record) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin dataset tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM datasets WHERE source = ?", dataset.Source); err != nil {
		return 0, fmt.Errorf("replace dataset %q: %w", dataset.Source, err)
	}

	createdAt := dataset.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO datasets (source, region, original_file, household_count, member_count, summary_json, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		dataset.Source,
		string(dataset.Region),
		dataset.OriginalFile,
		dataset.HouseholdCount,
		len(records),
		nullableString(dataset.SummaryJSON),
		createdAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("insert dataset: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO persons (dataset_id, position, household_id, role, slot, fields_json)
         VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare person insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range records {
		fields, err := json.Marshal(rec.Fields)
		if err != nil {
			return 0, fmt.Errorf("marshal person fields: %w", err)
		}
		if _, err := stmt.ExecContext(ctx, id, i+1, rec.HouseholdID, string(rec.Role), rec.Slot, string(fields)); err != nil {
			return 0, fmt.Errorf("insert person %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit dataset: %w", err)
	}
	return id, nil
}

// ListDatasets returns all stored datasets ordered by source label.
func (s *Store) ListDatasets(ctx context.Context) ([]Dataset, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+datasetColumns+" FROM datasets ORDER BY source")
	if err != nil {
		return nil, fmt.Errorf("list datasets: %w", err)
	}
	defer rows.Close()

	var datasets []Dataset
	for rows.Next() {
		dataset, err := scanDataset(rows)
		if err != nil {
			return nil, err
		}
		datasets = append(datasets, dataset)
	}
	return datasets, rows.Err()
}

// GetDataset returns the dataset carrying a source label.
func (s *Store) GetDataset(ctx context.Context, source string) (Dataset, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+datasetColumns+" FROM datasets WHERE source = ?", source)
	dataset, err := scanDataset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Dataset{}, services.Wrap(services.ErrNotFound, "store", "get dataset", fmt.Sprintf("no dataset for source %q", source), nil)
	}
	return dataset, err
}

// RemoveDataset deletes a dataset and its persons.
func (s *Store) RemoveDataset(ctx context.Context, source string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM datasets WHERE source = ?", source)
	if err != nil {
		return fmt.Errorf("remove dataset %q: %w", source, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return services.Wrap(services.ErrNotFound, "store", "remove dataset", fmt.Sprintf("no dataset for source %q", source), nil)
	}
	return nil
}

// LoadPool assembles the candidate pool for a detection run. The pool spans
// the named sources, or every stored dataset when sources is empty. Persons
// load in (dataset, position) order and receive row references 1..N; exports
// reproduce the same ordering so row references stay aligned.
func (s *Store) LoadPool(ctx context.Context, sources []string) ([]PoolRecord, error) {
	datasets, err := s.ListDatasets(ctx)
	if err != nil {
		return nil, err
	}

	included := datasets
	if len(sources) > 0 {
		byLabel := make(map[string]Dataset, len(datasets))
		for _, dataset := range datasets {
			byLabel[dataset.Source] = dataset
		}
		included = make([]Dataset, 0, len(sources))
		for _, source := range sources {
			dataset, ok := byLabel[source]
			if !ok {
				return nil, services.Wrap(services.ErrNotFound, "store", "load pool", fmt.Sprintf("no dataset for source %q", source), nil)
			}
			included = append(included, dataset)
		}
	}

	var pool []PoolRecord
	rowRef := 0
	for _, dataset := range included {
		rows, err := s.db.QueryContext(ctx,
			`SELECT position, household_id, role, slot, fields_json
             FROM persons WHERE dataset_id = ? ORDER BY position`, dataset.ID)
		if err != nil {
			return nil, fmt.Errorf("load persons for %q: %w", dataset.Source, err)
		}
		for rows.Next() {
			var (
				position    int
				householdID int
				role        string
				slot        int
				fieldsJSON  string
			)
			if err := rows.Scan(&position, &householdID, &role, &slot, &fieldsJSON); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scan person: %w", err)
			}
			var fields map[survey.FieldKey]string
			if err := json.Unmarshal([]byte(fieldsJSON), &fields); err != nil {
				rows.Close()
				return nil, fmt.Errorf("unmarshal person fields: %w", err)
			}
			rowRef++
			pool = append(pool, PoolRecord{
				Record: survey.Record{
					Source:      dataset.Source,
					RowRef:      rowRef,
					HouseholdID: householdID,
					Role:        survey.Role(role),
					Slot:        slot,
					Fields:      fields,
				},
				DatasetID: dataset.ID,
				Position:  position,
				Region:    dataset.Region,
			})
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, fmt.Errorf("iterate persons: %w", err)
		}
		rows.Close()
	}
	return pool, nil
}

func scanDataset(scanner interface{ Scan(dest ...any) error }) (Dataset, error) {
	var (
		id             int64
		source         string
		region         string
		originalFile   sql.NullString
		householdCount int
		memberCount    int
		summary        sql.NullString
		createdRaw     sql.NullString
	)
	if err := scanner.Scan(&id, &source, &region, &originalFile, &householdCount, &memberCount, &summary, &createdRaw); err != nil {
		return Dataset{}, err
	}
	return Dataset{
		ID:             id,
		Source:         source,
		Region:         schema.Region(region),
		OriginalFile:   originalFile.String,
		HouseholdCount: householdCount,
		MemberCount:    memberCount,
		SummaryJSON:    summary.String,
		CreatedAt:      parseTimestamp(createdRaw.String),
	}, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
