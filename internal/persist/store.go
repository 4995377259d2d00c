package persist

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"mandi/internal/models"
)

// Schema for the runs table, applied on open.
const runsSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	started_at INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	crops_total INTEGER NOT NULL,
	crops_with_data INTEGER NOT NULL,
	local_entries INTEGER NOT NULL,
	outstate_entries INTEGER NOT NULL,
	dataset_hash TEXT NOT NULL,
	output_path TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
`

// RunSummary is one recorded scrape run.
type RunSummary struct {
	ID              int64
	StartedAt       time.Time
	Duration        time.Duration
	CropsTotal      int
	CropsWithData   int
	LocalEntries    int
	OutstateEntries int
	DatasetHash     string
	OutputPath      string
}

// Unchanged reports whether this run produced the same crop data as other.
func (r *RunSummary) Unchanged(other *RunSummary) bool {
	return other != nil && r.DatasetHash == other.DatasetHash
}

// Store keeps a history of scrape runs in SQLite so degradation over time
// is visible without diffing output files.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if needed) the history database at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history db: %w", err)
	}

	if _, err := db.Exec(runsSchema); err != nil {
		db.Close()

		return nil, fmt.Errorf("failed to apply history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// RecordRun inserts one run's summary.
func (s *Store) RecordRun(ctx context.Context, dataset *models.Dataset, outputPath string) error {
	if dataset == nil || dataset.Meta == nil {
		return ErrNilDataset
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (started_at, duration_ms, crops_total, crops_with_data,
			local_entries, outstate_entries, dataset_hash, output_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		dataset.Meta.Timestamp.Unix(),
		dataset.Meta.Duration.Milliseconds(),
		len(dataset.Crops),
		dataset.CropsWithData(),
		dataset.LocalEntries(),
		dataset.OutstateEntries(),
		dataset.Meta.Hash,
		outputPath,
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	return nil
}

// RecentRuns returns the newest runs first, up to limit.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, duration_ms, crops_total, crops_with_data,
			local_entries, outstate_entries, dataset_hash, output_path
		FROM runs ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary

	for rows.Next() {
		var (
			run        RunSummary
			startedAt  int64
			durationMs int64
		)

		if err := rows.Scan(&run.ID, &startedAt, &durationMs, &run.CropsTotal,
			&run.CropsWithData, &run.LocalEntries, &run.OutstateEntries,
			&run.DatasetHash, &run.OutputPath); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		run.StartedAt = time.Unix(startedAt, 0)
		run.Duration = time.Duration(durationMs) * time.Millisecond
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
