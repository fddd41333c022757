package runlog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrBusy indicates another annconv process holds the run-log lock.
var ErrBusy = errors.New("run log is locked by another process")

// Store manages run-log persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Open initializes or connects to the run-log database in dir. A file lock
// beside the database serializes writers; Open fails with ErrBusy when the
// lock is held elsewhere.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure run log directory: %w", err)
	}

	lock := flock.New(filepath.Join(dir, "runlog.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run log lock: %w", err)
	}
	if !locked {
		return nil, ErrBusy
	}

	dbPath := filepath.Join(dir, "runlog.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, lock: lock}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}
	return store, nil
}

// Close closes the database connection and releases the lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var dbErr error
	if s.db != nil {
		dbErr = s.db.Close()
	}
	if s.lock != nil {
		_ = s.lock.Unlock()
	}
	return dbErr
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// BeginRun inserts a new run row and returns it.
func (s *Store) BeginRun(ctx context.Context, command string) (*Run, error) {
	run := &Run{
		ID:        uuid.NewString(),
		Command:   command,
		StartedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO runs (id, command, started_at) VALUES (?, ?, ?)",
		run.ID, run.Command, run.StartedAt.Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// RecordFile appends one file outcome to a run.
func (s *Store) RecordFile(ctx context.Context, record FileRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO run_files (run_id, input, output, outcome, warnings, detail, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.RunID, record.Input, record.Output, string(record.Outcome),
		record.Warnings, record.Detail, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert run file: %w", err)
	}
	return nil
}

// FinishRun stamps the run's completion time.
func (s *Store) FinishRun(ctx context.Context, runID string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE runs SET finished_at = ? WHERE id = ?",
		time.Now().UTC().Format(time.RFC3339Nano), runID)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs with aggregated file counts, newest
// first. A limit <= 0 returns every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	query := `
        SELECT r.id, r.command, r.started_at, r.finished_at,
               COALESCE(SUM(CASE WHEN f.outcome = 'converted' THEN 1 ELSE 0 END), 0),
               COALESCE(SUM(CASE WHEN f.outcome = 'failed' THEN 1 ELSE 0 END), 0),
               COALESCE(SUM(CASE WHEN f.outcome = 'skipped' THEN 1 ELSE 0 END), 0),
               COALESCE(SUM(f.warnings), 0)
        FROM runs r
        LEFT JOIN run_files f ON f.run_id = r.id
        GROUP BY r.id
        ORDER BY r.started_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var summaries []RunSummary
	for rows.Next() {
		var (
			summary    RunSummary
			startedAt  string
			finishedAt sql.NullString
		)
		if err := rows.Scan(&summary.ID, &summary.Command, &startedAt, &finishedAt,
			&summary.Converted, &summary.Failed, &summary.Skipped, &summary.Warnings); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if summary.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		if finishedAt.Valid {
			finished, err := time.Parse(time.RFC3339Nano, finishedAt.String)
			if err != nil {
				return nil, fmt.Errorf("parse finished_at: %w", err)
			}
			summary.FinishedAt = &finished
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

// Files returns the file records of one run in insertion order.
func (s *Store) Files(ctx context.Context, runID string) ([]FileRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT run_id, input, output, outcome, warnings, detail FROM run_files WHERE run_id = ? ORDER BY id",
		runID)
	if err != nil {
		return nil, fmt.Errorf("list run files: %w", err)
	}
	defer rows.Close()

	var records []FileRecord
	for rows.Next() {
		var record FileRecord
		var outcome string
		if err := rows.Scan(&record.RunID, &record.Input, &record.Output, &outcome,
			&record.Warnings, &record.Detail); err != nil {
			return nil, fmt.Errorf("scan run file: %w", err)
		}
		record.Outcome = Outcome(outcome)
		records = append(records, record)
	}
	return records, rows.Err()
}

// Clear removes every run and file record.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM runs")
	if err != nil {
		return 0, fmt.Errorf("clear runs: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return removed, nil
}
