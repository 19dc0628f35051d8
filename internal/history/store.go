package history

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is bumped on schema changes; the journal is transient, so
// users clear it rather than migrate.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database was written by a different
// trimmux version.
var ErrSchemaMismatch = errors.New("history schema version mismatch")

// Status classifies a finished job.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Job is one recorded transcoder invocation.
type Job struct {
	ID        string
	Source    string
	Output    string
	Encoder   string
	Args      []string
	Status    Status
	Detail    string
	Duration  time.Duration
	CreatedAt time.Time
}

// Store persists the job journal in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open connects to (or creates) the journal database at path.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("history: empty database path")
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database location.
func (s *Store) Path() string { return s.path }

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (run 'trimmux history clear' or delete %s)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	return tx.Commit()
}

// Record inserts a finished job. Missing IDs and timestamps are filled in.
func (s *Store) Record(ctx context.Context, job Job) (Job, error) {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}
	if job.Status == "" {
		return Job{}, errors.New("history: job status required")
	}

	argsJSON, err := json.Marshal(job.Args)
	if err != nil {
		return Job{}, fmt.Errorf("marshal args: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO jobs (id, source_path, output_path, encoder, args_json, status, detail, duration_ms, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		job.ID,
		job.Source,
		job.Output,
		job.Encoder,
		string(argsJSON),
		string(job.Status),
		job.Detail,
		job.Duration.Milliseconds(),
		job.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Job{}, fmt.Errorf("insert job: %w", err)
	}
	return job, nil
}

// List returns the most recent jobs, newest first. A non-positive limit
// returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]Job, error) {
	query := `SELECT id, source_path, output_path, encoder, args_json, status, detail, duration_ms, created_at
              FROM jobs ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		var (
			job        Job
			argsJSON   string
			status     string
			durationMS int64
			createdAt  string
		)
		if err := rows.Scan(&job.ID, &job.Source, &job.Output, &job.Encoder, &argsJSON, &status, &job.Detail, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		if err := json.Unmarshal([]byte(argsJSON), &job.Args); err != nil {
			return nil, fmt.Errorf("decode args for job %s: %w", job.ID, err)
		}
		job.Status = Status(status)
		job.Duration = time.Duration(durationMS) * time.Millisecond
		if parsed, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			job.CreatedAt = parsed
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// Clear removes every recorded job.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM jobs"); err != nil {
		return fmt.Errorf("clear jobs: %w", err)
	}
	return nil
}
