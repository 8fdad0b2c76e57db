package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // sqlite driver
)

var (
	// ErrNotFound is returned when the requested record does not exist
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when the record exists and belongs to someone else
	ErrConflict = errors.New("already exists")
)

// JobSource is a named origin of job listings and resume experience entries, i.e. a job board
type JobSource struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Value     string    `json:"value"` // normalized label, unique
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// sourceRow is the db representation of JobSource, timestamps kept as unix seconds
type sourceRow struct {
	ID        string `db:"id"`
	Label     string `db:"label"`
	Value     string `db:"value"`
	CreatedBy string `db:"created_by"`
	CreatedAt int64  `db:"created_at"`
	UpdatedAt int64  `db:"updated_at"`
}

func (r sourceRow) toJobSource() JobSource {
	res := JobSource{ID: r.ID, Label: r.Label, Value: r.Value, CreatedBy: r.CreatedBy}
	if r.CreatedAt > 0 {
		res.CreatedAt = time.Unix(r.CreatedAt, 0)
	}
	if r.UpdatedAt > 0 {
		res.UpdatedAt = time.Unix(r.UpdatedAt, 0)
	}
	return res
}

// SQLiteStore implements persistence using SQLite
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) the database at dbPath and makes sure the schema exists
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", dbPath)
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to set WAL mode: %w (also failed to close db: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.initialize(); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to initialize schema: %w (also failed to close db: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	log.Printf("[DEBUG] sqlite store ready at %s", dbPath)
	return s, nil
}

// initialize creates the database schema
func (s *SQLiteStore) initialize() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS job_sources (
			id TEXT PRIMARY KEY,
			label TEXT NOT NULL,
			value TEXT NOT NULL UNIQUE,
			created_by TEXT NOT NULL DEFAULT '',
			created_at INTEGER,
			updated_at INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS jobs (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL DEFAULT '',
			job_source_id TEXT,
			FOREIGN KEY (job_source_id) REFERENCES job_sources(id)
		)`,
		`CREATE TABLE IF NOT EXISTS work_experiences (
			id TEXT PRIMARY KEY,
			company TEXT NOT NULL DEFAULT '',
			job_source_id TEXT,
			FOREIGN KEY (job_source_id) REFERENCES job_sources(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_job_sources_created_by ON job_sources(created_by)`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_job_source_id ON jobs(job_source_id)`,
		`CREATE INDEX IF NOT EXISTS idx_work_experiences_job_source_id ON work_experiences(job_source_id)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	return nil
}

// Sources returns job sources created by owner, or all of them if owner is empty
func (s *SQLiteStore) Sources(ctx context.Context, owner string) ([]JobSource, error) {
	query := `SELECT id, label, value, created_by, created_at, updated_at FROM job_sources`
	args := []any{}
	if owner != "" {
		query += ` WHERE created_by = ?`
		args = append(args, owner)
	}
	query += ` ORDER BY value`

	rows := []sourceRow{}
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query job sources: %w", err)
	}

	res := make([]JobSource, 0, len(rows))
	for _, r := range rows {
		res = append(res, r.toJobSource())
	}
	return res, nil
}

// UpsertSource inserts the source or, if the same owner already has a source with this value, updates its label.
// Single statement, concurrent upserts of the same value end up in one row.
// Returns ErrConflict if the value is taken by another owner, the row is left intact.
func (s *SQLiteStore) UpsertSource(ctx context.Context, src JobSource) (JobSource, error) {
	if src.ID == "" {
		src.ID = uuid.NewString()
	}
	now := time.Now().Unix()

	var row sourceRow
	err := s.db.GetContext(ctx, &row, `
		INSERT INTO job_sources (id, label, value, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(value) DO UPDATE SET label = excluded.label, updated_at = excluded.updated_at
			WHERE job_sources.created_by = excluded.created_by
		RETURNING id, label, value, created_by, created_at, updated_at`,
		src.ID, src.Label, src.Value, src.CreatedBy, now, now)
	if errors.Is(err, sql.ErrNoRows) {
		return JobSource{}, fmt.Errorf("job source %q: %w", src.Value, ErrConflict)
	}
	if err != nil {
		return JobSource{}, fmt.Errorf("failed to upsert job source %q: %w", src.Value, err)
	}
	return row.toJobSource(), nil
}

// CountJobs returns the number of jobs referencing the source
func (s *SQLiteStore) CountJobs(ctx context.Context, sourceID string) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM jobs WHERE job_source_id = ?`, sourceID); err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}
	return count, nil
}

// CountWorkExperiences returns the number of resume work experience entries referencing the source
func (s *SQLiteStore) CountWorkExperiences(ctx context.Context, sourceID string) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM work_experiences WHERE job_source_id = ?`, sourceID)
	if err != nil {
		return 0, fmt.Errorf("failed to count work experiences: %w", err)
	}
	return count, nil
}

// DeleteSource removes the source with given id owned by owner and returns the removed row.
// Returns ErrNotFound if there is no such source or it belongs to someone else.
func (s *SQLiteStore) DeleteSource(ctx context.Context, id, owner string) (JobSource, error) {
	var row sourceRow
	err := s.db.GetContext(ctx, &row, `DELETE FROM job_sources WHERE id = ? AND created_by = ?
		RETURNING id, label, value, created_by, created_at, updated_at`, id, owner)
	if errors.Is(err, sql.ErrNoRows) {
		return JobSource{}, fmt.Errorf("job source %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return JobSource{}, fmt.Errorf("failed to delete job source %s: %w", id, err)
	}
	return row.toJobSource(), nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
