// Package store records generation runs: the description that was compiled,
// the generated unit or the error, and when it happened.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by Get for an unknown run ID.
var ErrNotFound = errors.New("run not found")

// Run is one generation attempt.
type Run struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Source    string    `json:"source"`
	Header    string    `json:"header,omitempty"`
	Output    string    `json:"output,omitempty"`
	Error     string    `json:"error,omitempty"`
	Pending   []string  `json:"pending,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is the interface for saving and reading runs.
type Store interface {
	// Save records r. A zero ID or CreatedAt is filled in.
	Save(ctx context.Context, r *Run) error
	// Get returns the run with the given ID or ErrNotFound.
	Get(ctx context.Context, id uuid.UUID) (*Run, error)
	// List returns the most recent runs first, at most limit of them.
	List(ctx context.Context, limit int) ([]Run, error)
}

const (
	defaultLimit = 50
	maxLimit     = 500
)

func clampLimit(limit int) int {
	if limit <= 0 || limit > maxLimit {
		return defaultLimit
	}
	return limit
}

func prepare(r *Run) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
}

// SQLiteStore implements Store on a database/sql handle opened with the
// "sqlite" driver.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLiteStore. Call CreateTable before use.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// CreateTable creates the runs table if it does not exist.
func (s *SQLiteStore) CreateTable(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS runs (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			source     TEXT NOT NULL,
			header     TEXT NOT NULL DEFAULT '',
			output     TEXT NOT NULL DEFAULT '',
			error      TEXT NOT NULL DEFAULT '',
			pending    TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs (created_at DESC);
	`)
	return err
}

// Save inserts r.
func (s *SQLiteStore) Save(ctx context.Context, r *Run) error {
	prepare(r)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, name, source, header, output, error, pending, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID.String(), r.Name, r.Source, r.Header, r.Output, r.Error,
		joinPending(r.Pending), r.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("saving run %s: %w", r.ID, err)
	}
	return nil
}

const selectRun = `SELECT id, name, source, header, output, error, pending, created_at FROM runs`

// Get returns one run.
func (s *SQLiteStore) Get(ctx context.Context, id uuid.UUID) (*Run, error) {
	row := s.db.QueryRowContext(ctx, selectRun+` WHERE id = ?`, id.String())
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading run %s: %w", id, err)
	}
	return r, nil
}

// List returns recent runs, newest first.
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, selectRun+` ORDER BY created_at DESC LIMIT ?`, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, *r)
	}
	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*Run, error) {
	var (
		r       Run
		id      string
		pending string
		created int64
	)
	if err := sc.Scan(&id, &r.Name, &r.Source, &r.Header, &r.Output, &r.Error, &pending, &created); err != nil {
		return nil, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("run id %q: %w", id, err)
	}
	r.ID = parsed
	r.Pending = splitPending(pending)
	r.CreatedAt = time.Unix(0, created).UTC()
	return &r, nil
}
