package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/JonMunkholm/charitydb/internal/logging"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// sidecarSuffixes are the files SQLite may leave next to the database.
var sidecarSuffixes = []string{"-journal", "-wal", "-shm"}

// Store is an open charities database held exclusively by one build.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore wraps an already opened handle.
func NewStore(db *sql.DB, path string) *Store {
	return &Store{db: db, path: path}
}

// Create deletes any database at path, creates its parent directories and
// opens a fresh, empty SQLite file.
func Create(ctx context.Context, path string) (*Store, error) {
	logger := logging.FromContext(ctx)

	removed, err := RemoveExisting(path)
	if err != nil {
		return nil, err
	}
	if removed {
		logger.Info("removed existing database", "path", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// One physical connection for the lifetime of the build.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	logger.Info("created database", "path", path)
	return NewStore(db, path), nil
}

// RemoveExisting deletes the database file at path and its sidecar files.
// Reports whether the main file existed.
func RemoveExisting(path string) (bool, error) {
	removed := true
	if err := os.Remove(path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return false, fmt.Errorf("remove existing database: %w", err)
		}
		removed = false
	}
	for _, suffix := range sidecarSuffixes {
		if err := os.Remove(path + suffix); err != nil && !errors.Is(err, os.ErrNotExist) {
			return removed, fmt.Errorf("remove %s: %w", filepath.Base(path+suffix), err)
		}
	}
	return removed, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Queries returns read queries bound to the store connection.
func (s *Store) Queries() *Queries {
	return New(s.db)
}

// CreateSchema creates the charities table and indexes and commits.
func (s *Store) CreateSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer tx.Rollback() // No-op if already committed

	if err := New(tx).CreateSchema(ctx); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// InsertCharities bulk-inserts rows in one transaction and commits once.
// Rows colliding with an existing ein are skipped, not failed.
func (s *Store) InsertCharities(ctx context.Context, rows []InsertCharityParams) (InsertResult, error) {
	result := InsertResult{Attempted: int64(len(rows))}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return result, fmt.Errorf("begin insert transaction: %w", err)
	}
	defer tx.Rollback() // No-op if already committed

	inserted, err := New(tx).InsertCharities(ctx, rows)
	if err != nil {
		return result, err
	}

	if err := tx.Commit(); err != nil {
		return result, fmt.Errorf("commit insert: %w", err)
	}

	result.Inserted = inserted
	return result, nil
}

// Summary returns the total row count and distinct non-null state and NTEE
// major counts.
func (s *Store) Summary(ctx context.Context) (Summary, error) {
	q := s.Queries()

	var (
		sum Summary
		err error
	)
	if sum.TotalRows, err = q.CountCharities(ctx); err != nil {
		return sum, fmt.Errorf("count charities: %w", err)
	}
	if sum.DistinctStates, err = q.CountDistinctStates(ctx); err != nil {
		return sum, fmt.Errorf("count distinct states: %w", err)
	}
	if sum.DistinctNteeMajors, err = q.CountDistinctNteeMajors(ctx); err != nil {
		return sum, fmt.Errorf("count distinct ntee majors: %w", err)
	}
	return sum, nil
}

// Close releases the connection.
func (s *Store) Close() error {
	return s.db.Close()
}
