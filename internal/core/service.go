package core

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/JonMunkholm/charitydb/internal/config"
	"github.com/JonMunkholm/charitydb/internal/database"
	"github.com/JonMunkholm/charitydb/internal/logging"
)

// Publisher copies prepared rows to a secondary store after the SQLite file
// is complete.
type Publisher interface {
	Publish(ctx context.Context, rows []database.InsertCharityParams) (int64, error)
}

// Observer receives the report of every successful build.
type Observer interface {
	ObserveBuild(ctx context.Context, report *Report) error
}

// Deps holds the optional collaborators of a Service.
type Deps struct {
	Out      io.Writer // Summary destination (default: os.Stdout)
	Mirror   Publisher // Nil disables mirroring
	Observer Observer  // Nil disables diagnostics
}

// Service runs charities database builds.
type Service struct {
	cfg      *config.Config
	out      io.Writer
	mirror   Publisher
	observer Observer
}

// NewService creates a service for the paths in cfg.
func NewService(cfg *config.Config, deps Deps) *Service {
	out := deps.Out
	if out == nil {
		out = os.Stdout
	}
	return &Service{
		cfg:      cfg,
		out:      out,
		mirror:   deps.Mirror,
		observer: deps.Observer,
	}
}

// Build runs the full pipeline: load the CSV, recreate the database, prepare
// rows, insert them and print the summary. The database connection is closed
// on every return path.
func (s *Service) Build(ctx context.Context) (report *Report, err error) {
	start := time.Now()
	logger := logging.FromContext(ctx)

	ds, err := LoadCSV(ctx, s.cfg.Paths.SourceCSV)
	if err != nil {
		return nil, err
	}

	store, err := database.Create(ctx, s.cfg.Paths.Database)
	if err != nil {
		return nil, fmt.Errorf("create database: %w", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close database: %w", cerr)
		}
	}()

	if err := store.CreateSchema(ctx); err != nil {
		return nil, err
	}
	logger.Info("database schema and indexes created", "indexes", len(database.CharityIndexes))

	rows, stats := PrepareRows(ds)
	logger.Info("prepared rows",
		"source_rows", stats.SourceRows,
		"prepared", stats.Prepared,
		"duplicate_eins", stats.DuplicatesCollapsed,
		"missing_ein", stats.MissingEIN,
	)

	inserted, err := store.InsertCharities(ctx, rows)
	if err != nil {
		return nil, err
	}
	if inserted.Ignored() > 0 {
		logger.Info("insert conflicts ignored", "rows", inserted.Ignored())
	}

	summary, err := store.Summary(ctx)
	if err != nil {
		return nil, err
	}

	absPath, err := filepath.Abs(store.Path())
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}

	report = &Report{
		SourcePath:   ds.Path,
		DatabasePath: absPath,
		Prepare:      stats,
		Insert:       inserted,
		Summary:      summary,
	}
	if err := s.printSummary(report); err != nil {
		return nil, err
	}

	if s.mirror != nil {
		n, err := s.mirror.Publish(ctx, rows)
		if err != nil {
			return nil, fmt.Errorf("mirror: %w", err)
		}
		report.Mirrored = n
		logger.Info("mirrored rows", "rows", n)
	}

	report.Duration = time.Since(start)

	if s.observer != nil {
		if err := s.observer.ObserveBuild(ctx, report); err != nil {
			return nil, fmt.Errorf("record metrics: %w", err)
		}
	}

	logger.Info("build complete", "duration", report.Duration)
	return report, nil
}

// printSummary writes the human-readable summary lines.
func (s *Service) printSummary(r *Report) error {
	_, err := fmt.Fprintf(s.out,
		"Inserted rows: %s\nDistinct states: %s\nDistinct NTEE majors: %s\nSQLite database created at: %s\n",
		humanize.Comma(r.Summary.TotalRows),
		humanize.Comma(r.Summary.DistinctStates),
		humanize.Comma(r.Summary.DistinctNteeMajors),
		r.DatabasePath,
	)
	if err != nil {
		return fmt.Errorf("print summary: %w", err)
	}
	return nil
}
