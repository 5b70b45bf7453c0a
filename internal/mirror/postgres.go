// Package mirror publishes a finished build to PostgreSQL so services that
// already hold a Postgres connection can query charities without shipping
// the SQLite file around.
//
// Every publish replaces the table wholesale inside one transaction, the same
// recreate-from-scratch contract as the SQLite build: readers see either the
// previous table or the complete new one.
package mirror

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JonMunkholm/charitydb/internal/config"
	"github.com/JonMunkholm/charitydb/internal/database"
	"github.com/JonMunkholm/charitydb/internal/logging"
)

// copier is the part of pgx.Tx a publish needs.
type copier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// Publisher copies charities rows into a PostgreSQL table.
type Publisher struct {
	url     string
	table   string
	timeout time.Duration
}

// NewPublisher creates a publisher for the mirror settings in cfg.
func NewPublisher(cfg config.MirrorConfig) *Publisher {
	return &Publisher{
		url:     cfg.URL,
		table:   cfg.Table,
		timeout: cfg.Timeout,
	}
}

// Publish replaces the mirror table with rows using the COPY protocol and
// returns the number of rows copied.
func (p *Publisher) Publish(ctx context.Context, rows []database.InsertCharityParams) (int64, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	logger := logging.WithFields(ctx, "stage", "mirror", "table", p.table)

	conn, err := pgx.Connect(ctx, p.url)
	if err != nil {
		return 0, fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(context.Background())

	tx, err := conn.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(context.Background()) // No-op if already committed

	logger.Info("replacing mirror table", "rows", len(rows))
	n, err := p.replace(ctx, tx, rows)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return n, nil
}

// replace recreates the table and copies rows into it.
func (p *Publisher) replace(ctx context.Context, c copier, rows []database.InsertCharityParams) (int64, error) {
	for _, stmt := range p.Statements() {
		if _, err := c.Exec(ctx, stmt); err != nil {
			return 0, fmt.Errorf("exec %q: %w", stmt, err)
		}
	}

	n, err := c.CopyFrom(ctx, pgx.Identifier{p.table}, database.CharityColumns, pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
		return copyRow(rows[i]), nil
	}))
	if err != nil {
		return 0, fmt.Errorf("copy rows: %w", err)
	}
	if n != int64(len(rows)) {
		return n, fmt.Errorf("copy rows: copied %d of %d", n, len(rows))
	}
	return n, nil
}

// Statements returns the DDL that recreates the mirror table and the same
// indexes as the SQLite build.
func (p *Publisher) Statements() []string {
	table := pgx.Identifier{p.table}.Sanitize()

	cols := make([]string, len(database.CharityColumns))
	for i, c := range database.CharityColumns {
		cols[i] = c + " TEXT"
	}
	cols[0] += " PRIMARY KEY"

	stmts := []string{
		"DROP TABLE IF EXISTS " + table,
		fmt.Sprintf("CREATE TABLE %s (%s)", table, strings.Join(cols, ", ")),
	}
	for _, ix := range database.CharityIndexes {
		stmts = append(stmts, fmt.Sprintf("CREATE INDEX %s ON %s (%s)",
			pgx.Identifier{ix.Name(p.table)}.Sanitize(), table, strings.Join(ix.Columns, ", ")))
	}
	return stmts
}

// copyRow converts a row to COPY values in database.CharityColumns order.
func copyRow(r database.InsertCharityParams) []any {
	return []any{
		r.Ein,
		toPgText(r.Name),
		toPgText(r.City),
		toPgText(r.State),
		toPgText(r.NteeCode),
		toPgText(r.NteeMajor),
	}
}

func toPgText(s sql.NullString) pgtype.Text {
	return pgtype.Text{String: s.String, Valid: s.Valid}
}
