package database

import (
	"context"
	"fmt"
	"strings"
)

// CharitiesTable is the single table the builder produces.
const CharitiesTable = "charities"

const createCharitiesTable = `CREATE TABLE charities (
    ein TEXT PRIMARY KEY,
    name TEXT,
    city TEXT,
    state TEXT,
    ntee_code TEXT,
    ntee_major TEXT
)`

// Index describes a secondary index on the charities table.
type Index struct {
	Suffix  string
	Columns []string
}

// CharityIndexes support lookup by region or category alone and by
// category within a region.
var CharityIndexes = []Index{
	{Suffix: "state", Columns: []string{"state"}},
	{Suffix: "ntee", Columns: []string{"ntee_code"}},
	{Suffix: "major", Columns: []string{"ntee_major"}},
	{Suffix: "major_state", Columns: []string{"ntee_major", "state"}},
}

// Name returns the index name for the given table, e.g. idx_charities_state.
func (ix Index) Name(table string) string {
	return "idx_" + table + "_" + ix.Suffix
}

func (ix Index) createSQL(table string) string {
	return fmt.Sprintf("CREATE INDEX %s ON %s(%s)", ix.Name(table), table, strings.Join(ix.Columns, ", "))
}

// SchemaStatements returns the DDL for the charities table and its indexes.
func SchemaStatements() []string {
	stmts := make([]string, 0, 1+len(CharityIndexes))
	stmts = append(stmts, createCharitiesTable)
	for _, ix := range CharityIndexes {
		stmts = append(stmts, ix.createSQL(CharitiesTable))
	}
	return stmts
}

// CreateSchema executes the charities DDL. It does not commit; callers run it
// inside a transaction.
func (q *Queries) CreateSchema(ctx context.Context) error {
	for _, stmt := range SchemaStatements() {
		if _, err := q.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
