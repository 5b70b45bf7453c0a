package mirror

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JonMunkholm/charitydb/internal/config"
	"github.com/JonMunkholm/charitydb/internal/database"
)

type fakeCopier struct {
	execs   []string
	table   pgx.Identifier
	columns []string
	rows    [][]any
	execErr error
	copyErr error
	short   bool
}

func (f *fakeCopier) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	if f.execErr != nil {
		return pgconn.CommandTag{}, f.execErr
	}
	f.execs = append(f.execs, sql)
	return pgconn.CommandTag{}, nil
}

func (f *fakeCopier) CopyFrom(_ context.Context, table pgx.Identifier, columns []string, src pgx.CopyFromSource) (int64, error) {
	if f.copyErr != nil {
		return 0, f.copyErr
	}
	f.table = table
	f.columns = columns
	for src.Next() {
		vals, err := src.Values()
		if err != nil {
			return 0, err
		}
		f.rows = append(f.rows, vals)
	}
	if err := src.Err(); err != nil {
		return 0, err
	}
	n := int64(len(f.rows))
	if f.short {
		n--
	}
	return n, nil
}

func newTestPublisher(table string) *Publisher {
	return NewPublisher(config.MirrorConfig{URL: "postgres://localhost/test", Table: table, Timeout: time.Minute})
}

func TestStatements(t *testing.T) {
	got := newTestPublisher("charities").Statements()
	want := []string{
		`DROP TABLE IF EXISTS "charities"`,
		`CREATE TABLE "charities" (ein TEXT PRIMARY KEY, name TEXT, city TEXT, state TEXT, ntee_code TEXT, ntee_major TEXT)`,
		`CREATE INDEX "idx_charities_state" ON "charities" (state)`,
		`CREATE INDEX "idx_charities_ntee" ON "charities" (ntee_code)`,
		`CREATE INDEX "idx_charities_major" ON "charities" (ntee_major)`,
		`CREATE INDEX "idx_charities_major_state" ON "charities" (ntee_major, state)`,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Statements() mismatch (-want +got):\n%s", diff)
	}
}

func TestStatements_CustomTable(t *testing.T) {
	got := newTestPublisher("charities_v2").Statements()
	if got[0] != `DROP TABLE IF EXISTS "charities_v2"` {
		t.Errorf("Statements()[0] = %q", got[0])
	}
	if !strings.Contains(got[2], `"idx_charities_v2_state"`) {
		t.Errorf("index name should follow the table: %q", got[2])
	}
}

func TestReplace_CopiesRows(t *testing.T) {
	p := newTestPublisher("charities")
	fc := &fakeCopier{}
	rows := []database.InsertCharityParams{
		{Ein: "123", Name: sql.NullString{String: "Foo Inc", Valid: true}, State: sql.NullString{String: "TX", Valid: true}},
		{Ein: "456"},
	}

	n, err := p.replace(context.Background(), fc, rows)
	if err != nil {
		t.Fatalf("replace() error = %v", err)
	}
	if n != 2 {
		t.Errorf("replace() = %d, want 2", n)
	}
	if len(fc.execs) != len(p.Statements()) {
		t.Errorf("executed %d statements, want %d", len(fc.execs), len(p.Statements()))
	}
	if diff := cmp.Diff(pgx.Identifier{"charities"}, fc.table); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(database.CharityColumns, fc.columns); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}

	wantFirst := []any{
		"123",
		pgtype.Text{String: "Foo Inc", Valid: true},
		pgtype.Text{},
		pgtype.Text{String: "TX", Valid: true},
		pgtype.Text{},
		pgtype.Text{},
	}
	if diff := cmp.Diff(wantFirst, fc.rows[0]); diff != "" {
		t.Errorf("row mismatch (-want +got):\n%s", diff)
	}
}

func TestReplace_Errors(t *testing.T) {
	rows := []database.InsertCharityParams{{Ein: "1"}, {Ein: "2"}}

	tests := []struct {
		name    string
		copier  *fakeCopier
		wantErr string
	}{
		{"ddl failure", &fakeCopier{execErr: errors.New("permission denied for schema public")}, "DROP TABLE"},
		{"copy failure", &fakeCopier{copyErr: errors.New("conn closed")}, "copy rows"},
		{"short copy", &fakeCopier{short: true}, "copied 1 of 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestPublisher("charities").replace(context.Background(), tt.copier, rows)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("replace() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestPublish_ConnectError(t *testing.T) {
	p := NewPublisher(config.MirrorConfig{URL: "not a url ::", Table: "charities", Timeout: time.Second})

	_, err := p.Publish(context.Background(), nil)
	if err == nil || !strings.HasPrefix(err.Error(), "connect:") {
		t.Errorf("Publish() error = %v, want connect error", err)
	}
}
