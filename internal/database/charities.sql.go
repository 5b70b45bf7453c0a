package database

import (
	"context"
	"fmt"
)

const insertCharity = `INSERT OR IGNORE INTO charities (ein, name, city, state, ntee_code, ntee_major)
VALUES (?, ?, ?, ?, ?, ?)`

// InsertCharities inserts rows with one prepared statement, skipping rows
// whose ein already exists. Returns the number of rows actually inserted.
func (q *Queries) InsertCharities(ctx context.Context, rows []InsertCharityParams) (int64, error) {
	stmt, err := q.db.PrepareContext(ctx, insertCharity)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	var inserted int64
	for i, row := range rows {
		res, err := stmt.ExecContext(ctx, row.Values()...)
		if err != nil {
			return inserted, fmt.Errorf("insert row %d (ein %s): %w", i+1, row.Ein, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return inserted, fmt.Errorf("rows affected: %w", err)
		}
		inserted += n
	}
	return inserted, nil
}

const countCharities = `SELECT COUNT(*) FROM charities`

func (q *Queries) CountCharities(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countCharities)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const countDistinctStates = `SELECT COUNT(DISTINCT state) FROM charities`

func (q *Queries) CountDistinctStates(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countDistinctStates)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const countDistinctNteeMajors = `SELECT COUNT(DISTINCT ntee_major) FROM charities`

func (q *Queries) CountDistinctNteeMajors(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countDistinctNteeMajors)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const getCharity = `SELECT ein, name, city, state, ntee_code, ntee_major FROM charities WHERE ein = ?`

func (q *Queries) GetCharity(ctx context.Context, ein string) (Charity, error) {
	row := q.db.QueryRowContext(ctx, getCharity, ein)
	var i Charity
	err := row.Scan(
		&i.Ein,
		&i.Name,
		&i.City,
		&i.State,
		&i.NteeCode,
		&i.NteeMajor,
	)
	return i, err
}

const listCharities = `SELECT ein, name, city, state, ntee_code, ntee_major FROM charities ORDER BY rowid`

// ListCharities returns every row in insertion order.
func (q *Queries) ListCharities(ctx context.Context) ([]Charity, error) {
	rows, err := q.db.QueryContext(ctx, listCharities)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Charity
	for rows.Next() {
		var i Charity
		if err := rows.Scan(
			&i.Ein,
			&i.Name,
			&i.City,
			&i.State,
			&i.NteeCode,
			&i.NteeMajor,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listIndexes = `SELECT name FROM sqlite_master
WHERE type = 'index' AND tbl_name = ? AND sql IS NOT NULL
ORDER BY name`

// ListIndexes returns the explicitly created indexes on table, skipping the
// automatic primary key index.
func (q *Queries) ListIndexes(ctx context.Context, table string) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listIndexes, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return names, nil
}
