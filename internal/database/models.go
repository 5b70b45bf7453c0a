package database

import "database/sql"

// CharityColumns lists the charities columns in insertion order.
var CharityColumns = []string{"ein", "name", "city", "state", "ntee_code", "ntee_major"}

type Charity struct {
	Ein       string
	Name      sql.NullString
	City      sql.NullString
	State     sql.NullString
	NteeCode  sql.NullString
	NteeMajor sql.NullString
}

type InsertCharityParams struct {
	Ein       string
	Name      sql.NullString
	City      sql.NullString
	State     sql.NullString
	NteeCode  sql.NullString
	NteeMajor sql.NullString
}

// Values returns the row in CharityColumns order.
func (p InsertCharityParams) Values() []any {
	return []any{p.Ein, p.Name, p.City, p.State, p.NteeCode, p.NteeMajor}
}

// InsertResult reports the outcome of a bulk insert.
type InsertResult struct {
	Attempted int64
	Inserted  int64
}

// Ignored is the number of rows skipped by the conflict policy.
func (r InsertResult) Ignored() int64 {
	return r.Attempted - r.Inserted
}

// Summary holds the post-load counts printed at the end of a build.
type Summary struct {
	TotalRows          int64
	DistinctStates     int64
	DistinctNteeMajors int64
}
