// Package core builds the charities database from the cleaned CSV extract.
//
// The build is a single linear pipeline, run by [Service.Build]:
//
//  1. Load: [LoadCSV] reads the whole CSV into a [Dataset]; every value is text.
//  2. Initialize: the output SQLite file is deleted and recreated with the
//     charities table and its four indexes, committed before anything else.
//  3. Prepare: [PrepareRows] trims and uppercases fields per [CharityFields],
//     collapses duplicate EINs (first occurrence wins) and drops rows without
//     an EIN.
//  4. Insert and report: rows are bulk-inserted with an insert-or-ignore
//     policy in one transaction, then the summary counts are printed.
//
// A missing source file fails with [ErrSourceNotFound] before the database is
// touched. Storage errors are returned unchanged in meaning (wrapped with
// context) and abort the build; there are no retries. Data-quality problems
// never fail a build, they only show up in [PrepareStats] and the insert
// result.
//
// # Error Codes
//
// [MapError] turns technical errors into a support code and a remediation
// hint, which the command prints on failure:
//
//   - SRC001: source CSV missing
//   - FILE001-FILE003: source file unreadable, empty or malformed
//   - DB001-DB004: output database errors (disk, permissions, locks)
//   - MIR001-MIR003: mirror database errors
//   - ERR000: anything else
package core
