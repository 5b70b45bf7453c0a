package core

import (
	"strings"
	"time"

	"github.com/JonMunkholm/charitydb/internal/database"
)

// FieldSpec describes one expected CSV column.
type FieldSpec struct {
	Name       string              // Column header name (must match CSV exactly)
	Required   bool                // Row is unusable without a value
	Normalizer func(string) string // Optional transformation applied after trimming
}

// apply trims s and runs the normalizer, if any.
func (f FieldSpec) apply(s string) string {
	s = strings.TrimSpace(s)
	if f.Normalizer != nil && s != "" {
		s = f.Normalizer(s)
	}
	return s
}

// HeaderIndex maps column names to their position in a CSV row.
type HeaderIndex map[string]int

// Dataset is a CSV file held in memory. Every value is text.
type Dataset struct {
	Path    string
	Header  []string
	Records [][]string
}

// Len returns the number of data rows.
func (d *Dataset) Len() int {
	return len(d.Records)
}

// PrepareStats counts what row preparation did to the source rows.
type PrepareStats struct {
	SourceRows          int // Rows read from the CSV
	DuplicatesCollapsed int // Later occurrences of an already seen EIN
	MissingEIN          int // Rows dropped for an empty EIN
	Prepared            int // Rows handed to the inserter
}

// Report is the outcome of a successful build.
type Report struct {
	SourcePath   string
	DatabasePath string // Absolute path of the produced database
	Prepare      PrepareStats
	Insert       database.InsertResult
	Summary      database.Summary
	Mirrored     int64 // Rows copied to the mirror; 0 when disabled
	Duration     time.Duration
}
