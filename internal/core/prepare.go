package core

import "github.com/JonMunkholm/charitydb/internal/database"

// PrepareRows turns the loaded dataset into rows ready for bulk insertion.
//
// Every field is trimmed and normalized per CharityFields, empty values
// become NULL, rows without an EIN are dropped and repeated EINs keep only
// their first occurrence. Output keeps source order.
func PrepareRows(ds *Dataset) ([]database.InsertCharityParams, PrepareStats) {
	idx := MakeHeaderIndex(ds.Header)
	stats := PrepareStats{SourceRows: ds.Len()}

	rows := make([]database.InsertCharityParams, 0, ds.Len())
	seen := make(map[string]struct{}, ds.Len())
	vals := make([]string, len(CharityFields))

	for _, record := range ds.Records {
		for i, field := range CharityFields {
			vals[i] = field.apply(getCell(record, idx, field.Name))
		}

		if missingRequired(vals) {
			stats.MissingEIN++
			continue
		}
		ein := vals[0]
		if _, dup := seen[ein]; dup {
			stats.DuplicatesCollapsed++
			continue
		}
		seen[ein] = struct{}{}

		rows = append(rows, database.InsertCharityParams{
			Ein:       ein,
			Name:      NullText(vals[1]),
			City:      NullText(vals[2]),
			State:     NullText(vals[3]),
			NteeCode:  NullText(vals[4]),
			NteeMajor: NullText(vals[5]),
		})
	}

	stats.Prepared = len(rows)
	return rows, stats
}

// missingRequired reports whether a Required field of CharityFields is empty
// in the normalized values.
func missingRequired(vals []string) bool {
	for i, field := range CharityFields {
		if field.Required && vals[i] == "" {
			return true
		}
	}
	return false
}
