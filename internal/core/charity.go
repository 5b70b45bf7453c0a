package core

import "strings"

// CharityFields lists the charities columns in insertion order. Region and
// category codes are stored uppercase; names and cities keep their case.
// Uppercasing is per rune, so "ß" stays "ß" rather than expanding to "SS".
var CharityFields = []FieldSpec{
	{Name: "ein", Required: true},
	{Name: "name"},
	{Name: "city"},
	{Name: "state", Normalizer: strings.ToUpper},
	{Name: "ntee_code", Normalizer: strings.ToUpper},
	{Name: "ntee_major", Normalizer: strings.ToUpper},
}

// MissingColumns returns the CharityFields names absent from idx.
func MissingColumns(idx HeaderIndex) []string {
	var missing []string
	for _, f := range CharityFields {
		if _, ok := idx[f.Name]; !ok {
			missing = append(missing, f.Name)
		}
	}
	return missing
}
