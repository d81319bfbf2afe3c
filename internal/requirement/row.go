// internal/requirement/row.go
//
// Requirement row model.
//
// Context
// -------
// One Row is a denormalised fact from the requirements catalog: for a given
// schema version, the (tab, impairment, feature) combination is legal, with
// its feature type, value type, and at most one select option.  Enumerated
// features therefore appear once per option.
//
// Notes
// -----
//   - Both sources lower-case every column in SQL; Build normalises again so
//     hand-built rows in tests behave the same.
//   - Nullable columns are pointers; callers must nil-check before use.
//   - Oxford commas, two spaces after periods.
package requirement

import "strings"

// Row mirrors one line of the requirements query.
type Row struct {
	Tab          string  `db:"tab"           json:"tab"`
	Impairment   string  `db:"impairment"    json:"impairment"`
	Feature      string  `db:"feature"       json:"feature"`
	FeatureType  string  `db:"feature_type"  json:"feature_type"`
	ValueType    string  `db:"value_type"    json:"value_type"`
	SelectOption *string `db:"select_option" json:"select_option,omitempty"`
	Code         *string `db:"code"          json:"code,omitempty"`
}

// Normalize is the key form used for every cache lookup.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
