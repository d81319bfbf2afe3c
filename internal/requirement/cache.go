// internal/requirement/cache.go
//
// Per-version requirement cache.
//
// Context
// -------
// The validator asks three questions for every record entry: does the
// feature exist, is it legal under this impairment, and which select
// options does it accept.  Build folds the flat row set into sets and maps
// once so each question is a single map probe.
//
// Workflow
// --------
//  1. Build rejects an empty row set.  An empty cache would let every
//     record pass.
//  2. One pass over rows fills the feature set, the (feature, impairment)
//     pair set, and the feature → option set map.
//  3. Rows are kept in order for value-type resolution and audit output.
//
// Notes
// -----
//   - A Cache is never mutated after Build returns, so it may be shared by
//     any number of goroutines.
//   - ValueTypeFor resolves to the first row for the feature.  Rows listing
//     the same feature under different impairments with different value
//     types are not reconciled; row order decides.
package requirement

import (
	"strconv"

	"facette.io/natsort"
	"github.com/zeebo/xxh3"
)

type pair struct {
	feature    string
	impairment string
}

// Cache answers membership queries for one schema version.
type Cache struct {
	version     int
	features    map[string]struct{}
	pairs       map[pair]struct{}
	options     map[string]map[string]struct{}
	valueTypes  map[string]string
	rows        []Row
	fingerprint uint64
}

// Build constructs the cache for version from rows.
func Build(version int, rows []Row) (*Cache, error) {
	if len(rows) == 0 {
		return nil, noData(version)
	}

	c := &Cache{
		version:    version,
		features:   make(map[string]struct{}, len(rows)),
		pairs:      make(map[pair]struct{}, len(rows)),
		options:    make(map[string]map[string]struct{}),
		valueTypes: make(map[string]string, len(rows)),
		rows:       make([]Row, len(rows)),
	}
	copy(c.rows, rows)

	h := xxh3.New()
	for i, r := range rows {
		feature := Normalize(r.Feature)
		if feature == "" {
			return nil, &SetupError{
				Version: version,
				Kind:    ErrMalformedRow,
				Err:     &rowError{index: i, reason: "blank feature"},
			}
		}

		c.features[feature] = struct{}{}
		c.pairs[pair{feature, Normalize(r.Impairment)}] = struct{}{}
		if _, seen := c.valueTypes[feature]; !seen {
			c.valueTypes[feature] = Normalize(r.ValueType)
		}

		if r.SelectOption != nil {
			opts, ok := c.options[feature]
			if !ok {
				opts = make(map[string]struct{})
				c.options[feature] = opts
			}
			opts[Normalize(*r.SelectOption)] = struct{}{}
		}

		hashRow(h, r)
	}
	c.fingerprint = h.Sum64()

	return c, nil
}

// Version returns the schema version the cache was built for.
func (c *Cache) Version() int { return c.version }

// Len reports the number of rows the cache was built from.
func (c *Cache) Len() int { return len(c.rows) }

// Fingerprint is a hash of the row sequence.  Identical rows in identical
// order always produce the same value.
func (c *Cache) Fingerprint() uint64 { return c.fingerprint }

// HasFeature reports whether feature is known to this version.
func (c *Cache) HasFeature(feature string) bool {
	_, ok := c.features[Normalize(feature)]
	return ok
}

// IsValidPair reports whether feature is registered under impairment.
func (c *Cache) IsValidPair(feature, impairment string) bool {
	_, ok := c.pairs[pair{Normalize(feature), Normalize(impairment)}]
	return ok
}

// SelectOptionsFor returns the accepted options of an enumeration feature.
// ok is false when the feature is unknown or not enumeration-typed.  The
// returned map is shared; callers must not modify it.
func (c *Cache) SelectOptionsFor(feature string) (opts map[string]struct{}, ok bool) {
	opts, ok = c.options[Normalize(feature)]
	return opts, ok
}

// ValueTypeFor returns the value type of the first row naming feature.
func (c *Cache) ValueTypeFor(feature string) (string, bool) {
	vt, ok := c.valueTypes[Normalize(feature)]
	return vt, ok
}

// Rows returns a copy of the rows in build order.
func (c *Cache) Rows() []Row {
	out := make([]Row, len(c.rows))
	copy(out, c.rows)
	return out
}

// Features lists every known feature in natural sort order.
func (c *Cache) Features() []string {
	out := make([]string, 0, len(c.features))
	for f := range c.features {
		out = append(out, f)
	}
	natsort.Sort(out)
	return out
}

/*──────────────────────────── helpers ─────────────────────────────────────*/

type rowError struct {
	index  int
	reason string
}

func (e *rowError) Error() string {
	return "row " + strconv.Itoa(e.index) + ": " + e.reason
}

func hashRow(h *xxh3.Hasher, r Row) {
	for _, s := range []string{r.Tab, r.Impairment, r.Feature, r.FeatureType, r.ValueType} {
		_, _ = h.WriteString(s)
		_, _ = h.Write([]byte{0})
	}
	for _, p := range []*string{r.SelectOption, r.Code} {
		if p == nil {
			_, _ = h.Write([]byte{1})
			continue
		}
		_, _ = h.WriteString(*p)
		_, _ = h.Write([]byte{0})
	}
}
