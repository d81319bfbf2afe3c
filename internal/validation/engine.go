// internal/validation/engine.go
//
// Content validation engine.
//
// Context
// -------
// The engine compares every value-bearing entry of a record with one
// requirement cache and accumulates typed failures.  It never stops early:
// the only definition of "valid" is an empty result.
//
// Workflow
// --------
// For each entry, in record traversal order:
//
//  1. Unknown feature → FEATURE_NOT_FOUND, and nothing else for the entry.
//  2. Feature not registered under the impairment → PAIR_INVALID.
//  3. Enumeration feature with a value outside its options → SELECT_OPTION_INVALID.
//  4. Numeric value type with a blank value → NUMERIC_MISSING_VALUE.
//  5. Blood pressure feature with a malformed value → BLOOD_PRESSURE_FORMAT_INVALID.
//
// Checks 2 through 5 are independent, so one entry may fail several.
//
// Notes
// -----
//   - The value type used by check 4 comes from the cache, not the entry.
//   - An Engine holds only immutable state and may be shared freely.
package validation

import (
	"context"
	"strings"

	"github.com/yanizio/reqvalidator/internal/metrics"
	"github.com/yanizio/reqvalidator/internal/record"
	"github.com/yanizio/reqvalidator/internal/requirement"
)

// Every error type is exported at zero so dashboards see the full series
// before the first failure.
func init() {
	for _, t := range ErrorTypes {
		metrics.ValidationErrorsTotal.WithLabelValues(string(t))
	}
}

// Engine validates entries against one schema version.
type Engine struct {
	cache *requirement.Cache
	rules *Rules
}

// NewEngine binds cache and rules.  A nil rules uses DefaultRules.
func NewEngine(cache *requirement.Cache, rules *Rules) *Engine {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Engine{cache: cache, rules: rules}
}

// Version returns the schema version the engine validates against.
func (e *Engine) Version() int { return e.cache.Version() }

// CheckEntry applies every check to one entry.
func (e *Engine) CheckEntry(en record.Entry) []ValidationError {
	errs := e.check(nil, en)
	countErrors(errs)
	metrics.EntriesCheckedTotal.Inc()
	return errs
}

// ValidateEntries checks entries in order and concatenates the results.
func (e *Engine) ValidateEntries(entries []record.Entry) []ValidationError {
	var errs []ValidationError
	for _, en := range entries {
		errs = e.check(errs, en)
	}
	countErrors(errs)
	metrics.EntriesCheckedTotal.Add(float64(len(entries)))
	return errs
}

// ValidateRecord checks every content section of rec.  The returned error
// is non-nil only when ctx is cancelled, in which case no partial result
// is returned.
func (e *Engine) ValidateRecord(ctx context.Context, rec *record.MedicalRecord) ([]ValidationError, error) {
	entries := rec.Entries()

	var errs []ValidationError
	for _, en := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		errs = e.check(errs, en)
	}
	countErrors(errs)
	metrics.EntriesCheckedTotal.Add(float64(len(entries)))
	return errs, nil
}

func (e *Engine) check(errs []ValidationError, en record.Entry) []ValidationError {
	if !e.cache.HasFeature(en.Feature) {
		return append(errs, featureNotFound(en))
	}

	if !e.cache.IsValidPair(en.Feature, en.Impairment) {
		errs = append(errs, pairInvalid(en))
	}

	if opts, ok := e.cache.SelectOptionsFor(en.Feature); ok {
		if _, member := opts[requirement.Normalize(en.Value)]; !member {
			errs = append(errs, selectOptionInvalid(en))
		}
	}

	if vt, ok := e.cache.ValueTypeFor(en.Feature); ok && e.rules.IsNumeric(vt) {
		if strings.TrimSpace(en.Value) == "" {
			errs = append(errs, numericMissing(en, vt))
		}
	}

	if e.rules.IsBloodPressure(en.Feature) && !e.rules.BloodPressureOK(en.Value) {
		errs = append(errs, bloodPressureInvalid(en))
	}

	return errs
}

func countErrors(errs []ValidationError) {
	for _, ve := range errs {
		metrics.ValidationErrorsTotal.WithLabelValues(string(ve.Type)).Inc()
	}
}
