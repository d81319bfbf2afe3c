package validation

import (
	"fmt"
	"regexp"

	"github.com/yanizio/reqvalidator/internal/requirement"
)

// Default rule settings.  Deployments override them through config.
var (
	DefaultNumericValueTypes     = []string{"numeric", "number", "integer", "decimal", "float"}
	DefaultBloodPressureFeatures = []string{"blood pressure", "blood_pressure", "bp"}
)

// DefaultBloodPressurePattern accepts two positive integers joined by a
// single slash with no surrounding whitespace.
const DefaultBloodPressurePattern = `^[1-9][0-9]*/[1-9][0-9]*$`

// RuleConfig is the uncompiled form of Rules.  Empty fields fall back to
// the defaults above.
type RuleConfig struct {
	NumericValueTypes     []string
	BloodPressureFeatures []string
	BloodPressurePattern  string
}

// Rules holds the predicates behind the numeric and blood pressure checks.
// It is immutable and safe for concurrent use.
type Rules struct {
	numeric map[string]struct{}
	bp      map[string]struct{}
	bpRe    *regexp.Regexp
}

// NewRules compiles cfg.
func NewRules(cfg RuleConfig) (*Rules, error) {
	if len(cfg.NumericValueTypes) == 0 {
		cfg.NumericValueTypes = DefaultNumericValueTypes
	}
	if len(cfg.BloodPressureFeatures) == 0 {
		cfg.BloodPressureFeatures = DefaultBloodPressureFeatures
	}
	if cfg.BloodPressurePattern == "" {
		cfg.BloodPressurePattern = DefaultBloodPressurePattern
	}

	re, err := regexp.Compile(cfg.BloodPressurePattern)
	if err != nil {
		return nil, fmt.Errorf("blood pressure pattern: %w", err)
	}
	return &Rules{
		numeric: toSet(cfg.NumericValueTypes),
		bp:      toSet(cfg.BloodPressureFeatures),
		bpRe:    re,
	}, nil
}

// DefaultRules returns the built-in rule set.
func DefaultRules() *Rules {
	r, err := NewRules(RuleConfig{})
	if err != nil {
		panic(err) // default pattern is a constant
	}
	return r
}

// IsNumeric reports whether valueType requires a value.
func (r *Rules) IsNumeric(valueType string) bool {
	_, ok := r.numeric[requirement.Normalize(valueType)]
	return ok
}

// IsBloodPressure reports whether feature is a blood pressure measurement.
func (r *Rules) IsBloodPressure(feature string) bool {
	_, ok := r.bp[requirement.Normalize(feature)]
	return ok
}

// BloodPressureOK reports whether value is well-formed.  The raw value is
// matched; surrounding whitespace is a failure.
func (r *Rules) BloodPressureOK(value string) bool {
	return r.bpRe.MatchString(value)
}

func toSet(in []string) map[string]struct{} {
	out := make(map[string]struct{}, len(in))
	for _, s := range in {
		if n := requirement.Normalize(s); n != "" {
			out[n] = struct{}{}
		}
	}
	return out
}
