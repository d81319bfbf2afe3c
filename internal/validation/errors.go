// internal/validation/errors.go
//
// Content validation result vocabulary.
//
// Context
// -------
// A content mismatch is data, not a Go error.  Each ValidationError is
// self-contained: it names the feature, impairment, tab, and offending
// values, so a reader can act on it without the source document.
package validation

import (
	"fmt"

	"github.com/yanizio/reqvalidator/internal/record"
)

// ErrorType is the closed set of content failure kinds.
type ErrorType string

const (
	// FeatureNotFound: the feature is absent from the schema version.
	FeatureNotFound ErrorType = "FEATURE_NOT_FOUND"
	// FeatureImpairmentPairInvalid: the feature exists but not under this impairment.
	FeatureImpairmentPairInvalid ErrorType = "FEATURE_IMPAIRMENT_PAIR_INVALID"
	// SelectOptionInvalid: the value is not one of the feature's options.
	SelectOptionInvalid ErrorType = "SELECT_OPTION_INVALID"
	// NumericMissingValue: a numeric feature has no value.
	NumericMissingValue ErrorType = "NUMERIC_MISSING_VALUE"
	// BloodPressureFormatInvalid: a blood pressure value is not systolic/diastolic.
	BloodPressureFormatInvalid ErrorType = "BLOOD_PRESSURE_FORMAT_INVALID"
)

// ErrorTypes lists every kind in check order.
var ErrorTypes = []ErrorType{
	FeatureNotFound,
	FeatureImpairmentPairInvalid,
	SelectOptionInvalid,
	NumericMissingValue,
	BloodPressureFormatInvalid,
}

func (t ErrorType) String() string { return string(t) }

// ValidationError is one content failure for one entry.
type ValidationError struct {
	Type           ErrorType      `json:"error_type"`
	Feature        string         `json:"feature"`
	Impairment     string         `json:"impairment"`
	Tab            string         `json:"tab"`
	Value          *string        `json:"value,omitempty"`
	SecondaryValue *string        `json:"secondary_value,omitempty"`
	Message        string         `json:"message"`
	Section        record.Section `json:"section"`
	Index          int            `json:"index"`
}

func (e ValidationError) String() string {
	return fmt.Sprintf("%s %s[%d]: %s", e.Type, e.Section, e.Index, e.Message)
}

func newError(t ErrorType, e record.Entry, msg string) ValidationError {
	return ValidationError{
		Type:       t,
		Feature:    e.Feature,
		Impairment: e.Impairment,
		Tab:        e.Tab,
		Message:    msg,
		Section:    e.Section,
		Index:      e.Index,
	}
}

func strPtr(s string) *string { return &s }

func featureNotFound(e record.Entry) ValidationError {
	return newError(FeatureNotFound, e,
		fmt.Sprintf("feature %q in tab %q does not exist in the requirements", e.Feature, e.Tab))
}

func pairInvalid(e record.Entry) ValidationError {
	return newError(FeatureImpairmentPairInvalid, e,
		fmt.Sprintf("feature %q is not registered under impairment %q", e.Feature, e.Impairment))
}

func selectOptionInvalid(e record.Entry) ValidationError {
	ve := newError(SelectOptionInvalid, e,
		fmt.Sprintf("value %q is not a valid option for feature %q", e.Value, e.Feature))
	ve.Value = strPtr(e.Value)
	return ve
}

func numericMissing(e record.Entry, valueType string) ValidationError {
	return newError(NumericMissingValue, e,
		fmt.Sprintf("feature %q has value type %q but no value", e.Feature, valueType))
}

func bloodPressureInvalid(e record.Entry) ValidationError {
	ve := newError(BloodPressureFormatInvalid, e,
		fmt.Sprintf("blood pressure value %q (secondary %q) is not in systolic/diastolic form",
			e.Value, e.SecondaryValue))
	ve.Value = strPtr(e.Value)
	ve.SecondaryValue = strPtr(e.SecondaryValue)
	return ve
}
