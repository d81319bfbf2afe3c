package validation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yanizio/reqvalidator/internal/record"
	"github.com/yanizio/reqvalidator/internal/requirement"
)

func opt(s string) *string { return &s }

func testCache(t *testing.T) *requirement.Cache {
	t.Helper()
	c, err := requirement.Build(25, []requirement.Row{
		{Tab: "vitals", Impairment: "cardio", Feature: "blood_pressure", FeatureType: "measurement", ValueType: "bp"},
		{Tab: "lab", Impairment: "diabetes", Feature: "hba1c", FeatureType: "result", ValueType: "numeric"},
		{Tab: "lifestyle", Impairment: "tobacco", Feature: "smoking status", FeatureType: "status", ValueType: "select", SelectOption: opt("current")},
		{Tab: "lifestyle", Impairment: "tobacco", Feature: "smoking status", FeatureType: "status", ValueType: "select", SelectOption: opt("never")},
		{Tab: "lab", Impairment: "renal", Feature: "urine protein", FeatureType: "result", ValueType: "numeric", SelectOption: opt("trace")},
		{Tab: "rx", Impairment: "cardio", Feature: "ace inhibitor", FeatureType: "rx", ValueType: "text"},
	})
	require.NoError(t, err)
	return c
}

func types(errs []ValidationError) []ErrorType {
	out := make([]ErrorType, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Type)
	}
	return out
}

func TestEngine_EndToEndScenario(t *testing.T) {
	t.Parallel()

	c, err := requirement.Build(1, []requirement.Row{
		{Tab: "vitals", Impairment: "cardio", Feature: "blood_pressure", FeatureType: "measurement", ValueType: "bp"},
	})
	require.NoError(t, err)
	eng := NewEngine(c, nil)

	entry := record.Entry{Tab: "vitals", Impairment: "cardio", Feature: "blood_pressure", Value: "130/85"}
	assert.Empty(t, eng.CheckEntry(entry))

	entry.Impairment = "neuro"
	errs := eng.CheckEntry(entry)
	require.Len(t, errs, 1)
	assert.Equal(t, FeatureImpairmentPairInvalid, errs[0].Type)
	assert.Contains(t, errs[0].Message, "blood_pressure")
	assert.Contains(t, errs[0].Message, "neuro")
}

func TestEngine_FeatureNotFoundIsExclusive(t *testing.T) {
	t.Parallel()

	eng := NewEngine(testCache(t), nil)

	// Unknown feature named like a blood pressure rule would still only
	// report the missing feature.
	c, err := requirement.Build(2, []requirement.Row{{Feature: "hba1c", Impairment: "diabetes", ValueType: "numeric"}})
	require.NoError(t, err)
	bpUnknown := NewEngine(c, nil)

	for _, tc := range []struct {
		eng   *Engine
		entry record.Entry
	}{
		{eng, record.Entry{Tab: "lab", Feature: "ldl", Impairment: "nope", Value: ""}},
		{bpUnknown, record.Entry{Tab: "vitals", Feature: "blood_pressure", Impairment: "x", Value: "bad"}},
	} {
		errs := tc.eng.CheckEntry(tc.entry)
		require.Len(t, errs, 1)
		assert.Equal(t, FeatureNotFound, errs[0].Type)
		assert.Contains(t, errs[0].Message, tc.entry.Feature)
		assert.Contains(t, errs[0].Message, tc.entry.Tab)
	}
}

func TestEngine_SelectOption(t *testing.T) {
	t.Parallel()

	eng := NewEngine(testCache(t), nil)
	base := record.Entry{Tab: "lifestyle", Impairment: "tobacco", Feature: "Smoking Status"}

	for _, v := range []string{"never", "Never", " CURRENT "} {
		e := base
		e.Value = v
		assert.Empty(t, eng.CheckEntry(e), "value %q", v)
	}

	for _, v := range []string{"sometimes", ""} {
		e := base
		e.Value = v
		errs := eng.CheckEntry(e)
		require.Len(t, errs, 1, "value %q", v)
		assert.Equal(t, SelectOptionInvalid, errs[0].Type)
		require.NotNil(t, errs[0].Value)
		assert.Equal(t, v, *errs[0].Value)
	}
}

func TestEngine_NumericPresence(t *testing.T) {
	t.Parallel()

	eng := NewEngine(testCache(t), nil)
	e := record.Entry{Tab: "lab", Impairment: "diabetes", Feature: "hba1c"}

	errs := eng.CheckEntry(e)
	require.Len(t, errs, 1)
	assert.Equal(t, NumericMissingValue, errs[0].Type)

	e.Value = "   "
	assert.Equal(t, []ErrorType{NumericMissingValue}, types(eng.CheckEntry(e)))

	// Content is not inspected, only presence.
	e.Value = "not a number"
	assert.Empty(t, eng.CheckEntry(e))
}

func TestEngine_NumericUsesCacheValueType(t *testing.T) {
	t.Parallel()

	eng := NewEngine(testCache(t), nil)
	// The entry claims a text value type, the catalog says numeric.
	e := record.Entry{Tab: "lab", Impairment: "diabetes", Feature: "hba1c", ValueType: "text"}
	assert.Equal(t, []ErrorType{NumericMissingValue}, types(eng.CheckEntry(e)))
}

func TestEngine_BloodPressureFormats(t *testing.T) {
	t.Parallel()

	eng := NewEngine(testCache(t), nil)
	base := record.Entry{Tab: "vitals", Impairment: "cardio", Feature: "blood_pressure", SecondaryValue: "sitting"}

	e := base
	e.Value = "120/80"
	assert.Empty(t, eng.CheckEntry(e))

	for _, v := range []string{"120-80", "120/", "abc/80", "", " 120/80", "120/80 ", "120.5/80", "120/80/60", "0/80"} {
		e := base
		e.Value = v
		errs := eng.CheckEntry(e)
		require.Len(t, errs, 1, "value %q", v)
		assert.Equal(t, BloodPressureFormatInvalid, errs[0].Type)
		require.NotNil(t, errs[0].Value)
		require.NotNil(t, errs[0].SecondaryValue)
		assert.Equal(t, v, *errs[0].Value)
		assert.Equal(t, "sitting", *errs[0].SecondaryValue)
	}
}

func TestEngine_ChecksAccumulate(t *testing.T) {
	t.Parallel()

	eng := NewEngine(testCache(t), nil)
	// Wrong impairment, value outside options, and blank numeric value.
	e := record.Entry{Tab: "lab", Impairment: "cardio", Feature: "urine protein"}

	assert.Equal(t, []ErrorType{
		FeatureImpairmentPairInvalid,
		SelectOptionInvalid,
		NumericMissingValue,
	}, types(eng.CheckEntry(e)))
}

func TestEngine_ValidateRecordOrder(t *testing.T) {
	t.Parallel()

	eng := NewEngine(testCache(t), nil)
	rec := &record.MedicalRecord{
		Lab: []record.LabRecord{
			{BaseRecord: record.BaseRecord{Tab: "lab", Impairment: "diabetes", Feature: "hba1c", Value: "6.1"}},
			{BaseRecord: record.BaseRecord{Tab: "lab", Impairment: "diabetes", Feature: "ldl", Value: "99"}},
		},
		Test: []record.TestRecord{
			{ExtendedRecord: record.ExtendedRecord{BaseRecord: record.BaseRecord{
				Tab: "vitals", Impairment: "cardio", Feature: "blood_pressure", Value: "120-80"}}},
		},
		LifestyleCondition: []record.LifestyleConditionRecord{
			{ExtendedRecord: record.ExtendedRecord{BaseRecord: record.BaseRecord{
				Tab: "lifestyle", Impairment: "tobacco", Feature: "smoking status", Value: "daily"}}},
		},
		Rx: []record.RxRecord{
			{Impairment: "renal", RxName: "lisinopril", RxType: "ACE Inhibitor"},
		},
	}

	errs, err := eng.ValidateRecord(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, []ErrorType{
		FeatureNotFound,
		BloodPressureFormatInvalid,
		SelectOptionInvalid,
		FeatureImpairmentPairInvalid,
	}, types(errs))

	assert.Equal(t, record.SectionLab, errs[0].Section)
	assert.Equal(t, 1, errs[0].Index)
	assert.Equal(t, record.SectionRx, errs[3].Section)
	assert.Equal(t, "rx", errs[3].Tab)
}

func TestEngine_ValidateRecordClean(t *testing.T) {
	t.Parallel()

	eng := NewEngine(testCache(t), nil)
	rec := &record.MedicalRecord{
		InsuredInfo: record.InsuredInfo{InsuredID: "not content-checked"},
		Lab: []record.LabRecord{
			{BaseRecord: record.BaseRecord{Tab: "lab", Impairment: "diabetes", Feature: "HbA1c", Value: "6.1"}},
		},
	}
	errs, err := eng.ValidateRecord(context.Background(), rec)
	require.NoError(t, err)
	assert.Empty(t, errs)
}

func TestEngine_ValidateRecordCancelled(t *testing.T) {
	t.Parallel()

	eng := NewEngine(testCache(t), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := &record.MedicalRecord{Lab: []record.LabRecord{{BaseRecord: record.BaseRecord{Feature: "ldl"}}}}
	errs, err := eng.ValidateRecord(ctx, rec)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, errs)
}

func TestEngine_ValidateEntriesMatchesCheckEntry(t *testing.T) {
	t.Parallel()

	eng := NewEngine(testCache(t), nil)
	entries := []record.Entry{
		{Feature: "ldl"},
		{Feature: "hba1c", Impairment: "diabetes"},
		{Feature: "blood_pressure", Impairment: "cardio", Value: "120/80"},
	}

	var want []ValidationError
	for _, e := range entries {
		want = append(want, eng.CheckEntry(e)...)
	}
	assert.Equal(t, want, eng.ValidateEntries(entries))
	assert.Equal(t, 25, eng.Version())
}
