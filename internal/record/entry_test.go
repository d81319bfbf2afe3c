package record

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntries_TraversalOrder(t *testing.T) {
	t.Parallel()

	rec := validRequest().JSONFile
	rec.Lab = append(rec.Lab, LabRecord{BaseRecord: BaseRecord{Feature: "ldl"}})

	got := rec.Entries()
	require.Len(t, got, 5)

	var order []Section
	for _, e := range got {
		order = append(order, e.Section)
	}
	assert.Equal(t, []Section{
		SectionLab, SectionLab, SectionTest, SectionLifestyleCondition, SectionRx,
	}, order)
	assert.Equal(t, 1, got[1].Index)
	assert.Equal(t, "ldl", got[1].Feature)
	assert.Equal(t, "120/80", got[2].Value)
}

func TestEntries_RxMapping(t *testing.T) {
	t.Parallel()

	rec := validRequest().JSONFile
	rx := rec.SectionEntries(SectionRx)
	require.Len(t, rx, 1)

	assert.Equal(t, Entry{
		Section:     SectionRx,
		Tab:         "rx",
		Impairment:  "cardio",
		FeatureType: "rx",
		Feature:     "ace inhibitor",
		Value:       "lisinopril",
	}, rx[0])
}

func TestEntries_EmptyRecord(t *testing.T) {
	t.Parallel()

	var rec MedicalRecord
	assert.Empty(t, rec.Entries())
	assert.Nil(t, rec.SectionEntries(Section("Insured_Info")))
}

func TestDecode_ExportFieldNames(t *testing.T) {
	t.Parallel()

	const doc = `{
	  "json_file": {
	    "Insured_Info": {"Insured ID": "I-9", "File Status": {"a.pdf": "done"}},
	    "Lab": [{"Tab": "Lab", "Impairment": "Diabetes", "Feature Type": "Result",
	             "Feature": "HbA1c", "Value Type": "Numeric", "Value": "6.1",
	             "Secondary Value": "", "Report Date": "2024-01-02", "LOINC": "4548-4"}],
	    "Test": [{"Tab": "Vitals", "Feature": "Blood Pressure", "Value": "120/80",
	              "Location": "clinic", "Event Date": null}],
	    "Lifestyle/Condition": [{"Feature": "Smoking Status", "Onset Date": "2001"}],
	    "Rx": [{"Impairment": "Cardio", "Rx Name": "Lisinopril", "RX Type": "ACE Inhibitor"}]
	  },
	  "metadata_version": 25,
	  "metadata_batch_name": "Nightly"
	}`

	var req ValidationRequest
	require.NoError(t, json.Unmarshal([]byte(doc), &req))

	rec := req.JSONFile
	assert.Equal(t, "I-9", rec.InsuredInfo.InsuredID)
	assert.Equal(t, "done", rec.InsuredInfo.FileStatus["a.pdf"])
	assert.Equal(t, "HbA1c", rec.Lab[0].Feature)
	assert.Equal(t, "4548-4", rec.Lab[0].LOINC)
	assert.Equal(t, "clinic", rec.Test[0].Location)
	assert.Nil(t, rec.Test[0].EventDate)
	require.NotNil(t, rec.LifestyleCondition[0].OnsetDate)
	assert.Equal(t, "2001", *rec.LifestyleCondition[0].OnsetDate)
	assert.Equal(t, "ACE Inhibitor", rec.Rx[0].RxType)
	assert.Equal(t, 25, req.MetadataVersion)
	assert.Len(t, rec.Entries(), 4)
}
