package record

// validRequest returns a request that passes the structural pass.
func validRequest() *ValidationRequest {
	base := func(tab, imp, feature, vt, value string) BaseRecord {
		return BaseRecord{
			Tab: tab, Impairment: imp, FeatureType: "result", Feature: feature,
			ValueType: vt, Value: value, ClinicalCode: "C-1",
		}
	}
	return &ValidationRequest{
		JSONFile: MedicalRecord{
			InsuredInfo: InsuredInfo{
				InsuredID: "I-1", PolicyID: "P-1", FirstName: "Ada", LastName: "Lovelace",
				Gender: "F", DateOfBirth: "1815-12-10", InsuredSSN: "000-00-0000",
			},
			Lab: []LabRecord{
				{BaseRecord: base("lab", "diabetes", "hba1c", "numeric", "6.1"), ReportDate: "2024-01-02"},
			},
			Test: []TestRecord{
				{ExtendedRecord: ExtendedRecord{
					BaseRecord: base("vitals", "cardio", "blood_pressure", "bp", "120/80"),
					ReportDate: "2024-01-03",
				}},
			},
			LifestyleCondition: []LifestyleConditionRecord{
				{ExtendedRecord: ExtendedRecord{
					BaseRecord: base("lifestyle", "tobacco", "smoking status", "select", "Never"),
					ReportDate: "2024-01-04",
				}},
			},
			Rx: []RxRecord{
				{Impairment: "cardio", RxName: "lisinopril", RxType: "ace inhibitor",
					StartDate: "2023-01-01", RxDate: "2023-01-01"},
			},
		},
		MetadataDate:            "2024-01-05",
		MetadataInsuredID:       "I-1",
		MetadataInsuredLastName: "Lovelace",
		MetadataInsuredFirst:    "Ada",
		MetadataBatchName:       "Daily",
		MetadataVersion:         25,
	}
}
