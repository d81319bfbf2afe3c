// internal/record/model.go
//
// Extraction document model.
//
// Context
// -------
// A ValidationRequest carries one MedicalRecord (the extracted document)
// and batch metadata.  JSON names follow the extraction tool's export
// format verbatim, spaces and slashes included.
//
// Validation tags drive the structural pass in structural.go.  `required`
// on a string means non-empty, which is the only presence rule the export
// format needs.
//
// Notes
// -----
//   - Embedded structs flatten into the parent JSON object, the same way
//     the export nests BaseRecord fields directly in each lab or test row.
//   - Optional dates are pointers; nil means the key was absent or null.
//   - Oxford commas, two spaces after periods.
package record

// InsuredInfo is structural metadata about the insured individual.  It is
// presence-checked but never content-validated against requirements.
type InsuredInfo struct {
	InsuredID               string            `json:"Insured ID"                 validate:"required"`
	PolicyID                string            `json:"Policy ID"                  validate:"required"`
	FirstName               string            `json:"First Name"                 validate:"required"`
	MiddleName              string            `json:"Middle Name"`
	LastName                string            `json:"Last Name"                  validate:"required"`
	Gender                  string            `json:"Gender"                     validate:"required"`
	DateOfBirth             string            `json:"Date of Birth"              validate:"required"`
	Ethnicity               string            `json:"Ethnicity"`
	DateOfDeath             *string           `json:"Date of Death"`
	InsuredSSN              string            `json:"Insured SSN"                validate:"required"`
	StreetAddress           string            `json:"Street Address"`
	State                   string            `json:"State"`
	Zip                     string            `json:"Zip"`
	MostRecentAddressDate   *string           `json:"Most Recent Address Date"`
	MedicalRecordsStartDate string            `json:"Medical Records Start Date"`
	MedicalRecordsEndDate   string            `json:"Medical Records End Date"`
	MedicalRecordFiles      string            `json:"Medical Record Files"`
	FileStatus              map[string]string `json:"File Status"`
	AddressHyperlink        string            `json:"AddressHyperlink"`
	AddressHyperlinkURL     string            `json:"AddressHyperlinkUrl"`
	RequirementVersion      string            `json:"Requirement version"`
	PrimaryExtractor        string            `json:"Primary Extractor"`
	PrimaryAuditor          string            `json:"Primary Auditor"`
	SecondaryAuditor        string            `json:"Secondary Auditor"`
	Batch                   string            `json:"Batch"`
	Set                     string            `json:"Set"`
	AostaTeam               string            `json:"Aosta Team"`
}

// BaseRecord holds the fields shared by every requirement-bearing row.
type BaseRecord struct {
	Tab            string `json:"Tab"             validate:"required"`
	Impairment     string `json:"Impairment"      validate:"required"`
	FeatureType    string `json:"Feature Type"    validate:"required"`
	Feature        string `json:"Feature"         validate:"required"`
	ValueType      string `json:"Value Type"      validate:"required"`
	Value          string `json:"Value"`
	SecondaryValue string `json:"Secondary Value"`
	ExpandedValue  string `json:"Expanded Value"`
	Hyperlink      string `json:"Hyperlink"`
	HyperlinkURL   string `json:"HyperlinkUrl"`
	ClinicalCode   string `json:"Clinical Code"   validate:"required"`
}

// ExtendedRecord adds the event and clinician fields used by tests and
// lifestyle or condition rows.
type ExtendedRecord struct {
	BaseRecord
	Qualifier          string  `json:"Qualifier"`
	ReportDate         string  `json:"Report Date"        validate:"required"`
	EventDate          *string `json:"Event Date"`
	ImputedEventDate   *string `json:"Imputed Event Date"`
	OnsetDate          *string `json:"Onset Date"`
	ICDCode            string  `json:"ICD Code"`
	SnomedCode         string  `json:"Snomed Code"`
	ConditionStatus    string  `json:"Condition Status"`
	ClinicianName      string  `json:"Clinician Name"`
	SpecialtyCode      string  `json:"Specialty Code"`
	ClinicianSpecialty string  `json:"Clinician Specialty"`
}

// LabRecord is one lab result.
type LabRecord struct {
	BaseRecord
	ReportDate           string `json:"Report Date"            validate:"required"`
	LOINC                string `json:"LOINC"`
	NormalRangeOfValue   string `json:"Normal Range of Value"`
	ResultEvaluationFlag string `json:"Result Evaluation/Flag"`
	UnitOfMeasurement    string `json:"Unit of measurement"`
	ClinicianName        string `json:"Clinician Name"`
	SpecialtyCode        string `json:"Specialty Code"`
	ClinicianSpecialty   string `json:"Clinician Specialty"`
}

// TestRecord is one diagnostic test result.
type TestRecord struct {
	ExtendedRecord
	Location string `json:"Location"`
	TestType string `json:"Test Type"`
}

// LifestyleConditionRecord is one lifestyle or condition observation.
type LifestyleConditionRecord struct {
	ExtendedRecord
}

// RxRecord is one prescription.
type RxRecord struct {
	Impairment   string  `json:"Impairment"  validate:"required"`
	RxName       string  `json:"Rx Name"     validate:"required"`
	RxType       string  `json:"RX Type"     validate:"required"`
	RxNORM       string  `json:"RxNORM"`
	StartDate    string  `json:"Start Date"  validate:"required"`
	EndDate      *string `json:"End Date"`
	RxDate       string  `json:"Rx Date"     validate:"required"`
	Hyperlink    string  `json:"Hyperlink"`
	HyperlinkURL string  `json:"HyperlinkUrl"`
}

// MedicalRecord is the extracted document.
type MedicalRecord struct {
	InsuredInfo        InsuredInfo                `json:"Insured_Info"`
	Rx                 []RxRecord                 `json:"Rx"                  validate:"dive"`
	Lab                []LabRecord                `json:"Lab"                 validate:"dive"`
	Test               []TestRecord               `json:"Test"                validate:"dive"`
	LifestyleCondition []LifestyleConditionRecord `json:"Lifestyle/Condition" validate:"dive"`
}

// ValidationRequest is the unit a caller submits: one document plus batch
// metadata naming the requirements version to validate against.
type ValidationRequest struct {
	JSONFile                MedicalRecord `json:"json_file"`
	MetadataDate            string        `json:"metadata_date"                validate:"required,max=10"`
	MetadataInsuredID       string        `json:"metadata_insured_id"          validate:"required"`
	MetadataInsuredLastName string        `json:"metadata_insured_last_name"   validate:"required"`
	MetadataInsuredFirst    string        `json:"metadata_insured_first_name"  validate:"required"`
	MetadataPortfolioName   string        `json:"metadata_portfolio_name"`
	MetadataBatchName       string        `json:"metadata_batch_name"          validate:"required"`
	MetadataVersion         int           `json:"metadata_version"             validate:"min=1"`
}
