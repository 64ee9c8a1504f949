package models

const StatusEnteredInError = "entered_in_error"

type AllergyIntolerance struct {
	ID                 string `json:"id,omitempty"`
	Code               Coding `json:"code"`
	ClinicalStatus     string `json:"clinical_status,omitempty"`
	VerificationStatus string `json:"verification_status,omitempty"`
	Category           string `json:"category,omitempty"`
	Criticality        string `json:"criticality,omitempty"`
	LastOccurrence     string `json:"last_occurrence,omitempty"`
	Note               string `json:"note,omitempty"`
	Encounter          string `json:"encounter,omitempty"`
}

type Symptom struct {
	ID                 string `json:"id,omitempty"`
	Code               Coding `json:"code"`
	ClinicalStatus     string `json:"clinical_status,omitempty"`
	VerificationStatus string `json:"verification_status,omitempty"`
	Severity           string `json:"severity,omitempty"`
	Onset              string `json:"onset,omitempty"`
	Note               string `json:"note,omitempty"`
	Encounter          string `json:"encounter,omitempty"`
}

type Diagnosis struct {
	ID                 string `json:"id,omitempty"`
	Code               Coding `json:"code"`
	ClinicalStatus     string `json:"clinical_status,omitempty"`
	VerificationStatus string `json:"verification_status,omitempty"`
	Category           string `json:"category,omitempty"`
	Onset              string `json:"onset,omitempty"`
	Note               string `json:"note,omitempty"`
	Encounter          string `json:"encounter,omitempty"`
	// Dirty marks rows edited in this session; only those are resubmitted.
	Dirty bool `json:"dirty,omitempty"`
}

type DurationValue struct {
	Value *float64 `json:"value,omitempty"`
	Unit  string   `json:"unit,omitempty"`
}

type TimingRepeat struct {
	Frequency      int            `json:"frequency,omitempty"`
	Period         float64        `json:"period,omitempty"`
	PeriodUnit     string         `json:"period_unit,omitempty"`
	BoundsDuration *DurationValue `json:"bounds_duration,omitempty"`
}

type Timing struct {
	Repeat *TimingRepeat `json:"repeat,omitempty"`
	Code   *Coding       `json:"code,omitempty"`
}

type DosageQuantity struct {
	Value *float64 `json:"value,omitempty"`
	Unit  *Coding  `json:"unit,omitempty"`
}

func (q *DosageQuantity) IsEmpty() bool {
	return q == nil || q.Value == nil
}

type DoseRange struct {
	Low  DosageQuantity `json:"low"`
	High DosageQuantity `json:"high"`
}

type DoseAndRate struct {
	Type         string          `json:"type,omitempty"`
	DoseQuantity *DosageQuantity `json:"dose_quantity,omitempty"`
	DoseRange    *DoseRange      `json:"dose_range,omitempty"`
}

type DosageInstruction struct {
	Sequence              int          `json:"sequence,omitempty"`
	Text                  string       `json:"text,omitempty"`
	AdditionalInstruction []Coding     `json:"additional_instruction,omitempty"`
	PatientInstruction    string       `json:"patient_instruction,omitempty"`
	Timing                *Timing      `json:"timing,omitempty"`
	AsNeededBoolean       bool         `json:"as_needed_boolean,omitempty"`
	AsNeededFor           *Coding      `json:"as_needed_for,omitempty"`
	Route                 *Coding      `json:"route,omitempty"`
	Method                *Coding      `json:"method,omitempty"`
	Site                  *Coding      `json:"site,omitempty"`
	DoseAndRate           *DoseAndRate `json:"dose_and_rate,omitempty"`
}

type MedicationRequest struct {
	ID                string              `json:"id,omitempty"`
	Status            string              `json:"status,omitempty"`
	Intent            string              `json:"intent,omitempty"`
	Category          string              `json:"category,omitempty"`
	Priority          string              `json:"priority,omitempty"`
	DoNotPerform      bool                `json:"do_not_perform"`
	Medication        Coding              `json:"medication"`
	DosageInstruction []DosageInstruction `json:"dosage_instruction"`
	AuthoredOn        string              `json:"authored_on,omitempty"`
	Note              string              `json:"note,omitempty"`
	Encounter         string              `json:"encounter,omitempty"`
}

type Period struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

type MedicationStatement struct {
	ID                string  `json:"id,omitempty"`
	Status            string  `json:"status,omitempty"`
	Reason            string  `json:"reason,omitempty"`
	Medication        Coding  `json:"medication"`
	DosageText        string  `json:"dosage_text"`
	EffectivePeriod   *Period `json:"effective_period,omitempty"`
	InformationSource string  `json:"information_source,omitempty"`
	Note              string  `json:"note,omitempty"`
	Encounter         string  `json:"encounter,omitempty"`
}

type Hospitalization struct {
	AdmitSource          string `json:"admit_source,omitempty"`
	DischargeDisposition string `json:"discharge_disposition,omitempty"`
	DietPreference       string `json:"diet_preference,omitempty"`
	ReAdmission          bool   `json:"re_admission,omitempty"`
}

type Encounter struct {
	ID              string           `json:"id,omitempty"`
	Status          string           `json:"status,omitempty"`
	EncounterClass  string           `json:"encounter_class,omitempty"`
	Priority        string           `json:"priority,omitempty"`
	Period          *Period          `json:"period,omitempty"`
	Hospitalization *Hospitalization `json:"hospitalization,omitempty"`
	Facility        string           `json:"facility,omitempty"`
	Patient         string           `json:"patient,omitempty"`
}

type Appointment struct {
	ReasonForVisit string   `json:"reason_for_visit"`
	SlotID         string   `json:"slot_id"`
	Tags           []string `json:"tags,omitempty"`
	Status         string   `json:"status,omitempty"`
}

type ServiceRequest struct {
	ID                 string   `json:"id,omitempty"`
	Title              string   `json:"title,omitempty"`
	Status             string   `json:"status,omitempty"`
	Intent             string   `json:"intent,omitempty"`
	Priority           string   `json:"priority,omitempty"`
	Category           string   `json:"category,omitempty"`
	DoNotPerform       bool     `json:"do_not_perform"`
	Code               *Coding  `json:"code,omitempty"`
	BodySite           *Coding  `json:"body_site,omitempty"`
	Note               string   `json:"note,omitempty"`
	OccurrenceDateTime string   `json:"occurrence,omitempty"`
	PatientInstruction string   `json:"patient_instruction,omitempty"`
	ActivityDefinition string   `json:"activity_definition,omitempty"`
	Encounter          string   `json:"encounter,omitempty"`
	Locations          []string `json:"locations,omitempty"`
}

type ChargeItem struct {
	ID                   string   `json:"id,omitempty"`
	Title                string   `json:"title,omitempty"`
	Status               string   `json:"status,omitempty"`
	Code                 *Coding  `json:"code,omitempty"`
	Quantity             *float64 `json:"quantity,omitempty"`
	ChargeItemDefinition string   `json:"charge_item_definition,omitempty"`
	Note                 string   `json:"note,omitempty"`
	Encounter            string   `json:"encounter,omitempty"`
}

// FileData carries either inline content or the object name of an already
// stored payload.
type FileData struct {
	Content     []byte `json:"content,omitempty"`
	ObjectName  string `json:"object_name,omitempty"`
	ContentType string `json:"content_type,omitempty"`
}

func (d *FileData) IsEmpty() bool {
	return d == nil || (len(d.Content) == 0 && d.ObjectName == "")
}

type FileUpload struct {
	Name          string    `json:"name"`
	OriginalName  string    `json:"original_name"`
	FileType      string    `json:"file_type,omitempty"`
	MimeType      string    `json:"mime_type,omitempty"`
	AssociatingID string    `json:"associating_id,omitempty"`
	FileData      *FileData `json:"file_data,omitempty"`
}

type TimeOfDeath struct {
	DeceasedDatetime string `json:"deceased_datetime"`
}
