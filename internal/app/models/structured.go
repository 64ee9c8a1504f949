package models

import (
	"fmt"

	"github.com/goccy/go-json"
)

type StructuredType string

const (
	StructuredTypeAllergyIntolerance  StructuredType = "allergy_intolerance"
	StructuredTypeSymptom             StructuredType = "symptom"
	StructuredTypeDiagnosis           StructuredType = "diagnosis"
	StructuredTypeMedicationRequest   StructuredType = "medication_request"
	StructuredTypeMedicationStatement StructuredType = "medication_statement"
	StructuredTypeEncounter           StructuredType = "encounter"
	StructuredTypeAppointment         StructuredType = "appointment"
	StructuredTypeServiceRequest      StructuredType = "service_request"
	StructuredTypeChargeItem          StructuredType = "charge_item"
	StructuredTypeFiles               StructuredType = "files"
	StructuredTypeTimeOfDeath         StructuredType = "time_of_death"
)

// AllStructuredTypes lists every structured type in a stable order.
var AllStructuredTypes = []StructuredType{
	StructuredTypeAllergyIntolerance,
	StructuredTypeSymptom,
	StructuredTypeDiagnosis,
	StructuredTypeMedicationRequest,
	StructuredTypeMedicationStatement,
	StructuredTypeEncounter,
	StructuredTypeAppointment,
	StructuredTypeServiceRequest,
	StructuredTypeChargeItem,
	StructuredTypeFiles,
	StructuredTypeTimeOfDeath,
}

func (t StructuredType) IsValid() bool {
	for _, known := range AllStructuredTypes {
		if t == known {
			return true
		}
	}
	return false
}

// StructuredValue is the homogeneous record list answering a structured
// question. The set of implementations is closed: every consumer implements
// StructuredVisitor, so adding a variant breaks the build until each
// validator and request handler covers it.
type StructuredValue interface {
	StructuredType() StructuredType
	Len() int
	Accept(visitor StructuredVisitor)
}

type StructuredVisitor interface {
	VisitAllergyIntolerances(items AllergyIntolerances)
	VisitSymptoms(items Symptoms)
	VisitDiagnoses(items Diagnoses)
	VisitMedicationRequests(items MedicationRequests)
	VisitMedicationStatements(items MedicationStatements)
	VisitEncounters(items Encounters)
	VisitAppointments(items Appointments)
	VisitServiceRequests(items ServiceRequests)
	VisitChargeItems(items ChargeItems)
	VisitFileUploads(items FileUploads)
	VisitTimesOfDeath(items TimesOfDeath)
}

type (
	AllergyIntolerances  []AllergyIntolerance
	Symptoms             []Symptom
	Diagnoses            []Diagnosis
	MedicationRequests   []MedicationRequest
	MedicationStatements []MedicationStatement
	Encounters           []Encounter
	Appointments         []Appointment
	ServiceRequests      []ServiceRequest
	ChargeItems          []ChargeItem
	FileUploads          []FileUpload
	TimesOfDeath         []TimeOfDeath
)

func (AllergyIntolerances) StructuredType() StructuredType {
	return StructuredTypeAllergyIntolerance
}
func (l AllergyIntolerances) Len() int                  { return len(l) }
func (l AllergyIntolerances) Accept(v StructuredVisitor) { v.VisitAllergyIntolerances(l) }

func (Symptoms) StructuredType() StructuredType { return StructuredTypeSymptom }
func (l Symptoms) Len() int                      { return len(l) }
func (l Symptoms) Accept(v StructuredVisitor)    { v.VisitSymptoms(l) }

func (Diagnoses) StructuredType() StructuredType { return StructuredTypeDiagnosis }
func (l Diagnoses) Len() int                      { return len(l) }
func (l Diagnoses) Accept(v StructuredVisitor)    { v.VisitDiagnoses(l) }

func (MedicationRequests) StructuredType() StructuredType {
	return StructuredTypeMedicationRequest
}
func (l MedicationRequests) Len() int                  { return len(l) }
func (l MedicationRequests) Accept(v StructuredVisitor) { v.VisitMedicationRequests(l) }

func (MedicationStatements) StructuredType() StructuredType {
	return StructuredTypeMedicationStatement
}
func (l MedicationStatements) Len() int                  { return len(l) }
func (l MedicationStatements) Accept(v StructuredVisitor) { v.VisitMedicationStatements(l) }

func (Encounters) StructuredType() StructuredType { return StructuredTypeEncounter }
func (l Encounters) Len() int                      { return len(l) }
func (l Encounters) Accept(v StructuredVisitor)    { v.VisitEncounters(l) }

func (Appointments) StructuredType() StructuredType { return StructuredTypeAppointment }
func (l Appointments) Len() int                      { return len(l) }
func (l Appointments) Accept(v StructuredVisitor)    { v.VisitAppointments(l) }

func (ServiceRequests) StructuredType() StructuredType { return StructuredTypeServiceRequest }
func (l ServiceRequests) Len() int                      { return len(l) }
func (l ServiceRequests) Accept(v StructuredVisitor)    { v.VisitServiceRequests(l) }

func (ChargeItems) StructuredType() StructuredType { return StructuredTypeChargeItem }
func (l ChargeItems) Len() int                      { return len(l) }
func (l ChargeItems) Accept(v StructuredVisitor)    { v.VisitChargeItems(l) }

func (FileUploads) StructuredType() StructuredType { return StructuredTypeFiles }
func (l FileUploads) Len() int                      { return len(l) }
func (l FileUploads) Accept(v StructuredVisitor)    { v.VisitFileUploads(l) }

func (TimesOfDeath) StructuredType() StructuredType { return StructuredTypeTimeOfDeath }
func (l TimesOfDeath) Len() int                      { return len(l) }
func (l TimesOfDeath) Accept(v StructuredVisitor)    { v.VisitTimesOfDeath(l) }

// NewStructuredValue returns the empty list for a structured type.
func NewStructuredValue(structuredType StructuredType) (StructuredValue, error) {
	switch structuredType {
	case StructuredTypeAllergyIntolerance:
		return AllergyIntolerances{}, nil
	case StructuredTypeSymptom:
		return Symptoms{}, nil
	case StructuredTypeDiagnosis:
		return Diagnoses{}, nil
	case StructuredTypeMedicationRequest:
		return MedicationRequests{}, nil
	case StructuredTypeMedicationStatement:
		return MedicationStatements{}, nil
	case StructuredTypeEncounter:
		return Encounters{}, nil
	case StructuredTypeAppointment:
		return Appointments{}, nil
	case StructuredTypeServiceRequest:
		return ServiceRequests{}, nil
	case StructuredTypeChargeItem:
		return ChargeItems{}, nil
	case StructuredTypeFiles:
		return FileUploads{}, nil
	case StructuredTypeTimeOfDeath:
		return TimesOfDeath{}, nil
	}
	return nil, fmt.Errorf("unknown structured type %q", structuredType)
}

// DecodeStructuredValue decodes a JSON array into the list type of structuredType.
func DecodeStructuredValue(structuredType StructuredType, data []byte) (StructuredValue, error) {
	var (
		value StructuredValue
		err   error
	)
	switch structuredType {
	case StructuredTypeAllergyIntolerance:
		var items AllergyIntolerances
		if err = json.Unmarshal(data, &items); err == nil {
			value = items
		}
	case StructuredTypeSymptom:
		var items Symptoms
		if err = json.Unmarshal(data, &items); err == nil {
			value = items
		}
	case StructuredTypeDiagnosis:
		var items Diagnoses
		if err = json.Unmarshal(data, &items); err == nil {
			value = items
		}
	case StructuredTypeMedicationRequest:
		var items MedicationRequests
		if err = json.Unmarshal(data, &items); err == nil {
			value = items
		}
	case StructuredTypeMedicationStatement:
		var items MedicationStatements
		if err = json.Unmarshal(data, &items); err == nil {
			value = items
		}
	case StructuredTypeEncounter:
		var items Encounters
		if err = json.Unmarshal(data, &items); err == nil {
			value = items
		}
	case StructuredTypeAppointment:
		var items Appointments
		if err = json.Unmarshal(data, &items); err == nil {
			value = items
		}
	case StructuredTypeServiceRequest:
		var items ServiceRequests
		if err = json.Unmarshal(data, &items); err == nil {
			value = items
		}
	case StructuredTypeChargeItem:
		var items ChargeItems
		if err = json.Unmarshal(data, &items); err == nil {
			value = items
		}
	case StructuredTypeFiles:
		var items FileUploads
		if err = json.Unmarshal(data, &items); err == nil {
			value = items
		}
	case StructuredTypeTimeOfDeath:
		var items TimesOfDeath
		if err = json.Unmarshal(data, &items); err == nil {
			value = items
		}
	default:
		return nil, fmt.Errorf("unknown structured type %q", structuredType)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s value: %w", structuredType, err)
	}
	return value, nil
}
