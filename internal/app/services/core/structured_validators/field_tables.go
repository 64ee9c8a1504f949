package structuredValidators

import "carecapture-service/internal/app/models"

var allergyFields = []FieldDefinition[models.AllergyIntolerance]{
	{Key: "code", Required: true, Value: func(a models.AllergyIntolerance) any { return a.Code }},
	{Key: "clinical_status", Required: true, Value: func(a models.AllergyIntolerance) any { return a.ClinicalStatus }, Rule: "oneof=active inactive resolved"},
	{Key: "verification_status", Required: true, Value: func(a models.AllergyIntolerance) any { return a.VerificationStatus }, Rule: "oneof=unconfirmed presumed confirmed refuted entered_in_error"},
	{Key: "category", Value: func(a models.AllergyIntolerance) any { return a.Category }, Rule: "oneof=food medication environment biologic"},
	{Key: "criticality", Value: func(a models.AllergyIntolerance) any { return a.Criticality }, Rule: "oneof=low high unable_to_assess"},
}

var symptomFields = []FieldDefinition[models.Symptom]{
	{Key: "code", Required: true, Value: func(s models.Symptom) any { return s.Code }},
	{Key: "clinical_status", Required: true, Value: func(s models.Symptom) any { return s.ClinicalStatus }, Rule: "oneof=active recurrence relapse inactive remission resolved"},
	{Key: "verification_status", Required: true, Value: func(s models.Symptom) any { return s.VerificationStatus }, Rule: "oneof=unconfirmed provisional differential confirmed refuted entered_in_error"},
	{Key: "severity", Value: func(s models.Symptom) any { return s.Severity }, Rule: "oneof=severe moderate mild"},
}

var diagnosisFields = []FieldDefinition[models.Diagnosis]{
	{Key: "code", Required: true, Value: func(d models.Diagnosis) any { return d.Code }},
	{Key: "clinical_status", Required: true, Value: func(d models.Diagnosis) any { return d.ClinicalStatus }, Rule: "oneof=active recurrence relapse inactive remission resolved"},
	{Key: "verification_status", Required: true, Value: func(d models.Diagnosis) any { return d.VerificationStatus }, Rule: "oneof=unconfirmed provisional differential confirmed refuted entered_in_error"},
}

var encounterFields = []FieldDefinition[models.Encounter]{
	{Key: "status", Required: true, Value: func(e models.Encounter) any { return e.Status }},
	{Key: "encounter_class", Required: true, Value: func(e models.Encounter) any { return e.EncounterClass }},
	{Key: "priority", Value: func(e models.Encounter) any { return e.Priority }},
}

var serviceRequestFields = []FieldDefinition[models.ServiceRequest]{
	{Key: "status", Required: true, Value: func(s models.ServiceRequest) any { return s.Status }},
	{Key: "intent", Required: true, Value: func(s models.ServiceRequest) any { return s.Intent }},
	{Key: "code", Required: true, Value: func(s models.ServiceRequest) any { return s.Code }},
	{Key: "priority", Value: func(s models.ServiceRequest) any { return s.Priority }, Rule: "oneof=routine urgent asap stat"},
	{Key: "category", Value: func(s models.ServiceRequest) any { return s.Category }},
}

var chargeItemFields = []FieldDefinition[models.ChargeItem]{
	{Key: "status", Required: true, Value: func(c models.ChargeItem) any { return c.Status }},
	{Key: "code", Required: true, Value: func(c models.ChargeItem) any { return c.Code }},
	{Key: "quantity", Required: true, Value: func(c models.ChargeItem) any {
		if c.Quantity == nil {
			return nil
		}
		return *c.Quantity
	}, Rule: "gt=0", Message: "Quantity must be greater than 0"},
}

func ValidateAllergyIntolerances(questionID string, items models.AllergyIntolerances) []models.QuestionValidationError {
	return validateFields(questionID, items, func(a models.AllergyIntolerance) bool {
		return isEnteredInError(a.VerificationStatus, a.ClinicalStatus)
	}, allergyFields)
}

func ValidateSymptoms(questionID string, items models.Symptoms) []models.QuestionValidationError {
	return validateFields(questionID, items, func(s models.Symptom) bool {
		return isEnteredInError(s.VerificationStatus, s.ClinicalStatus)
	}, symptomFields)
}

func ValidateDiagnoses(questionID string, items models.Diagnoses) []models.QuestionValidationError {
	return validateFields(questionID, items, func(d models.Diagnosis) bool {
		return isEnteredInError(d.VerificationStatus, d.ClinicalStatus)
	}, diagnosisFields)
}

func ValidateEncounters(questionID string, items models.Encounters) []models.QuestionValidationError {
	return validateFields(questionID, items, func(e models.Encounter) bool {
		return isEnteredInError(e.Status)
	}, encounterFields)
}

func ValidateServiceRequests(questionID string, items models.ServiceRequests) []models.QuestionValidationError {
	return validateFields(questionID, items, func(s models.ServiceRequest) bool {
		return isEnteredInError(s.Status)
	}, serviceRequestFields)
}

func ValidateChargeItems(questionID string, items models.ChargeItems) []models.QuestionValidationError {
	return validateFields(questionID, items, func(c models.ChargeItem) bool {
		return isEnteredInError(c.Status)
	}, chargeItemFields)
}
