package structuredValidators

import (
	"carecapture-service/internal/app/models"
	"carecapture-service/internal/pkg/exceptions"
	"carecapture-service/internal/pkg/utils"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	MessageRequired           = "This field is required"
	MessageDoseRequired       = "Dosage is required"
	MessageFrequencyRequired  = "Frequency is required"
	MessageDurationIncomplete = "Duration needs both a value and a unit"
	MessageInvalidDate        = "Enter a valid date"
	MessageEndBeforeStart     = "End date cannot be before the start date"
	MessageFileRequired       = "Please attach a file"
)

// Validate runs the validator of value's structured type. Types without a
// validator produce no errors.
func Validate(questionID string, value models.StructuredValue) []models.QuestionValidationError {
	if value == nil {
		return nil
	}
	dispatcher := &validatorDispatcher{questionID: questionID}
	value.Accept(dispatcher)
	return dispatcher.errors
}

// HasValidator reports whether structuredType has validation rules.
func HasValidator(structuredType models.StructuredType) bool {
	return structuredType.IsValid() && structuredType != models.StructuredTypeTimeOfDeath
}

type validatorDispatcher struct {
	questionID string
	errors     []models.QuestionValidationError
}

func (d *validatorDispatcher) VisitAllergyIntolerances(items models.AllergyIntolerances) {
	d.errors = ValidateAllergyIntolerances(d.questionID, items)
}

func (d *validatorDispatcher) VisitSymptoms(items models.Symptoms) {
	d.errors = ValidateSymptoms(d.questionID, items)
}

func (d *validatorDispatcher) VisitDiagnoses(items models.Diagnoses) {
	d.errors = ValidateDiagnoses(d.questionID, items)
}

func (d *validatorDispatcher) VisitMedicationRequests(items models.MedicationRequests) {
	d.errors = ValidateMedicationRequests(d.questionID, items)
}

func (d *validatorDispatcher) VisitMedicationStatements(items models.MedicationStatements) {
	d.errors = ValidateMedicationStatements(d.questionID, items)
}

func (d *validatorDispatcher) VisitEncounters(items models.Encounters) {
	d.errors = ValidateEncounters(d.questionID, items)
}

func (d *validatorDispatcher) VisitAppointments(items models.Appointments) {
	d.errors = ValidateAppointments(d.questionID, items)
}

func (d *validatorDispatcher) VisitServiceRequests(items models.ServiceRequests) {
	d.errors = ValidateServiceRequests(d.questionID, items)
}

func (d *validatorDispatcher) VisitChargeItems(items models.ChargeItems) {
	d.errors = ValidateChargeItems(d.questionID, items)
}

func (d *validatorDispatcher) VisitFileUploads(items models.FileUploads) {
	d.errors = ValidateFileUploads(d.questionID, items)
}

// Time of death has no rules of its own.
func (d *validatorDispatcher) VisitTimesOfDeath(models.TimesOfDeath) {}

// FieldDefinition is one row of a declarative rule table. Rule is a validator
// tag checked only when the field has a value.
type FieldDefinition[T any] struct {
	Key      string
	Required bool
	Value    func(item T) any
	Rule     string
	Message  string
}

// validateFields applies defs to every item not marked entered in error.
func validateFields[T any](questionID string, items []T, enteredInError func(T) bool, defs []FieldDefinition[T]) []models.QuestionValidationError {
	var errs []models.QuestionValidationError
	for i, item := range items {
		if enteredInError(item) {
			continue
		}
		for _, def := range defs {
			value := def.Value(item)
			if isBlank(value) {
				if def.Required {
					errs = append(errs, fieldError(questionID, def.Key, i, MessageRequired))
				}
				continue
			}
			if def.Rule == "" {
				continue
			}
			if err := utils.ValidateVar(value, def.Rule); err != nil {
				errs = append(errs, fieldError(questionID, def.Key, i, ruleMessage(def.Message, err)))
			}
		}
	}
	return errs
}

func ruleMessage(message string, err error) string {
	if message != "" {
		return message
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		return "Value " + exceptions.FormatValidationTag(validationErrors[0].Tag(), validationErrors[0].Param())
	}
	return "Value is invalid"
}

func fieldError(questionID, fieldKey string, index int, message string) models.QuestionValidationError {
	i := index
	return models.QuestionValidationError{
		QuestionID: questionID,
		FieldKey:   fieldKey,
		Index:      &i,
		Error:      message,
	}
}

func isBlank(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case models.Coding:
		return v.Code == ""
	case *models.Coding:
		return v.IsEmpty()
	case *float64:
		return v == nil
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		return rv.IsNil()
	case reflect.Slice, reflect.Map:
		return rv.Len() == 0
	}
	return false
}

func isEnteredInError(statuses ...string) bool {
	for _, status := range statuses {
		if status == models.StatusEnteredInError {
			return true
		}
	}
	return false
}
