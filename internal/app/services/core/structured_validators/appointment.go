package structuredValidators

import (
	"carecapture-service/internal/app/models"
	"strings"
)

func ValidateAppointments(questionID string, items models.Appointments) []models.QuestionValidationError {
	var errs []models.QuestionValidationError
	for i, appointment := range items {
		if isEnteredInError(appointment.Status) {
			continue
		}
		if strings.TrimSpace(appointment.ReasonForVisit) == "" {
			errs = append(errs, fieldError(questionID, "reason_for_visit", i, MessageRequired))
		}
		if appointment.SlotID == "" {
			errs = append(errs, fieldError(questionID, "slot_id", i, "Please select a slot"))
		}
	}
	return errs
}
