package structuredValidators

import (
	"carecapture-service/internal/app/models"
	"carecapture-service/internal/pkg/utils"
	"strings"
)

func ValidateMedicationRequests(questionID string, items models.MedicationRequests) []models.QuestionValidationError {
	var errs []models.QuestionValidationError
	for i, request := range items {
		if isEnteredInError(request.Status) {
			continue
		}
		if request.Medication.Code == "" {
			errs = append(errs, fieldError(questionID, "medication", i, MessageRequired))
		}

		var dosage models.DosageInstruction
		if len(request.DosageInstruction) > 0 {
			dosage = request.DosageInstruction[0]
		}
		if !hasDose(dosage.DoseAndRate) {
			errs = append(errs, fieldError(questionID, "dosage", i, MessageDoseRequired))
		}
		if !hasFrequency(dosage) {
			errs = append(errs, fieldError(questionID, "frequency", i, MessageFrequencyRequired))
		}
		if dosage.Timing != nil && dosage.Timing.Repeat != nil && !durationComplete(dosage.Timing.Repeat.BoundsDuration) {
			errs = append(errs, fieldError(questionID, "duration", i, MessageDurationIncomplete))
		}
	}
	return errs
}

func hasDose(doseAndRate *models.DoseAndRate) bool {
	if doseAndRate == nil {
		return false
	}
	if !doseAndRate.DoseQuantity.IsEmpty() {
		return true
	}
	if doseAndRate.DoseRange != nil {
		return !doseAndRate.DoseRange.Low.IsEmpty() && !doseAndRate.DoseRange.High.IsEmpty()
	}
	return false
}

// hasFrequency accepts a fixed timing or an as-needed instruction.
func hasFrequency(dosage models.DosageInstruction) bool {
	if dosage.AsNeededBoolean {
		return true
	}
	if dosage.Timing == nil {
		return false
	}
	if !dosage.Timing.Code.IsEmpty() {
		return true
	}
	repeat := dosage.Timing.Repeat
	return repeat != nil && repeat.Frequency > 0 && repeat.Period > 0 && repeat.PeriodUnit != ""
}

// durationComplete holds when value and unit are both set or both unset.
func durationComplete(duration *models.DurationValue) bool {
	if duration == nil {
		return true
	}
	return (duration.Value != nil) == (duration.Unit != "")
}

func ValidateMedicationStatements(questionID string, items models.MedicationStatements) []models.QuestionValidationError {
	var errs []models.QuestionValidationError
	for i, statement := range items {
		if isEnteredInError(statement.Status) {
			continue
		}
		if statement.Medication.Code == "" {
			errs = append(errs, fieldError(questionID, "medication", i, MessageRequired))
		}
		if strings.TrimSpace(statement.DosageText) == "" {
			errs = append(errs, fieldError(questionID, "dosage_text", i, MessageRequired))
		}
		if err := checkEffectivePeriod(statement.EffectivePeriod); err != "" {
			errs = append(errs, fieldError(questionID, "effective_period", i, err))
		}
	}
	return errs
}

func checkEffectivePeriod(period *models.Period) string {
	if period == nil || strings.TrimSpace(period.Start) == "" {
		return MessageRequired
	}
	start, err := utils.ParseClinicalTime(period.Start)
	if err != nil {
		return MessageInvalidDate
	}
	if strings.TrimSpace(period.End) == "" {
		return ""
	}
	end, err := utils.ParseClinicalTime(period.End)
	if err != nil {
		return MessageInvalidDate
	}
	if end.Before(start) {
		return MessageEndBeforeStart
	}
	return ""
}
