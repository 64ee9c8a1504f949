package formResponses

import (
	"carecapture-service/internal/app/models"
	"fmt"
)

// DetectDuplicateCodes reports list items whose code already appears earlier
// in the same list. Entered-in-error rows are ignored. The result is advisory;
// loaded historical data may legitimately hold duplicates.
func DetectDuplicateCodes(questionID string, value models.StructuredValue) []models.DuplicateWarning {
	detector := &duplicateDetector{questionID: questionID}
	value.Accept(detector)
	return detector.warnings
}

type duplicateDetector struct {
	questionID string
	warnings   []models.DuplicateWarning
}

type codedRow struct {
	code    string
	display string
	skip    bool
}

func (d *duplicateDetector) check(label string, rows []codedRow) {
	seen := make(map[string]bool, len(rows))
	for i, row := range rows {
		if row.skip || row.code == "" {
			continue
		}
		if seen[row.code] {
			name := row.display
			if name == "" {
				name = row.code
			}
			d.warnings = append(d.warnings, models.DuplicateWarning{
				QuestionID: d.questionID,
				Index:      i,
				Code:       row.code,
				Message:    fmt.Sprintf("%s %s is already recorded", label, name),
			})
			continue
		}
		seen[row.code] = true
	}
}

func (d *duplicateDetector) VisitAllergyIntolerances(items models.AllergyIntolerances) {
	rows := make([]codedRow, len(items))
	for i, item := range items {
		rows[i] = codedRow{item.Code.Code, item.Code.Display, item.VerificationStatus == models.StatusEnteredInError}
	}
	d.check("allergy", rows)
}

func (d *duplicateDetector) VisitSymptoms(items models.Symptoms) {
	rows := make([]codedRow, len(items))
	for i, item := range items {
		rows[i] = codedRow{item.Code.Code, item.Code.Display, item.VerificationStatus == models.StatusEnteredInError}
	}
	d.check("symptom", rows)
}

func (d *duplicateDetector) VisitDiagnoses(items models.Diagnoses) {
	rows := make([]codedRow, len(items))
	for i, item := range items {
		rows[i] = codedRow{item.Code.Code, item.Code.Display, item.VerificationStatus == models.StatusEnteredInError}
	}
	d.check("diagnosis", rows)
}

func (d *duplicateDetector) VisitMedicationRequests(models.MedicationRequests)     {}
func (d *duplicateDetector) VisitMedicationStatements(models.MedicationStatements) {}
func (d *duplicateDetector) VisitEncounters(models.Encounters)                     {}
func (d *duplicateDetector) VisitAppointments(models.Appointments)                 {}
func (d *duplicateDetector) VisitServiceRequests(models.ServiceRequests)           {}
func (d *duplicateDetector) VisitChargeItems(models.ChargeItems)                   {}
func (d *duplicateDetector) VisitFileUploads(models.FileUploads)                   {}
func (d *duplicateDetector) VisitTimesOfDeath(models.TimesOfDeath)                 {}
