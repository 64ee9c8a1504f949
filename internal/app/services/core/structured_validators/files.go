package structuredValidators

import (
	"carecapture-service/internal/app/models"
	"strings"
)

func ValidateFileUploads(questionID string, items models.FileUploads) []models.QuestionValidationError {
	var errs []models.QuestionValidationError
	for i, file := range items {
		if file.FileData.IsEmpty() {
			errs = append(errs, fieldError(questionID, "file_data", i, MessageFileRequired))
		}
		if strings.TrimSpace(file.Name) == "" {
			errs = append(errs, fieldError(questionID, "name", i, MessageRequired))
		}
		if strings.TrimSpace(file.OriginalName) == "" {
			errs = append(errs, fieldError(questionID, "original_name", i, MessageRequired))
		}
	}
	return errs
}
