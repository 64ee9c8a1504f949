package exceptions

import (
	"carecapture-service/internal/pkg/constvars"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FormatValidationTag renders the client message for a single validator tag.
func FormatValidationTag(tag, param string) string {
	customMessage, ok := constvars.CustomValidationErrorMessages[tag]
	if !ok {
		return "is invalid"
	}
	if constvars.TagsWithParams[tag] {
		if tag == "oneof" {
			return strings.Replace(customMessage, "%s", strings.Join(strings.Fields(param), ", "), 1)
		}
		return strings.Replace(customMessage, "%s", param, 1)
	}
	return customMessage
}

func FormatAllValidationErrors(err error) string {
	var validationErrors validator.ValidationErrors
	if err == nil || !errors.As(err, &validationErrors) {
		return constvars.ErrClientCannotProcessRequest
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		fieldName := strings.ToLower(fieldErr.Field())
		messages = append(messages, fieldName+" "+FormatValidationTag(fieldErr.Tag(), fieldErr.Param()))
	}
	return strings.Join(messages, ", ")
}

func FormatFirstValidationError(err error) string {
	if err == nil {
		return constvars.ErrClientCannotProcessRequest
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		firstErr := validationErrors[0]
		fieldName := strings.ToLower(firstErr.Field())
		return fieldName + " " + FormatValidationTag(firstErr.Tag(), firstErr.Param())
	}
	return constvars.ErrDevInvalidInput
}
