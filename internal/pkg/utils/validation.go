package utils

import (
	"carecapture-service/internal/app/models"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("structured_type", validateStructuredType)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// ValidateVar runs a single validator tag expression against a value.
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}

func validateStructuredType(fl validator.FieldLevel) bool {
	return models.StructuredType(fl.Field().String()).IsValid()
}

func ValidateUrlParamID(param string) error {
	if param == "" {
		return errors.New("parameter is missing from url path")
	}

	_, err := uuid.Parse(param)
	if err != nil {
		return err
	}

	return nil
}

func ValidateUrlParam(param string) error {
	if param == "" {
		return errors.New("parameter is missing from url path")
	}
	return nil
}
