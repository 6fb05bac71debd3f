// internal/utils/validator.go
package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("size_label", validateSizeLabel)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// Size labels are short free-form tags like "S", "M", "XL" or "42".
var sizeLabelPattern = regexp.MustCompile(`^[a-zA-Z0-9/.\- ]{1,20}$`)

func validateSizeLabel(fl validator.FieldLevel) bool {
	return sizeLabelPattern.MatchString(fl.Field().String())
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "size_label":
		return "Size must be a short label like S, M, XL or 42"
	default:
		return e.Field() + " is invalid"
	}
}
