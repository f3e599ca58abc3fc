package service

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// checkInput validates the struct and translates violations into the
// per-field error list. All violated rules are reported, never only the
// first.
func checkInput(input any) *Error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	violations, ok := err.(validator.ValidationErrors)
	if !ok {
		return newBadRequestError("Client error")
	}

	fields := make([]FieldError, 0, len(violations))
	for _, violation := range violations {
		fields = append(fields, FieldError{
			Field:   violation.Field(),
			Message: fieldMessage(violation),
		})
	}
	return newValidationError(fields...)
}

func fieldMessage(violation validator.FieldError) string {
	switch violation.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return fmt.Sprintf("Ensure this field has at least %s characters.", violation.Param())
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", violation.Param())
	default:
		return "This field is invalid."
	}
}
