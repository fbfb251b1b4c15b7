package helper

import (
	"fmt"

	"github.com/ScholarStream/scholarship_service/internal/domain"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func ValidateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%s: %w", FormatValidationErrors(err), domain.ErrInvalid)
	}
	return nil
}

// FormatValidationErrors flattens validator errors into one client-facing
// message.
func FormatValidationErrors(err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	var msg string
	for i, e := range validationErrors {
		if i > 0 {
			msg += "; "
		}
		switch e.Tag() {
		case "required":
			msg += e.Field() + " is required"
		case "email":
			msg += e.Field() + " must be a valid email"
		case "min":
			msg += e.Field() + " must be at least " + e.Param()
		case "max":
			msg += e.Field() + " must be at most " + e.Param()
		case "oneof":
			msg += e.Field() + " must be one of: " + e.Param()
		case "gte":
			msg += e.Field() + " must be at least " + e.Param()
		default:
			msg += e.Field() + " is invalid"
		}
	}
	return msg
}
