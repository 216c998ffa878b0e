package usecase

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs the validate tags on an input DTO and flattens the
// result into field errors suitable for a 400 response body.
func ValidateStruct(s interface{}) []FieldError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fields []FieldError
	for _, verr := range err.(validator.ValidationErrors) {
		field := strings.ToLower(verr.Field())
		fields = append(fields, FieldError{Field: field, Message: messageForTag(verr)})
	}
	return fields
}

func messageForTag(verr validator.FieldError) string {
	switch verr.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return "must be at least " + verr.Param() + " characters"
	case "max":
		return "must be at most " + verr.Param() + " characters"
	case "gte":
		return "must be at least " + verr.Param()
	case "lte":
		return "must be at most " + verr.Param()
	case "oneof":
		return "must be one of " + verr.Param()
	default:
		return "is invalid"
	}
}

// ValidateEmail checks a single address outside of a tagged struct (patches).
func ValidateEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}
