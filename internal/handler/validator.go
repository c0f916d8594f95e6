package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/dafibh/mandataire/mandataire-backend/internal/domain"
	"github.com/go-playground/validator/v10"
)

// RequestValidator implements echo.Validator on top of go-playground/validator.
// Field names in errors are the JSON names of the request DTO.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator creates a RequestValidator
func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &RequestValidator{validate: v}
}

// Validate validates a request DTO
func (v *RequestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// fieldErrors converts validator failures into problem-detail field errors
func fieldErrors(err error) []ValidationError {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil
	}

	result := make([]ValidationError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		result = append(result, ValidationError{
			Field:   fe.Field(),
			Message: tagMessage(fe),
		})
	}
	return result
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Is required"
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "len":
		return fmt.Sprintf("Must be exactly %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", fe.Param())
	case "uuid":
		return "Must be a valid UUID"
	default:
		return fmt.Sprintf("Failed the %q rule", fe.Tag())
	}
}

// domainFieldError maps a domain validation error onto the request field it concerns
func domainFieldError(err error) (ValidationError, bool) {
	switch {
	case errors.Is(err, domain.ErrNameRequired):
		return ValidationError{Field: "name", Message: "Name is required"}, true
	case errors.Is(err, domain.ErrNameTooLong):
		return ValidationError{Field: "name", Message: fmt.Sprintf("Name must be %d characters or less", domain.MaxNameLength)}, true
	case errors.Is(err, domain.ErrPhoneRequired):
		return ValidationError{Field: "phone", Message: "Phone is required"}, true
	case errors.Is(err, domain.ErrInvalidPhone):
		return ValidationError{Field: "phone", Message: "Must be a valid phone number"}, true
	case errors.Is(err, domain.ErrInvalidAmount):
		return ValidationError{Field: "amountCents", Message: "Must be a non-negative integer"}, true
	case errors.Is(err, domain.ErrInvalidCurrency):
		return ValidationError{Field: "currency", Message: "Must be a 3-letter ISO code"}, true
	case errors.Is(err, domain.ErrOccurredAtNeeded):
		return ValidationError{Field: "occurredAt", Message: "Is required"}, true
	case errors.Is(err, domain.ErrInvalidRate):
		return ValidationError{Field: "commissionRatePercent", Message: "Must be between 0 and 100 with at most 2 decimals"}, true
	case errors.Is(err, domain.ErrInvalidOverride):
		return ValidationError{Field: "commissionAmountCentsOverride", Message: "Must be a non-negative integer"}, true
	case errors.Is(err, domain.ErrInvalidSplit):
		return ValidationError{Field: "splitRatio", Message: "Must be between 0 and 1 with at most 4 decimals"}, true
	case errors.Is(err, domain.ErrClientNotFound):
		return ValidationError{Field: "clientId", Message: "Client does not exist"}, true
	case errors.Is(err, domain.ErrServiceNotFound):
		return ValidationError{Field: "serviceId", Message: "Service does not exist"}, true
	case errors.Is(err, domain.ErrInvalidInput):
		return ValidationError{Field: "body", Message: err.Error()}, true
	}
	return ValidationError{}, false
}
