package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// IndustrySlugPlaceholder is the single substitution point of an audio naming convention.
const IndustrySlugPlaceholder = "{industry_slug}"

var phonePattern = regexp.MustCompile(`^\+?[\d\s\-\(\)]{10,}$`)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// NewValidator returns a validator with the "phone" and "naming_convention" tags registered.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return ValidatePhone(fl.Field().String())
	})
	_ = v.RegisterValidation("naming_convention", func(fl validator.FieldLevel) bool {
		return ValidateNamingConvention(fl.Field().String()) == nil
	})
	return v
}

// ValidateStruct runs v against s and converts failures into a ValidationResult.
func ValidateStruct(v *validator.Validate, s interface{}) *ValidationResult {
	err := v.Struct(s)
	if err == nil {
		return &ValidationResult{Valid: true}
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationResult{Errors: []ValidationError{{Message: err.Error(), Code: "INVALID"}}}
	}

	out := make([]ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, ValidationError{
			Field:   fieldPath(fe.Namespace()),
			Message: describe(fe),
			Code:    strings.ToUpper(fe.Tag()),
		})
	}
	return &ValidationResult{Errors: out}
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required field missing"
	case "min":
		return fmt.Sprintf("must have at least %s entries", fe.Param())
	case "phone":
		return "must be a phone number"
	case "naming_convention":
		return fmt.Sprintf("must contain %s exactly once", IndustrySlugPlaceholder)
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	default:
		return fmt.Sprintf("failed %q constraint", fe.Tag())
	}
}

// Err flattens the result into a single error, or nil when valid.
func (vr *ValidationResult) Err() error {
	if vr.Valid || len(vr.Errors) == 0 {
		return nil
	}
	return errors.New(strings.Join(vr.GetErrorMessages(), "; "))
}

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// HasErrors checks if validation has errors for specific field
func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field || strings.HasPrefix(err.Field, field+".") || strings.HasPrefix(err.Field, field+"[") {
			return true
		}
	}
	return false
}

// ValidateNamingConvention checks an audio file naming convention.
func ValidateNamingConvention(convention string) error {
	if strings.Count(convention, IndustrySlugPlaceholder) != 1 {
		return fmt.Errorf("naming convention must contain %s exactly once", IndustrySlugPlaceholder)
	}
	if strings.ContainsAny(convention, `/\`) {
		return fmt.Errorf("naming convention must be a file name, not a path")
	}
	return nil
}

// ValidatePhone validates basic phone number format
func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(phone)
}
