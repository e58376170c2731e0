package checkout

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError carries the first rule the input broke.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(msg string) error { return &ValidationError{Message: msg} }

// IsValidation reports whether err is a user input error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

var fieldLabels = map[string]string{
	"first_name": "First name",
	"last_name":  "Last name",
	"email":      "Email",
	"phone":      "Phone number",
	"street":     "Street address",
	"city":       "City",
	"state":      "State",
	"zip":        "PIN code",
}

var ruleMessages = map[string]string{
	"phone": "Phone number must be exactly 10 digits",
	"zip":   "PIN code must be exactly 6 digits",
	"email": "Please enter a valid email address",
}

// firstViolation turns validator output into a single message.
func firstViolation(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return err
	}
	fe := errs[0]
	field := fe.Field()
	if fe.Tag() == "required" || fe.Tag() == "required_if" {
		label, ok := fieldLabels[field]
		if !ok {
			label = field
		}
		return invalid(label + " is required")
	}
	if msg, ok := ruleMessages[field]; ok {
		return invalid(msg)
	}
	return invalid(field + " is invalid")
}
