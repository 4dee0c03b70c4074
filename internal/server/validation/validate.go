// Package validation wraps go-playground/validator so handlers get
// per-field message maps instead of the library's error type.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hmori/flashcards/internal/common"
)

// Validator checks request structs against their `validate` tags.
type Validator struct {
	v *validator.Validate
}

// New constructs a Validator. Field names in error messages come from the
// struct's json tags, matching what the client actually sent.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return &Validator{v: v}
}

// Struct validates s and returns nil or a common.FieldErrors with one or more
// messages per failing field.
func (va *Validator) Struct(s any) error {
	err := va.v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fieldErrors := common.FieldErrors{}
	for _, fe := range verrs {
		fieldErrors.Add(fe.Field(), message(fe))
	}
	return fieldErrors
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", fe.Field())
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", fe.Field())
	case "min":
		return fmt.Sprintf("The %s must be at least %s characters.", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("The %s may not be greater than %s characters.", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("The %s is invalid.", fe.Field())
	}
}
