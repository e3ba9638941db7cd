// Package validation wraps a single go-playground validator configured
// for the Student rules. Both the record service and the web front end
// validate through it, so a form that passes locally is judged by the
// same rules on the server.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is safe for concurrent use; building it once keeps the
// struct metadata cache warm across requests.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names ("email") instead of Go names ("Email").
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// required only rejects the zero value; notblank also rejects "   ".
	if err := v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	}); err != nil {
		panic(err)
	}

	return v
}

// Struct validates v and returns validator.ValidationErrors on failure.
func Struct(v any) error {
	return validate.Struct(v)
}

// Fields converts a validation error into a map of field name to a human
// readable message. It returns nil for errors that did not come from the
// validator.
func Fields(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	fields := make(map[string]string, len(verrs))
	for _, e := range verrs {
		// keep the first failure per field; required is checked before email
		if _, ok := fields[e.Field()]; ok {
			continue
		}
		fields[e.Field()] = Message(e)
	}
	return fields
}

// Message renders one field error.
func Message(e validator.FieldError) string {
	switch e.ActualTag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", e.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", e.Field())
	default:
		return fmt.Sprintf("%s is invalid", e.Field())
	}
}
