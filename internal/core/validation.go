// AngelaMos | 2026
// validation.go

package core

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var dottedName = regexp.MustCompile(`^[a-z0-9_-]+\.[a-z0-9_-]+$`)

// NewValidator returns a validator that reports fields by their JSON name
// and understands decimal amounts.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	//nolint:errcheck // tag name is static and valid
	_ = v.RegisterValidation("nonnegative", func(fl validator.FieldLevel) bool {
		switch val := fl.Field().Interface().(type) {
		case decimal.Decimal:
			return !val.IsNegative()
		case int:
			return val >= 0
		case int64:
			return val >= 0
		default:
			return false
		}
	})

	//nolint:errcheck // tag name is static and valid
	_ = v.RegisterValidation("dotted", func(fl validator.FieldLevel) bool {
		return dottedName.MatchString(fl.Field().String())
	})

	return v
}

// ValidationErrors converts validator output into client facing messages.
func ValidationErrors(err error) FieldErrors {
	fields := FieldErrors{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fields.Add("body", "The request body is invalid.")
		return fields
	}

	for _, fe := range verrs {
		fields.Add(fe.Field(), messageFor(fe))
	}

	return fields
}

func messageFor(fe validator.FieldError) string {
	name := humanize(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", name)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", name)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf(
				"The %s field must be at least %s characters.",
				name,
				fe.Param(),
			)
		}
		return fmt.Sprintf("The %s field must be at least %s.", name, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf(
				"The %s field must not be greater than %s characters.",
				name,
				fe.Param(),
			)
		}
		return fmt.Sprintf("The %s field must not be greater than %s.", name, fe.Param())
	case "gt":
		return fmt.Sprintf("The %s field must be greater than %s.", name, fe.Param())
	case "nonnegative":
		return fmt.Sprintf("The %s field must be at least 0.", name)
	case "dotted":
		return fmt.Sprintf("The %s field must look like resource.action.", name)
	case "url":
		return fmt.Sprintf("The %s field must be a valid URL.", name)
	default:
		return fmt.Sprintf("The %s field is invalid.", name)
	}
}
