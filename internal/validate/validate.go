// Package validate wraps go-playground/validator and reports failures as
// *types.ValidationError keyed by JSON field names.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"uprala/pkg/types"

	"github.com/go-playground/validator/v10"
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	val.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return val
}

// Struct validates input and returns nil or a *types.ValidationError.
func Struct(input any) error {
	err := v.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate input: %w", err)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldPath(fe)] = message(fe)
	}

	return types.NewValidationError("missing or invalid fields", fields)
}

// fieldPath drops the root struct name: "CreateEventInput.images[0].src" -> "images[0].src".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "required_without":
		return fmt.Sprintf("is required when %s is not set", lowerFirst(fe.Param()))
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	}
	return fmt.Sprintf("failed %s validation", fe.Tag())
}

func lowerFirst(s string) string {
	switch s {
	case "NGOID":
		return "ngoId"
	case "NGOName":
		return "ngoName"
	}
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
