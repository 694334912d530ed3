package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared across calls; validator instances cache struct metadata.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct runs tag-based validation on an input struct and flattens the first
// violation into a readable error.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var invalid *validator.InvalidValidationError
	if ok := isInvalid(err, &invalid); ok {
		return err
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return err
	}
	first := errs[0]
	return fmt.Errorf("field %s failed on rule %q", fieldName(first), first.Tag())
}

func isInvalid(err error, target **validator.InvalidValidationError) bool {
	e, ok := err.(*validator.InvalidValidationError)
	if ok {
		*target = e
	}
	return ok
}

func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	if name == "" {
		return fe.StructField()
	}
	// lowerCamel to match the JSON surface
	return strings.ToLower(name[:1]) + name[1:]
}

// OneOf reports whether value is one of the allowed enum values. Empty values
// are accepted when optional is true.
func OneOf(value string, optional bool, allowed ...string) bool {
	if value == "" {
		return optional
	}
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}
