// struct.go applies declarative validate tags to operation inputs.
//
// Required-field checks are expressed as struct tags so every operation
// declares its preconditions next to its inputs. Limits that come from
// configuration (name and path length) are checked by Name and FilePath
// instead, because tags are fixed at compile time.

package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their json name so errors match CLI and MCP arguments.
	val.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// Whitespace-only strings are as meaningless as empty ones.
	_ = val.RegisterValidation("nonempty", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return val
}

// Struct validates s against its validate tags. The first failing field is
// returned as *Error.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validate input: %w", err)
	}

	fe := fieldErrs[0]
	return fail(fe.Field(), cause(fe))
}

func cause(fe validator.FieldError) error {
	switch fe.Tag() {
	case "required", "nonempty":
		return ErrRequired
	case "gt", "gte":
		return ErrInvalidID
	case "max":
		return ErrTooLong
	default:
		return fmt.Errorf("failed %q rule", fe.Tag())
	}
}
