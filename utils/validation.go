package utils

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// ValidationError is a client-caused failure: missing or malformed input.
type ValidationError struct {
	Fields  []string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidateStruct runs the struct's validate tags and reports every failing field at once.
func ValidateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Message: err.Error(), Err: err}
	}

	seen := map[string]bool{}
	var missing, invalid []string
	for _, fe := range verrs {
		name := fe.Field()
		if seen[name] {
			continue
		}
		seen[name] = true
		switch fe.Tag() {
		case "required", "min":
			missing = append(missing, name)
		default:
			invalid = append(invalid, name)
		}
	}
	sort.Strings(missing)
	sort.Strings(invalid)

	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "missing required fields: "+strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		parts = append(parts, "invalid fields: "+strings.Join(invalid, ", "))
	}
	return &ValidationError{
		Fields:  append(missing, invalid...),
		Message: strings.Join(parts, "; "),
		Err:     err,
	}
}
