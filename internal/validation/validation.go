// Package validation registers the request rules shared by the HTTP handlers
// and turns binding failures into per-field messages.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"
)

// Register installs the decimal rules (dgt, dgte, dlte, dplaces) and notblank
// on v and makes field errors report JSON names.
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonFieldName)
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

	rules := map[string]validator.Func{
		"dgt":  decimalRule(func(d, bound decimal.Decimal) bool { return d.GreaterThan(bound) }),
		"dgte": decimalRule(func(d, bound decimal.Decimal) bool { return d.GreaterThanOrEqual(bound) }),
		"dlte": decimalRule(func(d, bound decimal.Decimal) bool { return d.LessThanOrEqual(bound) }),

		"dplaces":  decimalPlaces,
		"notblank": validators.NotBlank,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s validation: %w", tag, err)
		}
	}
	return nil
}

// RegisterWithGin installs the rules on gin's default binding validator.
func RegisterWithGin() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding validator is not go-playground/validator")
	}
	return Register(v)
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

// decimalValue lets the validator treat a decimal as its canonical string.
func decimalValue(v reflect.Value) interface{} {
	d, ok := v.Interface().(decimal.Decimal)
	if !ok {
		return nil
	}
	return d.String()
}

func decimalRule(compare func(d, bound decimal.Decimal) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		d, err := decimal.NewFromString(value)
		if err != nil {
			return false
		}
		bound, err := decimal.NewFromString(fl.Param())
		if err != nil {
			return false
		}
		return compare(d, bound)
	}
}

// decimalPlaces rejects values with more fractional digits than the param.
func decimalPlaces(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return false
	}
	places, err := strconv.ParseInt(fl.Param(), 10, 32)
	if err != nil {
		return false
	}
	return d.Equal(d.Round(int32(places)))
}

// FieldErrors converts a binding error into {"field": ["message"]}. Errors
// that carry no field information are reported under "non_field_errors".
func FieldErrors(err error) map[string][]string {
	fields := make(map[string][]string)

	var validationErrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError

	switch {
	case errors.As(err, &validationErrs):
		for _, fe := range validationErrs {
			name := fe.Field()
			fields[name] = append(fields[name], message(fe))
		}
	case errors.As(err, &typeErr):
		name := typeErr.Field
		if name == "" {
			name = "non_field_errors"
		}
		fields[name] = append(fields[name], typeMessage(typeErr.Type))
	case errors.Is(err, io.EOF):
		fields["non_field_errors"] = []string{"No data provided."}
	case errors.As(err, &syntaxErr):
		fields["non_field_errors"] = []string{"JSON parse error."}
	default:
		fields["non_field_errors"] = []string{err.Error()}
	}
	return fields
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "notblank":
		return "This field may not be blank."
	case "dplaces":
		return fmt.Sprintf("Ensure that there are no more than %s decimal places.", fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "gt", "dgt":
		return fmt.Sprintf("Ensure this value is greater than %s.", fe.Param())
	case "gte", "dgte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "lte", "dlte":
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "uuid":
		return "Must be a valid UUID."
	}
	return fmt.Sprintf("Failed on the %q rule.", fe.Tag())
}

func typeMessage(t reflect.Type) string {
	if t == nil {
		return "Invalid value."
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "A valid integer is required."
	case reflect.String:
		return "Not a valid string."
	}
	return "Invalid value."
}
