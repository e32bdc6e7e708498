package validator

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError maps request fields (JSON names) to human messages.
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e.Errors[field]))
	}
	return "Validation failed: " + strings.Join(parts, "; ")
}

// Validator оборачивает go-playground/validator и отдаёт ошибки по JSON-именам полей.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(jsonFieldName)

	if err := registerCustomRules(v); err != nil {
		// ошибка времени запуска, дальше работать нельзя
		panic(err)
	}

	return &Validator{validate: v}
}

// Validate returns *ValidationError for rule violations and the raw error for
// anything else (e.g. passing a non-struct).
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	out := make(map[string]string, len(fieldErrors))
	for _, fe := range fieldErrors {
		out[fieldPath(fe)] = message(fe)
	}
	return &ValidationError{Errors: out}
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// fieldPath drops the root struct name so nested fields read "steps[0].title".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

var fixedMessages = map[string]string{
	"required":  "This field is required",
	"email":     "Must be a valid email address",
	"url":       "Must be a valid URL",
	"uuid":      "Must be a valid UUID",
	"step-key":  "Must be a known workflow step",
	"not-blank": "Must not be blank",
}

func message(fe validator.FieldError) string {
	if msg, ok := fixedMessages[fe.Tag()]; ok {
		return msg
	}

	// для чисел единиц нет
	unit := ""
	switch fe.Kind() {
	case reflect.String:
		unit = " characters long"
	case reflect.Slice, reflect.Map, reflect.Array:
		unit = " items long"
	}

	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("Must be at least %s%s", fe.Param(), unit)
	case "max":
		return fmt.Sprintf("Must be at most %s%s", fe.Param(), unit)
	case "len":
		return fmt.Sprintf("Must be exactly %s%s", fe.Param(), unit)
	case "oneof":
		return "Must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return fmt.Sprintf("Invalid value (failed on '%s')", fe.Tag())
	}
}
