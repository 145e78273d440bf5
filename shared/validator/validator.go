package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"hotel/shared/failure"
	"io"
	"reflect"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

// Violation is a single failed rule on a single field.
type Violation struct {
	Field   string
	Tag     string
	Param   string
	Message string
}

func registerNotBlankValidation(field val.FieldLevel) bool {
	if str, ok := field.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}

	return !field.Field().IsZero()
}

func registerDigitsValidation(field val.FieldLevel) bool {
	str, ok := field.Field().Interface().(string)
	if !ok || str == "" {
		return false
	}

	for _, r := range str {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

func jsonTagName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}

	if name == "" {
		return field.Name
	}

	return name
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonTagName)

	err := validate.RegisterValidation("empty", func(fl val.FieldLevel) bool {
		empty := fl.Field().IsZero()

		return empty
	})

	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("notblank", registerNotBlankValidation)
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("digits", registerDigitsValidation)
	if err != nil {
		panic(err)
	}
}

// Decode reads a JSON body from the given io.Reader into data without validating it.
func Decode[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return nil
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	if err := Decode(r, data); err != nil {
		return err
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

// Violations validates data and returns every failed rule, in struct field order.
// Field names follow the json tags of the struct.
func Violations(data any) []Violation {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) {
		return []Violation{{Message: err.Error()}}
	}

	violations := make([]Violation, 0, len(valErrors))
	for _, valErr := range valErrors {
		violations = append(violations, Violation{
			Field:   valErr.Field(),
			Tag:     valErr.Tag(),
			Param:   valErr.Param(),
			Message: render(valErr),
		})
	}

	return violations
}
