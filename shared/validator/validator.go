package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"slices"
	"staysync/shared/constant"
	"staysync/shared/failure"
	"strings"
	"time"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

var seasons = []string{"low", "mid", "high", "peak"}

func seasonValidation(field val.FieldLevel) bool {
	if field.Field().Kind() != reflect.String {
		return false
	}

	return slices.Contains(seasons, field.Field().String())
}

func dayValidation(field val.FieldLevel) bool {
	if field.Field().Kind() != reflect.String {
		return false
	}

	_, err := time.Parse(constant.DayFormat, field.Field().String())

	return err == nil
}

// jsonName reports fields by their wire name so messages match the request body.
func jsonName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")

	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	default:
		return name
	}
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonName)

	for tag, fn := range map[string]val.Func{
		"season": seasonValidation,
		"day":    dayValidation,
	} {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
}

// Validate decodes a JSON request body into data and validates it. Decode and validation
// failures are both reported as bad requests.
func Validate[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	if err := validate.Var(field, tag); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}
