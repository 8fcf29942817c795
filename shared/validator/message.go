package validator

import (
	"errors"
	"fmt"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var (
	messages = map[string]string{
		"required": "{field} is required",
		"gte":      "{field} must be greater than or equal to {param}",
		"lte":      "{field} must be less than or equal to {param}",
		"oneof":    "{field} must be one of {param}",
		"max":      "{field} must be less than or equal to {param}",
		"min":      "{field} must be greater than or equal to {param}",
		"email":    "{field} must be a valid email address",
		"season":   "{field} must be one of low mid high peak",
		"day":      "{field} must be a date formatted as YYYY-MM-DD",
		"gtfield":  "{field} must be after {param}",
		"url":      "{field} must be a valid URL",

		"required_without": "{field} is required when {param} is empty",
	}
)

// message renders every failed field, joined with "; ", so a client can fix a body in one round trip.
func message(err error) string {
	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) {
		return err.Error()
	}

	msgs := make([]string, 0, len(valErrors))

	for _, valErr := range valErrors {
		template, ok := messages[valErr.Tag()]
		if !ok {
			msgs = append(msgs, fmt.Sprintf("%s failed on %s", valErr.Field(), valErr.Tag()))

			continue
		}

		msgs = append(msgs, strings.NewReplacer("{field}", valErr.Field(), "{param}", valErr.Param()).Replace(template))
	}

	return strings.Join(msgs, "; ")
}
