// Package validation provides input validation utilities.
package validation

import (
	"weconnect/internal/models"
)

// Messages for the structural checks applied by Validate.
const (
	MsgRequired     = "required field"
	MsgEmpty        = "empty values not allowed"
	MsgUnknownField = "unknown field"
)

// CheckFunc inspects a field value and appends any errors it finds.
// Checks must be pure; store-dependent checks (uniqueness, existence)
// belong in the service layer.
type CheckFunc func(field, value string, errs models.FieldErrors)

// Field describes the constraints on a single payload field.
type Field struct {
	Required bool
	NonEmpty bool
	Check    CheckFunc
}

// Schema maps field names to their constraints.
type Schema map[string]Field

// Validate checks payload against schema and returns one message per
// failing field. An empty result means the payload is valid. Payload
// keys not declared in the schema are rejected, so clients cannot
// smuggle extra fields such as an id override.
func Validate(schema Schema, payload map[string]string) models.FieldErrors {
	errs := models.FieldErrors{}

	for name, field := range schema {
		value, present := payload[name]
		if !present {
			if field.Required {
				errs.Add(name, MsgRequired)
			}
			continue
		}
		if field.NonEmpty && value == "" {
			errs.Add(name, MsgEmpty)
			continue
		}
		if field.Check != nil {
			field.Check(name, value, errs)
		}
	}

	for name := range payload {
		if _, declared := schema[name]; !declared {
			errs.Add(name, MsgUnknownField)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
