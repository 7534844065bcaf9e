package schemas

import (
	"fmt"
	"strings"

	"github.com/FireFly4ik/db-kr-1/logging"
)

// FieldError describes a single violated constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates every constraint violated by one input.
type ValidationError struct {
	Fields []FieldError
}

// Error renders the per-field messages joined by newlines, so the whole
// aggregate reads as one message per line at the UI boundary.
func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "\n")
}

// add records a violation and reports it to the validation log channel.
// Logging observes the failure only; it never changes the outcome.
func (e *ValidationError) add(field string, value any, message string) {
	logValidationFailure(field, value, message)
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// orNil collapses an empty aggregate to a nil error.
func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func logValidationFailure(field string, value any, message string) {
	repr := fmt.Sprintf("%#v", value)
	if len(repr) > 100 {
		repr = repr[:100] + "..."
	}
	logging.Named("validation").Error("validation error for field '%s': %s; invalid value: %s", field, message, repr)
}
