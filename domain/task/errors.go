package task

import (
	"errors"
	"strings"
)

// ErrDuplicateID is returned when creating a task whose task_id is already
// taken.
var ErrDuplicateID = errors.New("task id already exists")

// ErrorKind classifies a single validation failure.
type ErrorKind string

const (
	// InvalidFormat marks unparseable date or duration text.
	InvalidFormat ErrorKind = "invalid_format"
	// PastDate marks a due date that is not strictly in the future.
	PastDate ErrorKind = "past_date"
	// RangeViolation marks an out-of-bounds numeric or length field.
	RangeViolation ErrorKind = "range_violation"
	// ConstraintViolation marks a violated cross-field rule.
	ConstraintViolation ErrorKind = "constraint_violation"
)

// FieldError is one violated constraint on one field.
type FieldError struct {
	Field   string    `json:"field"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationError rejects a task input as a whole and enumerates every
// violated constraint. There is no partial acceptance.
type ValidationError struct {
	Violations []FieldError `json:"violations"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Error())
	}
	return "invalid task: " + strings.Join(msgs, "; ")
}

// Has reports whether any violation of the given kind was recorded.
func (e *ValidationError) Has(kind ErrorKind) bool {
	for _, v := range e.Violations {
		if v.Kind == kind {
			return true
		}
	}
	return false
}
