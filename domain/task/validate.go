package task

import (
	"fmt"
	"time"
)

const (
	maxNameLength        = 100
	maxDescriptionLength = 500
	minPriority          = 1
	maxPriority          = 5
	// In-progress tasks may not sit at the lowest priority.
	minInProgressPriority = 2
)

// Validate checks every schema constraint in a single pass over the fully
// decoded task, so cross-field rules always see their sibling fields. It
// returns a *ValidationError enumerating all violations, or nil. Absent
// collection fields are defaulted to empty containers.
func (t *Task) Validate() error {
	return t.validateAt(time.Now())
}

func (t *Task) validateAt(now time.Time) error {
	var violations []FieldError
	add := func(field string, kind ErrorKind, format string, args ...any) {
		violations = append(violations, FieldError{
			Field:   field,
			Kind:    kind,
			Message: fmt.Sprintf(format, args...),
		})
	}

	if t.TaskID < 1 {
		add("task_id", RangeViolation, "must be at least 1")
	}

	if n := len(t.TaskName); n < 1 || n > maxNameLength {
		add("task_name", RangeViolation, "must be between 1 and %d characters", maxNameLength)
	}

	if len(t.Description) > maxDescriptionLength {
		add("description", RangeViolation, "must be at most %d characters", maxDescriptionLength)
	}

	if !t.Status.Valid() {
		add("status", RangeViolation, "must be one of %q, %q, %q",
			StatusPending, StatusInProgress, StatusCompleted)
	}

	switch {
	case t.DueDate.invalid:
		add("due_date", InvalidFormat, "invalid date format %q, expected dd/mm/yyyy", t.DueDate.raw)
	case !t.DueDate.afterDay(now):
		add("due_date", PastDate, "must be strictly in the future")
	}

	if t.Duration.invalid {
		add("duration", InvalidFormat, "invalid duration format %q, expected \"<days> days, H:MM:SS\"", t.Duration.raw)
	}

	if t.Priority < minPriority || t.Priority > maxPriority {
		add("priority", RangeViolation, "must be between %d and %d", minPriority, maxPriority)
	} else if t.Status == StatusInProgress && t.Priority < minInProgressPriority {
		add("priority", ConstraintViolation, "must be at least %d for in-progress tasks", minInProgressPriority)
	}

	if t.Labels == nil {
		t.Labels = StringSet{}
	}
	if t.ExtraMetadata == nil {
		t.ExtraMetadata = StringMap{}
	}
	if t.Participants == nil {
		t.Participants = StringList{}
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}
