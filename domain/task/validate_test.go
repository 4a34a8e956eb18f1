package task

import (
	"errors"
	"strings"
	"testing"
	"time"
)

var validateNow = time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC)

// validTask returns a task that passes every rule relative to validateNow.
func validTask() *Task {
	return &Task{
		TaskID:   1,
		TaskName: "Write report",
		Status:   StatusPending,
		DueDate:  NewDueDate(time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC)),
		Duration: NewDuration(2 * secondsPerDay),
		Priority: 3,
	}
}

func mustValidationError(t *testing.T, err error) *ValidationError {
	t.Helper()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	return verr
}

func TestValidateAccepts(t *testing.T) {
	task := validTask()
	if err := task.validateAt(validateNow); err != nil {
		t.Fatalf("validateAt() error = %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Task)
		field  string
		kind   ErrorKind
	}{
		{"zero task id", func(tk *Task) { tk.TaskID = 0 }, "task_id", RangeViolation},
		{"empty name", func(tk *Task) { tk.TaskName = "" }, "task_name", RangeViolation},
		{"name too long", func(tk *Task) { tk.TaskName = strings.Repeat("x", 101) }, "task_name", RangeViolation},
		{"description too long", func(tk *Task) { tk.Description = strings.Repeat("x", 501) }, "description", RangeViolation},
		{"unknown status", func(tk *Task) { tk.Status = "archived" }, "status", RangeViolation},
		{"due date today", func(tk *Task) {
			tk.DueDate = NewDueDate(validateNow)
		}, "due_date", PastDate},
		{"due date in the past", func(tk *Task) {
			tk.DueDate = NewDueDate(validateNow.AddDate(0, 0, -1))
		}, "due_date", PastDate},
		{"unparseable due date", func(tk *Task) {
			tk.DueDate = DueDate{raw: "02/13/2025", invalid: true}
		}, "due_date", InvalidFormat},
		{"unparseable duration", func(tk *Task) {
			tk.Duration = Duration{raw: "soon", invalid: true}
		}, "duration", InvalidFormat},
		{"priority too low", func(tk *Task) { tk.Priority = 0 }, "priority", RangeViolation},
		{"priority too high", func(tk *Task) { tk.Priority = 6 }, "priority", RangeViolation},
		{"in-progress at lowest priority", func(tk *Task) {
			tk.Status = StatusInProgress
			tk.Priority = 1
		}, "priority", ConstraintViolation},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			task := validTask()
			tc.mutate(task)

			verr := mustValidationError(t, task.validateAt(validateNow))
			if !verr.Has(tc.kind) {
				t.Errorf("expected a %s violation, got %v", tc.kind, verr)
			}

			found := false
			for _, v := range verr.Violations {
				if v.Field == tc.field {
					found = true
				}
			}
			if !found {
				t.Errorf("expected a violation on %s, got %v", tc.field, verr)
			}
		})
	}
}

func TestValidateTomorrowPasses(t *testing.T) {
	task := validTask()
	task.DueDate = NewDueDate(validateNow.AddDate(0, 0, 1))
	if err := task.validateAt(validateNow); err != nil {
		t.Fatalf("validateAt() error = %v", err)
	}
}

func TestValidateInProgressPriorityBoundary(t *testing.T) {
	task := validTask()
	task.Status = StatusInProgress
	task.Priority = 2
	if err := task.validateAt(validateNow); err != nil {
		t.Fatalf("validateAt() error = %v", err)
	}
}

func TestValidateCollectsAllViolations(t *testing.T) {
	task := &Task{
		TaskID:   0,
		TaskName: "",
		Status:   "archived",
		DueDate:  NewDueDate(validateNow.AddDate(0, 0, -1)),
		Duration: Duration{raw: "soon", invalid: true},
		Priority: 0,
	}

	verr := mustValidationError(t, task.validateAt(validateNow))
	if len(verr.Violations) != 6 {
		t.Errorf("expected 6 violations, got %d: %v", len(verr.Violations), verr)
	}
}

func TestValidateDefaultsContainers(t *testing.T) {
	task := validTask()
	if err := task.validateAt(validateNow); err != nil {
		t.Fatalf("validateAt() error = %v", err)
	}

	if task.Labels == nil {
		t.Error("expected labels to be defaulted")
	}
	if task.ExtraMetadata == nil {
		t.Error("expected extra_metadata to be defaulted")
	}
	if task.Participants == nil {
		t.Error("expected participants to be defaulted")
	}
}
