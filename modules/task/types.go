package task

import (
	"time"

	taskdomain "github.com/example/task-service/domain/task"
)

// TaskResponse is the wire representation of a stored task. Dates are
// rendered as ISO calendar days and durations in their "D days, H:MM:SS"
// text form. Container fields are always present, never null.
type TaskResponse struct {
	TaskID        uint              `json:"task_id"`
	TaskName      string            `json:"task_name"`
	Description   string            `json:"description"`
	Status        string            `json:"status"`
	DueDate       string            `json:"due_date"`
	CreatedAt     time.Time         `json:"created_at"`
	Duration      string            `json:"duration"`
	Priority      int               `json:"priority"`
	Labels        []string          `json:"labels"`
	ExtraMetadata map[string]string `json:"extra_metadata"`
	Participants  []string          `json:"participants"`
	IsUrgent      bool              `json:"is_urgent"`
}

// NewTaskResponse builds a response from a stored record.
func NewTaskResponse(rec *taskdomain.TaskRecord) TaskResponse {
	labels := rec.Labels
	if labels == nil {
		labels = taskdomain.StringSet{}
	}
	metadata := rec.ExtraMetadata
	if metadata == nil {
		metadata = taskdomain.StringMap{}
	}
	participants := rec.Participants
	if participants == nil {
		participants = taskdomain.StringList{}
	}

	return TaskResponse{
		TaskID:        rec.TaskID,
		TaskName:      rec.TaskName,
		Description:   rec.Description,
		Status:        string(rec.Status),
		DueDate:       rec.DueDate.Format("2006-01-02"),
		CreatedAt:     rec.CreatedAt,
		Duration:      rec.Duration,
		Priority:      rec.Priority,
		Labels:        labels,
		ExtraMetadata: metadata,
		Participants:  participants,
		IsUrgent:      rec.IsUrgent,
	}
}

// ListTasksResponse wraps a page of task responses.
type ListTasksResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Total int            `json:"total"`
}

// NewListTasksResponse builds a list response from stored records.
func NewListTasksResponse(recs []taskdomain.TaskRecord) ListTasksResponse {
	tasks := make([]TaskResponse, 0, len(recs))
	for i := range recs {
		tasks = append(tasks, NewTaskResponse(&recs[i]))
	}
	return ListTasksResponse{
		Tasks: tasks,
		Total: len(tasks),
	}
}
