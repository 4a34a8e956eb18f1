package task

import "time"

// TaskRecord is the persisted representation of a task. It mirrors the
// Task input shape, adds the server-assigned created_at timestamp, and
// stores the duration as its rendered text form.
type TaskRecord struct {
	TaskID        uint       `gorm:"primaryKey" json:"task_id"`
	TaskName      string     `gorm:"size:100;not null" json:"task_name"`
	Description   string     `gorm:"size:500" json:"description"`
	Status        Status     `gorm:"size:20;not null" json:"status"`
	DueDate       time.Time  `gorm:"not null" json:"due_date"`
	CreatedAt     time.Time  `json:"created_at"`
	Duration      string     `gorm:"size:64;not null" json:"duration"`
	Priority      int        `gorm:"not null" json:"priority"`
	Labels        StringSet  `gorm:"type:text" json:"labels"`
	ExtraMetadata StringMap  `gorm:"type:text" json:"extra_metadata"`
	Participants  StringList `gorm:"type:text" json:"participants"`
	IsUrgent      bool       `gorm:"not null;default:false" json:"is_urgent"`
}

// TableName returns the table name for the TaskRecord model.
func (TaskRecord) TableName() string {
	return "tasks"
}

// NewRecord builds a TaskRecord from a validated Task, stamping created_at
// and rendering the duration to its stored text form.
func NewRecord(t *Task, createdAt time.Time) *TaskRecord {
	return &TaskRecord{
		TaskID:        t.TaskID,
		TaskName:      t.TaskName,
		Description:   t.Description,
		Status:        t.Status,
		DueDate:       t.DueDate.Time,
		CreatedAt:     createdAt,
		Duration:      t.Duration.String(),
		Priority:      t.Priority,
		Labels:        t.Labels,
		ExtraMetadata: t.ExtraMetadata,
		Participants:  t.Participants,
		IsUrgent:      t.IsUrgent,
	}
}
