package task

// Task is a task as submitted by a client, prior to persistence. The
// DueDate and Duration fields accept the textual wire forms during JSON
// decoding; Validate reports any format problems together with every other
// violated constraint.
type Task struct {
	TaskID        uint       `json:"task_id"`
	TaskName      string     `json:"task_name"`
	Description   string     `json:"description"`
	Status        Status     `json:"status"`
	DueDate       DueDate    `json:"due_date"`
	Duration      Duration   `json:"duration"`
	Priority      int        `json:"priority"`
	Labels        StringSet  `json:"labels"`
	ExtraMetadata StringMap  `json:"extra_metadata"`
	Participants  StringList `json:"participants"`
	IsUrgent      bool       `json:"is_urgent"`
}
