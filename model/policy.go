package model

import "time"

const (
	TaskStatusPending   = "pending"
	TaskStatusCompleted = "completed"
)

// TaskTags classifies a task for display purposes.
type TaskTags struct {
	Overdue   bool `json:"overdue"`
	Important bool `json:"important"`
	Completed bool `json:"completed"`
}

// ClassifyTask derives the display tags for a task. A task is overdue when
// its due date has passed and it is not completed.
func ClassifyTask(t Task, now time.Time) TaskTags {
	completed := t.Status == TaskStatusCompleted
	overdue := false
	if t.DueDate != nil && !completed {
		overdue = t.DueDate.Before(now)
	}
	return TaskTags{
		Overdue:   overdue,
		Important: t.Important,
		Completed: completed,
	}
}

// CanEditTask reports whether the actor may modify the task. Only the task
// author can edit it.
func CanEditTask(t Task, actorID uint) bool {
	return t.AuthorID == actorID
}
