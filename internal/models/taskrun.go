package models

import "time"

// TaskRun is one audit-trail document: the outcome of a single task
// execution as recorded by the runner.
type TaskRun struct {
	ID         string    `json:"id"`
	TaskType   string    `json:"taskType"`
	Status     string    `json:"status"` // "completed" | "failed"
	ErrorCode  string    `json:"errorCode,omitempty"`
	DurationMS int64     `json:"durationMs"`
	Timestamp  time.Time `json:"timestamp"`
}

const (
	TaskRunCompleted = "completed"
	TaskRunFailed    = "failed"
)
