package model

import "time"

const (
	TaskPending   = "Pending"
	TaskCompleted = "Completed"
	TaskMissed    = "Missed"
)

// Task is a scheduled skill execution for a caregiver. Reason is non-empty
// only while the status is Missed.
type Task struct {
	ID        string    `json:"id"`
	Caretaker string    `json:"caretaker"`
	Caregiver string    `json:"caregiver"`
	Task      string    `json:"task"`
	Skill     string    `json:"skill"`
	Time      string    `json:"time"`
	Status    string    `json:"status"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}
