package models

import "time"

// Task is one ceremony request. ID is assigned at creation and never reused;
// Parameters is the raw JSON payload submitted by the client and is immutable
// after creation. Only Status changes over the task's lifetime:
//
//	created -> processing -> completed | failed | canceled
type Task struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Parameters string    `json:"parameters"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	CreatedBy  string    `json:"created_by"`
}
