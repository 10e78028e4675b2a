package tasks

import "time"

// Task is a to-do item owned by one user.
type Task struct {
	ID        string     `json:"id"`
	UserID    string     `json:"-"`
	Text      string     `json:"text"`
	AIPrompt  string     `json:"aiPrompt,omitempty"`
	ImageURL  string     `json:"imageUrl,omitempty"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
	Completed bool       `json:"completed"`
	CreatedAt time.Time  `json:"createdAt"`
}
