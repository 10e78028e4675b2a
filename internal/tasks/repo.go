package tasks

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a task does not exist for the user.
var ErrNotFound = errors.New("task not found")

// Repo abstracts task persistence.
type Repo interface {
	Create(ctx context.Context, task Task) error
	ListByUser(ctx context.Context, userID string) ([]Task, error)
	GetByID(ctx context.Context, userID, taskID string) (Task, error)
	Update(ctx context.Context, task Task) error
	Delete(ctx context.Context, userID, taskID string) error
}
