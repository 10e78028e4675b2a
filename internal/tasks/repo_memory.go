package tasks

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]Task // userId -> tasks
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string][]Task),
	}
}

// Create stores a task for a user.
func (r *MemoryRepo) Create(ctx context.Context, task Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[task.UserID] = append(r.data[task.UserID], task)
	return nil
}

// ListByUser returns the user's tasks, newest first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	userTasks := r.data[userID]
	r.mu.RUnlock()

	out := make([]Task, len(userTasks))
	copy(out, userTasks)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// GetByID returns a task by ID for a user.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, taskID string) (Task, error) {
	if err := ctx.Err(); err != nil {
		return Task{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.data[userID] {
		if t.ID == taskID {
			return t, nil
		}
	}
	return Task{}, ErrNotFound
}

// Update replaces a stored task.
func (r *MemoryRepo) Update(ctx context.Context, task Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	userTasks := r.data[task.UserID]
	for i := range userTasks {
		if userTasks[i].ID == task.ID {
			userTasks[i] = task
			r.data[task.UserID] = userTasks
			return nil
		}
	}
	return ErrNotFound
}

// Delete removes a task.
func (r *MemoryRepo) Delete(ctx context.Context, userID, taskID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	userTasks := r.data[userID]
	for i := range userTasks {
		if userTasks[i].ID == taskID {
			r.data[userID] = append(userTasks[:i], userTasks[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
