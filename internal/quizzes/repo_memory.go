package quizzes

import (
	"context"
	"sort"
	"sync"
)

// MemoryResultsRepo is an in-memory implementation of ResultsRepo.
type MemoryResultsRepo struct {
	mu   sync.RWMutex
	data map[string][]Result // userId -> results
}

// NewMemoryResultsRepo constructs a MemoryResultsRepo.
func NewMemoryResultsRepo() *MemoryResultsRepo {
	return &MemoryResultsRepo{
		data: make(map[string][]Result),
	}
}

// Create stores a result for a user.
func (r *MemoryResultsRepo) Create(ctx context.Context, result Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[result.UserID] = append(r.data[result.UserID], result)
	return nil
}

// ListByUser returns the user's results ordered by creation time descending.
func (r *MemoryResultsRepo) ListByUser(ctx context.Context, userID string, limit int) ([]Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	stored := r.data[userID]
	r.mu.RUnlock()

	out := make([]Result, len(stored))
	copy(out, stored)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}
