package bookmarks

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]Bookmark // userId -> bookmarks
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string][]Bookmark),
	}
}

// Create stores a bookmark for a user.
func (r *MemoryRepo) Create(ctx context.Context, bookmark Bookmark) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[bookmark.UserID] = append(r.data[bookmark.UserID], bookmark)
	return nil
}

// ListByUser returns the user's bookmarks, newest first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Bookmark, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	stored := r.data[userID]
	r.mu.RUnlock()

	out := make([]Bookmark, len(stored))
	copy(out, stored)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Delete removes a bookmark.
func (r *MemoryRepo) Delete(ctx context.Context, userID, bookmarkID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := r.data[userID]
	for i := range stored {
		if stored[i].ID == bookmarkID {
			r.data[userID] = append(stored[:i], stored[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
