package learningpaths

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]Path // userId -> paths
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string][]Path),
	}
}

// Create stores a path for a user.
func (r *MemoryRepo) Create(ctx context.Context, path Path) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[path.UserID] = append(r.data[path.UserID], clonePath(path))
	return nil
}

// ListByUser returns the user's paths, newest first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Path, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	stored := r.data[userID]
	r.mu.RUnlock()

	out := make([]Path, 0, len(stored))
	for _, p := range stored {
		out = append(out, clonePath(p))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// GetByID returns a path by ID for a user.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, pathID string) (Path, error) {
	if err := ctx.Err(); err != nil {
		return Path{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.data[userID] {
		if p.ID == pathID {
			return clonePath(p), nil
		}
	}
	return Path{}, ErrNotFound
}

// Update replaces a stored path.
func (r *MemoryRepo) Update(ctx context.Context, path Path) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := r.data[path.UserID]
	for i := range stored {
		if stored[i].ID == path.ID {
			stored[i] = clonePath(path)
			r.data[path.UserID] = stored
			return nil
		}
	}
	return ErrNotFound
}

func clonePath(p Path) Path {
	out := p
	out.Modules = make([]Module, len(p.Modules))
	copy(out.Modules, p.Modules)
	for i := range out.Modules {
		if len(p.Modules[i].Resources) > 0 {
			out.Modules[i].Resources = append([]string(nil), p.Modules[i].Resources...)
		}
	}
	return out
}
