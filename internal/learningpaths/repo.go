package learningpaths

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a path does not exist for the user.
var ErrNotFound = errors.New("learning path not found")

// ErrModuleIndex is returned for an out-of-range module index.
var ErrModuleIndex = errors.New("module index out of range")

// Repo abstracts learning path persistence.
type Repo interface {
	Create(ctx context.Context, path Path) error
	ListByUser(ctx context.Context, userID string) ([]Path, error)
	GetByID(ctx context.Context, userID, pathID string) (Path, error)
	Update(ctx context.Context, path Path) error
}
