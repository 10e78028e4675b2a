package bookmarks

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a bookmark does not exist for the user.
var ErrNotFound = errors.New("bookmark not found")

// Repo abstracts bookmark persistence.
type Repo interface {
	Create(ctx context.Context, bookmark Bookmark) error
	ListByUser(ctx context.Context, userID string) ([]Bookmark, error)
	Delete(ctx context.Context, userID, bookmarkID string) error
}
