package bookmarks

import (
	"context"
	"database/sql"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new bookmark.
func (r *PGRepo) Create(ctx context.Context, bookmark Bookmark) error {
	const query = `
INSERT INTO bookmarks (id, user_id, title, url, category, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	var category sql.NullString
	if bookmark.Category != "" {
		category = sql.NullString{String: bookmark.Category, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		bookmark.ID,
		bookmark.UserID,
		bookmark.Title,
		bookmark.URL,
		category,
		bookmark.CreatedAt,
	)
	return err
}

// ListByUser returns the user's bookmarks, newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Bookmark, error) {
	const query = `
SELECT id, user_id, title, url, category, created_at
FROM bookmarks
WHERE user_id = $1
ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Bookmark{}
	for rows.Next() {
		var b Bookmark
		var category sql.NullString
		if err := rows.Scan(&b.ID, &b.UserID, &b.Title, &b.URL, &category, &b.CreatedAt); err != nil {
			return nil, err
		}
		b.Category = category.String
		out = append(out, b)
	}
	return out, rows.Err()
}

// Delete removes a bookmark.
func (r *PGRepo) Delete(ctx context.Context, userID, bookmarkID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM bookmarks WHERE user_id = $1 AND id = $2`, userID, bookmarkID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
