package learningpaths

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// PGRepo implements Repo using Postgres with modules stored as jsonb.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new learning path.
func (r *PGRepo) Create(ctx context.Context, path Path) error {
	modules, err := json.Marshal(path.Modules)
	if err != nil {
		return err
	}

	const query = `
INSERT INTO learning_paths (id, user_id, topic, level, modules, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = r.DB.ExecContext(
		ctx,
		query,
		path.ID,
		path.UserID,
		path.Topic,
		path.Level,
		modules,
		path.CreatedAt,
	)
	return err
}

// ListByUser returns the user's paths, newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Path, error) {
	const query = `
SELECT id, user_id, topic, level, modules, created_at
FROM learning_paths
WHERE user_id = $1
ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Path{}
	for rows.Next() {
		path, err := scanPath(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, path)
	}
	return out, rows.Err()
}

// GetByID returns a path by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userID, pathID string) (Path, error) {
	const query = `
SELECT id, user_id, topic, level, modules, created_at
FROM learning_paths
WHERE user_id = $1 AND id = $2`

	row := r.DB.QueryRowContext(ctx, query, userID, pathID)
	path, err := scanPath(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Path{}, ErrNotFound
	}
	return path, err
}

// Update replaces a stored path's modules.
func (r *PGRepo) Update(ctx context.Context, path Path) error {
	modules, err := json.Marshal(path.Modules)
	if err != nil {
		return err
	}

	res, err := r.DB.ExecContext(
		ctx,
		`UPDATE learning_paths SET modules = $3 WHERE user_id = $1 AND id = $2`,
		path.UserID,
		path.ID,
		modules,
	)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPath(row rowScanner) (Path, error) {
	var path Path
	var level sql.NullString
	var modules []byte
	err := row.Scan(
		&path.ID,
		&path.UserID,
		&path.Topic,
		&level,
		&modules,
		&path.CreatedAt,
	)
	if err != nil {
		return Path{}, err
	}
	path.Level = level.String
	if len(modules) > 0 {
		if err := json.Unmarshal(modules, &path.Modules); err != nil {
			return Path{}, err
		}
	}
	return path, nil
}
