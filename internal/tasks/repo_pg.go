package tasks

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new task.
func (r *PGRepo) Create(ctx context.Context, task Task) error {
	const query = `
INSERT INTO tasks (id, user_id, text, ai_prompt, image_url, due_date, completed, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		task.ID,
		task.UserID,
		task.Text,
		nullString(task.AIPrompt),
		nullString(task.ImageURL),
		task.DueDate,
		task.Completed,
		task.CreatedAt,
	)
	return err
}

// ListByUser returns the user's tasks, newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Task, error) {
	const query = `
SELECT id, user_id, text, ai_prompt, image_url, due_date, completed, created_at
FROM tasks
WHERE user_id = $1
ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

// GetByID returns a task by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userID, taskID string) (Task, error) {
	const query = `
SELECT id, user_id, text, ai_prompt, image_url, due_date, completed, created_at
FROM tasks
WHERE user_id = $1 AND id = $2`

	row := r.DB.QueryRowContext(ctx, query, userID, taskID)
	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Task{}, ErrNotFound
	}
	return task, err
}

// Update replaces a stored task's mutable fields.
func (r *PGRepo) Update(ctx context.Context, task Task) error {
	const query = `
UPDATE tasks
SET text = $3, ai_prompt = $4, image_url = $5, due_date = $6, completed = $7
WHERE user_id = $1 AND id = $2`

	res, err := r.DB.ExecContext(
		ctx,
		query,
		task.UserID,
		task.ID,
		task.Text,
		nullString(task.AIPrompt),
		nullString(task.ImageURL),
		task.DueDate,
		task.Completed,
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

// Delete removes a task.
func (r *PGRepo) Delete(ctx context.Context, userID, taskID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM tasks WHERE user_id = $1 AND id = $2`, userID, taskID)
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

func scanTask(row rowScanner) (Task, error) {
	var task Task
	var aiPrompt, imageURL sql.NullString
	var dueDate sql.NullTime
	err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Text,
		&aiPrompt,
		&imageURL,
		&dueDate,
		&task.Completed,
		&task.CreatedAt,
	)
	if err != nil {
		return Task{}, err
	}
	task.AIPrompt = aiPrompt.String
	task.ImageURL = imageURL.String
	if dueDate.Valid {
		due := dueDate.Time
		task.DueDate = &due
	}
	return task, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
