package quizzes

import (
	"context"
	"database/sql"
)

// PGResultsRepo implements ResultsRepo using Postgres.
type PGResultsRepo struct {
	DB *sql.DB
}

// Create inserts a new quiz result.
func (r *PGResultsRepo) Create(ctx context.Context, result Result) error {
	const query = `
INSERT INTO quiz_results (id, user_id, topic, score, total, percentage, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		result.ID,
		result.UserID,
		result.Topic,
		result.Score,
		result.Total,
		result.Percentage,
		result.CreatedAt,
	)
	return err
}

// ListByUser returns the user's results ordered by creation time descending.
func (r *PGResultsRepo) ListByUser(ctx context.Context, userID string, limit int) ([]Result, error) {
	query := `
SELECT id, user_id, topic, score, total, percentage, created_at
FROM quiz_results
WHERE user_id = $1
ORDER BY created_at DESC`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Result{}
	for rows.Next() {
		var res Result
		if err := rows.Scan(&res.ID, &res.UserID, &res.Topic, &res.Score, &res.Total, &res.Percentage, &res.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}
