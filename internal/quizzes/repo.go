package quizzes

import "context"

// ResultsRepo abstracts quiz result persistence.
type ResultsRepo interface {
	Create(ctx context.Context, result Result) error
	ListByUser(ctx context.Context, userID string, limit int) ([]Result, error)
}
