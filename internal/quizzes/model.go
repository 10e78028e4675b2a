package quizzes

import "time"

// Question is a multiple-choice question with exactly one correct option.
type Question struct {
	Prompt      string   `json:"prompt"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answerIndex"`
}

// Quiz is a generated set of questions. Quizzes are ephemeral: they live in
// the client, only results are persisted.
type Quiz struct {
	Topic      string     `json:"topic"`
	Difficulty string     `json:"difficulty,omitempty"`
	Questions  []Question `json:"questions"`
}

// Result is a completed quiz attempt stored per user.
type Result struct {
	ID         string    `json:"id"`
	UserID     string    `json:"-"`
	Topic      string    `json:"topic"`
	Score      int       `json:"score"`
	Total      int       `json:"total"`
	Percentage float64   `json:"percentage"`
	CreatedAt  time.Time `json:"createdAt"`
}
