package quizzes

import (
	"context"
	"fmt"
	"strings"

	"learnhub-backend/internal/llm"
)

const (
	defaultQuestionCount = 5
	maxQuestionCount     = 20
)

// Service generates quizzes through a provider client.
type Service struct {
	Registry *llm.Registry
}

// Generate asks the provider for a quiz on topic and decodes the reply.
func (s *Service) Generate(ctx context.Context, provider, topic, difficulty string, count int) (Quiz, error) {
	if count <= 0 {
		count = defaultQuestionCount
	}
	if count > maxQuestionCount {
		count = maxQuestionCount
	}
	if difficulty == "" {
		difficulty = "intermediate"
	}

	client, err := s.Registry.Provider(provider)
	if err != nil {
		return Quiz{}, err
	}

	raw, err := client.Complete(ctx, quizPrompt(topic, difficulty, count))
	if err != nil {
		return Quiz{}, err
	}

	var quiz Quiz
	if err := llm.DecodeObject(raw, &quiz); err != nil {
		return Quiz{}, err
	}
	quiz.Topic = topic
	quiz.Difficulty = difficulty

	if err := validateQuiz(quiz); err != nil {
		return Quiz{}, &llm.MalformedResponseError{Raw: raw, Err: err}
	}
	return quiz, nil
}

func quizPrompt(topic, difficulty string, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a %s-level multiple-choice quiz with exactly %d questions about: %s.\n", difficulty, count, topic)
	b.WriteString("Respond with JSON only, no prose, in this shape:\n")
	b.WriteString(`{"questions":[{"prompt":"...","options":["a","b","c","d"],"answerIndex":0}]}`)
	b.WriteString("\nEach question must have exactly 4 options and answerIndex must point at the correct one.")
	return b.String()
}

func validateQuiz(quiz Quiz) error {
	if len(quiz.Questions) == 0 {
		return fmt.Errorf("quiz has no questions")
	}
	for i, q := range quiz.Questions {
		if strings.TrimSpace(q.Prompt) == "" {
			return fmt.Errorf("question %d has an empty prompt", i)
		}
		if len(q.Options) < 2 {
			return fmt.Errorf("question %d has too few options", i)
		}
		if q.AnswerIndex < 0 || q.AnswerIndex >= len(q.Options) {
			return fmt.Errorf("question %d answer index out of range", i)
		}
	}
	return nil
}
