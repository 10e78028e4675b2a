package learningpaths

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"learnhub-backend/internal/llm"
)

// Service generates learning paths through a provider and persists them.
type Service struct {
	Registry *llm.Registry
	Repo     Repo
}

// Generate asks the provider for a learning path, decodes and stores it.
func (s *Service) Generate(ctx context.Context, provider, userID, topic, level string) (Path, error) {
	if level == "" {
		level = "beginner"
	}

	client, err := s.Registry.Provider(provider)
	if err != nil {
		return Path{}, err
	}

	raw, err := client.Complete(ctx, pathPrompt(topic, level))
	if err != nil {
		return Path{}, err
	}

	var path Path
	if err := llm.DecodeObject(raw, &path); err != nil {
		return Path{}, err
	}
	if len(path.Modules) == 0 {
		return Path{}, &llm.MalformedResponseError{Raw: raw, Err: fmt.Errorf("learning path has no modules")}
	}
	for i := range path.Modules {
		path.Modules[i].Completed = false
	}

	path.ID = uuid.NewString()
	path.UserID = userID
	path.Topic = topic
	path.Level = level
	path.CreatedAt = time.Now().UTC()

	if err := s.Repo.Create(ctx, path); err != nil {
		return Path{}, err
	}
	return path, nil
}

// SetModuleCompleted flips one module's completion flag and persists the path.
func (s *Service) SetModuleCompleted(ctx context.Context, userID, pathID string, moduleIndex int, completed bool) (Path, error) {
	path, err := s.Repo.GetByID(ctx, userID, pathID)
	if err != nil {
		return Path{}, err
	}
	if moduleIndex < 0 || moduleIndex >= len(path.Modules) {
		return Path{}, ErrModuleIndex
	}
	path.Modules[moduleIndex].Completed = completed
	if err := s.Repo.Update(ctx, path); err != nil {
		return Path{}, err
	}
	return path, nil
}

// ProgressByUser summarizes completion across all the user's paths.
func (s *Service) ProgressByUser(ctx context.Context, userID string) ([]Progress, error) {
	paths, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]Progress, 0, len(paths))
	for _, p := range paths {
		out = append(out, ProgressOf(p))
	}
	return out, nil
}

func pathPrompt(topic, level string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a structured learning path for a %s learner on: %s.\n", level, topic)
	b.WriteString("Respond with JSON only, no prose, in this shape:\n")
	b.WriteString(`{"modules":[{"title":"...","description":"...","resources":["..."],"estimatedHours":4}]}`)
	b.WriteString("\nUse 5 to 8 modules ordered from fundamentals to advanced topics.")
	return b.String()
}
