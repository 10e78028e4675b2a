package health

import (
	"strings"
	"time"
)

// Service reports process health and provider key presence.
type Service struct {
	env       string
	geminiKey string
	openaiKey string
	now       func() time.Time
}

// NewService constructs a health service.
func NewService(env, geminiKey, openaiKey string) *Service {
	return &Service{
		env:       env,
		geminiKey: geminiKey,
		openaiKey: openaiKey,
		now:       time.Now,
	}
}

// Status returns the health payload. Key values report presence only, never
// the key material.
func (s *Service) Status() map[string]any {
	return map[string]any{
		"status":      "ok",
		"timestamp":   s.now().UTC().Format(time.RFC3339),
		"environment": s.env,
		"geminiKey":   keyState(s.geminiKey),
		"openaiKey":   keyState(s.openaiKey),
	}
}

func keyState(key string) string {
	if strings.TrimSpace(key) == "" {
		return "Not set"
	}
	return "Active"
}
