package llm

import (
	"context"
	"fmt"
	"strings"
)

// Placeholder is returned when a provider replies without usable text.
const Placeholder = "No response generated."

// Client abstracts a generative-AI provider.
type Client interface {
	// Complete sends a single prompt and returns the provider's text reply.
	Complete(ctx context.Context, prompt string) (string, error)
	// CompleteVision sends a prompt plus an inline image.
	CompleteVision(ctx context.Context, prompt string, image []byte, mimeType string) (string, error)
}

// ConfigError indicates a missing or unusable deployment setting. It names
// the environment variable so operators can act on the message.
type ConfigError struct {
	Var string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s is not set", e.Var)
}

// ProviderError carries an upstream provider failure with its HTTP status.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Provider, e.StatusCode, e.Message)
}

// UserMessage maps known provider statuses to a human-readable explanation.
func (e *ProviderError) UserMessage() string {
	switch e.StatusCode {
	case 401:
		return fmt.Sprintf("The configured %s API key was rejected.", e.Provider)
	case 402:
		return fmt.Sprintf("The %s account has insufficient credits.", e.Provider)
	case 403:
		return fmt.Sprintf("Access to the %s API is forbidden.", e.Provider)
	case 429:
		return fmt.Sprintf("The %s API is rate-limiting requests. Try again shortly.", e.Provider)
	default:
		return fmt.Sprintf("The %s API request failed.", e.Provider)
	}
}

// HTTPStatus returns the status to surface to the caller. Known statuses are
// passed through; anything else collapses to 500.
func (e *ProviderError) HTTPStatus() int {
	switch e.StatusCode {
	case 401, 402, 403, 429:
		return e.StatusCode
	default:
		return 500
	}
}

// Registry selects a provider client by name. Clients are constructed once
// at startup and injected; a missing key is surfaced lazily as ConfigError
// when that provider is first asked for, so one unset key does not prevent
// the process from serving the other provider.
type Registry struct {
	clients map[string]Client
	missing map[string]string // provider -> env var that was unset
	def     string
}

// NewRegistry constructs an empty registry with the given default provider.
func NewRegistry(defaultProvider string) *Registry {
	return &Registry{
		clients: make(map[string]Client),
		missing: make(map[string]string),
		def:     strings.ToLower(strings.TrimSpace(defaultProvider)),
	}
}

// Register adds a provider client under name.
func (r *Registry) Register(name string, c Client) {
	r.clients[strings.ToLower(strings.TrimSpace(name))] = c
}

// RegisterMissing records that a provider could not be configured because
// the named environment variable is unset.
func (r *Registry) RegisterMissing(name, envVar string) {
	r.missing[strings.ToLower(strings.TrimSpace(name))] = envVar
}

// Provider returns the client for name, or the default when name is empty.
func (r *Registry) Provider(name string) (Client, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = r.def
	}
	if c, ok := r.clients[key]; ok {
		return c, nil
	}
	if envVar, ok := r.missing[key]; ok {
		return nil, &ConfigError{Var: envVar}
	}
	return nil, fmt.Errorf("unknown provider: %s", key)
}

// Default reports the default provider name.
func (r *Registry) Default() string {
	return r.def
}
