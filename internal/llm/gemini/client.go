package gemini

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"learnhub-backend/internal/llm"
)

// Client implements llm.Client using the Gemini API.
type Client struct {
	model string
	gen   *genai.Client
}

// NewClient constructs a new Gemini client.
func NewClient(ctx context.Context, apiKey, model string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, &llm.ConfigError{Var: "GEMINI_API_KEY"}
	}
	if strings.TrimSpace(model) == "" {
		return nil, &llm.ConfigError{Var: "GEMINI_MODEL"}
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	gen, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
	})
	if err != nil {
		return nil, err
	}
	return &Client{model: model, gen: gen}, nil
}

// Complete sends a single text prompt.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.gen.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", mapError(err)
	}
	return replyText(resp), nil
}

// CompleteVision sends a text prompt with an inline image part.
func (c *Client) CompleteVision(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
		genai.NewPartFromBytes(image, mimeType),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := c.gen.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", mapError(err)
	}
	return replyText(resp), nil
}

func replyText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return llm.Placeholder
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return llm.Placeholder
	}
	return text
}

func mapError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &llm.ProviderError{
			Provider:   "gemini",
			StatusCode: apiErr.Code,
			Message:    apiErr.Message,
		}
	}
	return err
}
