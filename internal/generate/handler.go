package generate

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"learnhub-backend/internal/llm"
	"learnhub-backend/internal/shared/server/middleware"
	"learnhub-backend/internal/shared/server/respond"
	"learnhub-backend/internal/shared/telemetry"
)

// Handler proxies free-form generation and summarization to a provider.
type Handler struct {
	Registry      *llm.Registry
	ExposeDetails bool
}

// NewHandler constructs a Handler.
func NewHandler(registry *llm.Registry, exposeDetails bool) *Handler {
	return &Handler{Registry: registry, ExposeDetails: exposeDetails}
}

// RegisterRoutes attaches generation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/generate", h.generate)
	rg.POST("/summarize", h.summarize)
}

type generateRequest struct {
	Prompt   string `json:"prompt"`
	Provider string `json:"provider"`
}

func (h *Handler) generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	if strings.TrimSpace(req.Prompt) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "prompt is required", nil)
		return
	}

	text, ok := h.complete(c, req.Provider, req.Prompt)
	if !ok {
		return
	}
	respond.OK(c, gin.H{"text": text})
}

type summarizeRequest struct {
	Text     string `json:"text"`
	Provider string `json:"provider"`
}

func (h *Handler) summarize(c *gin.Context) {
	var req summarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "text is required", nil)
		return
	}

	prompt := "Summarize the following text in a concise paragraph. Keep the key points and drop filler.\n\n" + req.Text
	summary, ok := h.complete(c, req.Provider, prompt)
	if !ok {
		return
	}
	respond.OK(c, gin.H{"summary": summary})
}

// complete runs one provider call and writes the error response on failure.
func (h *Handler) complete(c *gin.Context, provider, prompt string) (string, bool) {
	client, err := h.Registry.Provider(provider)
	if err != nil {
		RespondLLMError(c, err, h.ExposeDetails)
		return "", false
	}
	c.Set("llmProvider", providerName(h.Registry, provider))

	text, err := client.Complete(c.Request.Context(), prompt)
	if err != nil {
		RespondLLMError(c, err, h.ExposeDetails)
		return "", false
	}
	return text, true
}

func providerName(r *llm.Registry, requested string) string {
	if name := strings.ToLower(strings.TrimSpace(requested)); name != "" {
		return name
	}
	return r.Default()
}

// RespondLLMError maps provider-layer failures onto the HTTP surface:
// missing configuration is a loud 500 naming the variable, provider errors
// keep their known status codes, decode failures surface as 502. Raw detail
// is attached only when exposeDetails is set (non-production).
func RespondLLMError(c *gin.Context, err error, exposeDetails bool) {
	reqID := middleware.RequestIDFromContext(c)

	var cfgErr *llm.ConfigError
	if errors.As(err, &cfgErr) {
		telemetry.Error("llm.config.missing", map[string]any{
			"var":        cfgErr.Var,
			"request_id": reqID,
		})
		respond.Error(c, http.StatusInternalServerError, "config_error", cfgErr.Error(), nil)
		return
	}

	var provErr *llm.ProviderError
	if errors.As(err, &provErr) {
		telemetry.Error("llm.provider.error", map[string]any{
			"provider":   provErr.Provider,
			"status":     provErr.StatusCode,
			"err":        provErr.Message,
			"request_id": reqID,
		})
		var details any
		if exposeDetails {
			details = provErr.Message
		}
		respond.Error(c, provErr.HTTPStatus(), "provider_error", provErr.UserMessage(), details)
		return
	}

	var malformed *llm.MalformedResponseError
	if errors.As(err, &malformed) {
		telemetry.Error("llm.response.malformed", map[string]any{
			"err":        malformed.Error(),
			"raw":        malformed.Raw,
			"request_id": reqID,
		})
		var details any
		if exposeDetails {
			details = malformed.Raw
		}
		respond.Error(c, http.StatusBadGateway, "malformed_upstream_response", "The AI provider returned data in an unexpected format.", details)
		return
	}

	telemetry.Error("llm.call.failed", map[string]any{
		"err":        err.Error(),
		"request_id": reqID,
	})
	var details any
	if exposeDetails {
		details = err.Error()
	}
	respond.Error(c, http.StatusInternalServerError, "internal_error", "AI request failed", details)
}
