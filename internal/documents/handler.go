package documents

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"learnhub-backend/internal/extract"
	"learnhub-backend/internal/generate"
	"learnhub-backend/internal/llm"
	"learnhub-backend/internal/shared/server/middleware"
	"learnhub-backend/internal/shared/server/respond"
	"learnhub-backend/internal/shared/storage/scratch"
	"learnhub-backend/internal/shared/telemetry"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler analyzes uploaded documents: extract text, then summarize via a
// provider.
type Handler struct {
	Registry      *llm.Registry
	Scratch       *scratch.Store
	ExposeDetails bool
}

// NewHandler constructs a Handler.
func NewHandler(registry *llm.Registry, store *scratch.Store, exposeDetails bool) *Handler {
	return &Handler{Registry: registry, Scratch: store, ExposeDetails: exposeDetails}
}

// RegisterRoutes attaches document routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/documents/analyze", h.analyze)
}

func (h *Handler) analyze(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	// Buffer the upload through the scratch dir so large files never live
	// in memory; the file is removed on every exit path.
	key, _, err := h.Scratch.Save(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		telemetry.Error("documents.scratch.save_failed", map[string]any{
			"err":        err.Error(),
			"request_id": middleware.RequestIDFromContext(c),
		})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store upload", nil)
		return
	}
	defer h.Scratch.Remove(key)

	reader, err := h.Scratch.Open(c.Request.Context(), key)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to read upload", nil)
		return
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to read upload", nil)
		return
	}

	text, err := extract.Text(data, fileHeader.Header.Get("Content-Type"), fileHeader.Filename)
	if err != nil {
		switch {
		case errors.Is(err, extract.ErrUnsupportedType):
			respond.Error(c, http.StatusBadRequest, "unsupported_media_type", "only PDF, DOCX and plain text files are supported", nil)
		case errors.Is(err, extract.ErrExtractionFailed):
			telemetry.Error("documents.extract.failed", map[string]any{
				"err":        err.Error(),
				"file_name":  fileHeader.Filename,
				"request_id": middleware.RequestIDFromContext(c),
			})
			respond.Error(c, http.StatusBadRequest, "extraction_failed", "could not parse the uploaded file", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process the uploaded file", nil)
		}
		return
	}

	instruction := strings.TrimSpace(c.PostForm("instruction"))
	if instruction == "" {
		instruction = "Summarize this document in a concise paragraph, highlighting its key points."
	}

	client, err := h.Registry.Provider(c.PostForm("provider"))
	if err != nil {
		generate.RespondLLMError(c, err, h.ExposeDetails)
		return
	}

	summary, err := client.Complete(c.Request.Context(), instruction+"\n\n"+text)
	if err != nil {
		generate.RespondLLMError(c, err, h.ExposeDetails)
		return
	}

	respond.OK(c, gin.H{
		"fileName":  fileHeader.Filename,
		"wordCount": len(strings.Fields(text)),
		"summary":   summary,
	})
}
