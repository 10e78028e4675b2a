package vision

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"learnhub-backend/internal/generate"
	"learnhub-backend/internal/llm"
	"learnhub-backend/internal/shared/server/respond"
)

const maxImageSize = 8 << 20 // 8MB

var allowedImageTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
	"image/webp": {},
	"image/gif":  {},
}

// Handler describes uploaded images via a vision-capable provider.
type Handler struct {
	Registry      *llm.Registry
	ExposeDetails bool
}

// NewHandler constructs a Handler.
func NewHandler(registry *llm.Registry, exposeDetails bool) *Handler {
	return &Handler{Registry: registry, ExposeDetails: exposeDetails}
}

// RegisterRoutes attaches image routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/images/analyze", h.analyze)
}

func (h *Handler) analyze(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImageSize)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "image is required", nil)
		return
	}

	mimeType := strings.ToLower(strings.TrimSpace(strings.Split(fileHeader.Header.Get("Content-Type"), ";")[0]))
	if _, ok := allowedImageTypes[mimeType]; !ok {
		respond.Error(c, http.StatusBadRequest, "unsupported_media_type", "only PNG, JPEG, WebP and GIF images are supported", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read image", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read image", nil)
		return
	}

	prompt := strings.TrimSpace(c.PostForm("prompt"))
	if prompt == "" {
		prompt = "Describe this image and any text it contains."
	}

	client, err := h.Registry.Provider(c.PostForm("provider"))
	if err != nil {
		generate.RespondLLMError(c, err, h.ExposeDetails)
		return
	}

	text, err := client.CompleteVision(c.Request.Context(), prompt, data, mimeType)
	if err != nil {
		generate.RespondLLMError(c, err, h.ExposeDetails)
		return
	}

	respond.OK(c, gin.H{"text": text})
}
