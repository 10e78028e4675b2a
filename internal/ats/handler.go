package ats

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"learnhub-backend/internal/extract"
	"learnhub-backend/internal/shared/server/middleware"
	"learnhub-backend/internal/shared/server/respond"
	"learnhub-backend/internal/shared/telemetry"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler serves the résumé compatibility check.
type Handler struct{}

// NewHandler constructs a Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// RegisterRoutes attaches ATS routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/ats/check", h.check)
}

func (h *Handler) check(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	text := strings.TrimSpace(c.PostForm("text"))
	jobDescription := strings.TrimSpace(c.PostForm("jobDescription"))

	fileHeader, fileErr := c.FormFile("file")
	if fileErr == nil && fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
			return
		}

		extracted, err := extract.Text(data, fileHeader.Header.Get("Content-Type"), fileHeader.Filename)
		if err != nil {
			switch {
			case errors.Is(err, extract.ErrUnsupportedType):
				respond.Error(c, http.StatusBadRequest, "unsupported_media_type", "only PDF, DOCX and plain text files are supported", nil)
			case errors.Is(err, extract.ErrExtractionFailed):
				telemetry.Error("ats.extract.failed", map[string]any{
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
		text = extracted
	}

	if strings.TrimSpace(text) == "" {
		missing := []map[string]string{{"field": "text", "issue": "required"}}
		message := "resume text or file is required"
		if jobDescription == "" {
			missing = append(missing, map[string]string{"field": "jobDescription", "issue": "empty"})
			message = "resume text and job description are both missing"
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", message, missing)
		return
	}

	// jobDescription is accepted for interface compatibility but the
	// heuristic scores against a fixed rubric only.
	_ = jobDescription

	analysis := Analyze(text)
	respond.JSON(c, http.StatusOK, gin.H{"analysis": analysis})
}
