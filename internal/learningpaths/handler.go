package learningpaths

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"learnhub-backend/internal/generate"
	"learnhub-backend/internal/shared/server/middleware"
	"learnhub-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the learning path service.
type Handler struct {
	Svc           *Service
	ExposeDetails bool
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, exposeDetails bool) *Handler {
	return &Handler{Svc: svc, ExposeDetails: exposeDetails}
}

// RegisterRoutes attaches learning path routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/learning-paths", h.create)
	rg.GET("/learning-paths", h.list)
	rg.GET("/learning-paths/:id", h.get)
	rg.PATCH("/learning-paths/:id/modules/:index", h.updateModule)
	rg.GET("/progress", h.progress)
}

type createPathRequest struct {
	Topic    string `json:"topic"`
	Level    string `json:"level"`
	Provider string `json:"provider"`
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req createPathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "topic is required", nil)
		return
	}

	path, err := h.Svc.Generate(c.Request.Context(), req.Provider, userID, strings.TrimSpace(req.Topic), strings.TrimSpace(req.Level))
	if err != nil {
		generate.RespondLLMError(c, err, h.ExposeDetails)
		return
	}
	respond.Created(c, path)
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	paths, err := h.Svc.Repo.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list learning paths", nil)
		return
	}
	respond.OK(c, paths)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	path, err := h.Svc.Repo.GetByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "learning path not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch learning path", nil)
		return
	}
	respond.OK(c, path)
}

type updateModuleRequest struct {
	Completed *bool `json:"completed"`
}

func (h *Handler) updateModule(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "module index must be a number", nil)
		return
	}

	var req updateModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.Completed == nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "completed is required", nil)
		return
	}

	path, err := h.Svc.SetModuleCompleted(c.Request.Context(), userID, c.Param("id"), index, *req.Completed)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "learning path not found", nil)
		case errors.Is(err, ErrModuleIndex):
			respond.Error(c, http.StatusBadRequest, "validation_error", "module index out of range", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update module", nil)
		}
		return
	}
	respond.OK(c, path)
}

func (h *Handler) progress(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	summary, err := h.Svc.ProgressByUser(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to compute progress", nil)
		return
	}
	respond.OK(c, summary)
}
