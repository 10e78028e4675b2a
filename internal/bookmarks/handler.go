package bookmarks

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"learnhub-backend/internal/shared/server/middleware"
	"learnhub-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the bookmark repo.
type Handler struct {
	Repo Repo
}

// NewHandler constructs a Handler.
func NewHandler(repo Repo) *Handler {
	return &Handler{Repo: repo}
}

// RegisterRoutes attaches bookmark routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookmarks", h.create)
	rg.GET("/bookmarks", h.list)
	rg.DELETE("/bookmarks/:id", h.remove)
}

type createBookmarkRequest struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Category string `json:"category"`
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req createBookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	req.URL = strings.TrimSpace(req.URL)
	if req.Title == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "title is required", nil)
		return
	}
	if req.URL == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "url is required", nil)
		return
	}
	if parsed, err := url.Parse(req.URL); err != nil || parsed.Scheme == "" || parsed.Host == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "url must be absolute", nil)
		return
	}

	bookmark := Bookmark{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     req.Title,
		URL:       req.URL,
		Category:  strings.TrimSpace(req.Category),
		CreatedAt: time.Now().UTC(),
	}

	if err := h.Repo.Create(c.Request.Context(), bookmark); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create bookmark", nil)
		return
	}
	respond.Created(c, bookmark)
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	stored, err := h.Repo.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list bookmarks", nil)
		return
	}
	respond.OK(c, stored)
}

func (h *Handler) remove(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	if err := h.Repo.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "bookmark not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete bookmark", nil)
		return
	}
	c.Status(http.StatusNoContent)
}
