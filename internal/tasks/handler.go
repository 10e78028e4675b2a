package tasks

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"learnhub-backend/internal/shared/server/middleware"
	"learnhub-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the task repo.
type Handler struct {
	Repo Repo
}

// NewHandler constructs a Handler.
func NewHandler(repo Repo) *Handler {
	return &Handler{Repo: repo}
}

// RegisterRoutes attaches task routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/tasks", h.create)
	rg.GET("/tasks", h.list)
	rg.PATCH("/tasks/:id", h.update)
	rg.DELETE("/tasks/:id", h.remove)
}

type createTaskRequest struct {
	Text     string     `json:"text"`
	AIPrompt string     `json:"aiPrompt"`
	ImageURL string     `json:"imageUrl"`
	DueDate  *time.Time `json:"dueDate"`
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "text is required", nil)
		return
	}

	task := Task{
		ID:        uuid.NewString(),
		UserID:    userID,
		Text:      strings.TrimSpace(req.Text),
		AIPrompt:  strings.TrimSpace(req.AIPrompt),
		ImageURL:  strings.TrimSpace(req.ImageURL),
		DueDate:   req.DueDate,
		CreatedAt: time.Now().UTC(),
	}

	if err := h.Repo.Create(c.Request.Context(), task); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create task", nil)
		return
	}
	respond.Created(c, task)
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	userTasks, err := h.Repo.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list tasks", nil)
		return
	}
	respond.OK(c, userTasks)
}

type updateTaskRequest struct {
	Text      *string    `json:"text"`
	AIPrompt  *string    `json:"aiPrompt"`
	ImageURL  *string    `json:"imageUrl"`
	DueDate   *time.Time `json:"dueDate"`
	Completed *bool      `json:"completed"`
}

func (h *Handler) update(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	taskID := c.Param("id")

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	task, err := h.Repo.GetByID(c.Request.Context(), userID, taskID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "task not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update task", nil)
		return
	}

	if req.Text != nil {
		if strings.TrimSpace(*req.Text) == "" {
			respond.Error(c, http.StatusBadRequest, "validation_error", "text cannot be empty", nil)
			return
		}
		task.Text = strings.TrimSpace(*req.Text)
	}
	if req.AIPrompt != nil {
		task.AIPrompt = strings.TrimSpace(*req.AIPrompt)
	}
	if req.ImageURL != nil {
		task.ImageURL = strings.TrimSpace(*req.ImageURL)
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}

	if err := h.Repo.Update(c.Request.Context(), task); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "task not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update task", nil)
		return
	}
	respond.OK(c, task)
}

func (h *Handler) remove(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	taskID := c.Param("id")

	if err := h.Repo.Delete(c.Request.Context(), userID, taskID); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "task not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete task", nil)
		return
	}
	c.Status(http.StatusNoContent)
}
