package quizzes

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"learnhub-backend/internal/generate"
	"learnhub-backend/internal/shared/server/middleware"
	"learnhub-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to quiz generation and result storage.
type Handler struct {
	Svc           *Service
	Results       ResultsRepo
	ExposeDetails bool
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, results ResultsRepo, exposeDetails bool) *Handler {
	return &Handler{Svc: svc, Results: results, ExposeDetails: exposeDetails}
}

// RegisterRoutes attaches quiz routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/quizzes", h.generateQuiz)
	rg.POST("/quizzes/results", h.saveResult)
	rg.GET("/quizzes/results", h.listResults)
}

type generateQuizRequest struct {
	Topic      string `json:"topic"`
	Count      int    `json:"count"`
	Difficulty string `json:"difficulty"`
	Provider   string `json:"provider"`
}

func (h *Handler) generateQuiz(c *gin.Context) {
	var req generateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "topic is required", nil)
		return
	}

	quiz, err := h.Svc.Generate(c.Request.Context(), req.Provider, strings.TrimSpace(req.Topic), strings.TrimSpace(req.Difficulty), req.Count)
	if err != nil {
		generate.RespondLLMError(c, err, h.ExposeDetails)
		return
	}
	respond.OK(c, quiz)
}

type saveResultRequest struct {
	Topic string `json:"topic"`
	Score int    `json:"score"`
	Total int    `json:"total"`
}

func (h *Handler) saveResult(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req saveResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "topic is required", nil)
		return
	}
	if req.Total <= 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "total must be positive", nil)
		return
	}
	if req.Score < 0 || req.Score > req.Total {
		respond.Error(c, http.StatusBadRequest, "validation_error", "score must be between 0 and total", nil)
		return
	}

	result := Result{
		ID:         uuid.NewString(),
		UserID:     userID,
		Topic:      strings.TrimSpace(req.Topic),
		Score:      req.Score,
		Total:      req.Total,
		Percentage: float64(req.Score) / float64(req.Total) * 100,
		CreatedAt:  time.Now().UTC(),
	}

	if err := h.Results.Create(c.Request.Context(), result); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save quiz result", nil)
		return
	}
	respond.Created(c, result)
}

func (h *Handler) listResults(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	limit := 20
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	results, err := h.Results.ListByUser(c.Request.Context(), userID, limit)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list quiz results", nil)
		return
	}
	respond.OK(c, results)
}
