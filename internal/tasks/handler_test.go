package tasks

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"learnhub-backend/internal/shared/server/middleware"
)

func setupTaskRouter() (*gin.Engine, *MemoryRepo) {
	gin.SetMode(gin.TestMode)
	repo := NewMemoryRepo()
	r := gin.New()
	r.Use(middleware.Identity())
	NewHandler(repo).RegisterRoutes(r.Group("/api/v1"))
	return r, repo
}

func doJSON(t *testing.T, router *gin.Engine, method, path, guestID string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("encode payload: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Guest-Id", guestID)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestCreateTask(t *testing.T) {
	router, repo := setupTaskRouter()

	resp := doJSON(t, router, http.MethodPost, "/api/v1/tasks", "g1", map[string]any{
		"text":     "  Review Go chapter  ",
		"aiPrompt": "quiz me on interfaces",
	})

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created Task
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected generated id")
	}
	if created.Text != "Review Go chapter" {
		t.Fatalf("expected trimmed text, got %q", created.Text)
	}
	if created.Completed {
		t.Fatalf("expected new task incomplete")
	}

	stored, err := repo.GetByID(context.Background(), "guest:g1", created.ID)
	if err != nil {
		t.Fatalf("get stored task: %v", err)
	}
	if stored.AIPrompt != "quiz me on interfaces" {
		t.Fatalf("unexpected stored prompt %q", stored.AIPrompt)
	}
}

func TestCreateTaskEmptyText(t *testing.T) {
	router, _ := setupTaskRouter()

	resp := doJSON(t, router, http.MethodPost, "/api/v1/tasks", "g1", map[string]string{"text": "   "})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestCreateTaskMissingIdentity(t *testing.T) {
	router, _ := setupTaskRouter()

	body := bytes.NewBufferString(`{"text":"hi"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks", body)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}

func TestListTasksScopedToUser(t *testing.T) {
	router, _ := setupTaskRouter()

	doJSON(t, router, http.MethodPost, "/api/v1/tasks", "alice", map[string]string{"text": "alice task"})
	doJSON(t, router, http.MethodPost, "/api/v1/tasks", "bob", map[string]string{"text": "bob task"})

	resp := doJSON(t, router, http.MethodGet, "/api/v1/tasks", "alice", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var listed []Task
	if err := json.NewDecoder(resp.Body).Decode(&listed); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(listed) != 1 || listed[0].Text != "alice task" {
		t.Fatalf("expected only alice's task, got %+v", listed)
	}
}

func TestUpdateTaskPartial(t *testing.T) {
	router, _ := setupTaskRouter()

	due := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
	create := doJSON(t, router, http.MethodPost, "/api/v1/tasks", "g1", map[string]any{
		"text":    "original",
		"dueDate": due,
	})
	var created Task
	if err := json.NewDecoder(create.Body).Decode(&created); err != nil {
		t.Fatalf("decode create: %v", err)
	}

	resp := doJSON(t, router, http.MethodPatch, "/api/v1/tasks/"+created.ID, "g1", map[string]any{
		"completed": true,
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var updated Task
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		t.Fatalf("decode update: %v", err)
	}
	if !updated.Completed {
		t.Fatalf("expected task completed")
	}
	if updated.Text != "original" {
		t.Fatalf("expected untouched text, got %q", updated.Text)
	}
	if updated.DueDate == nil || !updated.DueDate.Equal(due) {
		t.Fatalf("expected due date preserved, got %v", updated.DueDate)
	}
}

func TestUpdateTaskEmptyTextRejected(t *testing.T) {
	router, _ := setupTaskRouter()

	create := doJSON(t, router, http.MethodPost, "/api/v1/tasks", "g1", map[string]string{"text": "keep me"})
	var created Task
	if err := json.NewDecoder(create.Body).Decode(&created); err != nil {
		t.Fatalf("decode create: %v", err)
	}

	resp := doJSON(t, router, http.MethodPatch, "/api/v1/tasks/"+created.ID, "g1", map[string]string{"text": "  "})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestUpdateTaskOtherUser(t *testing.T) {
	router, _ := setupTaskRouter()

	create := doJSON(t, router, http.MethodPost, "/api/v1/tasks", "alice", map[string]string{"text": "private"})
	var created Task
	if err := json.NewDecoder(create.Body).Decode(&created); err != nil {
		t.Fatalf("decode create: %v", err)
	}

	resp := doJSON(t, router, http.MethodPatch, "/api/v1/tasks/"+created.ID, "bob", map[string]any{"completed": true})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestDeleteTask(t *testing.T) {
	router, repo := setupTaskRouter()

	create := doJSON(t, router, http.MethodPost, "/api/v1/tasks", "g1", map[string]string{"text": "done soon"})
	var created Task
	if err := json.NewDecoder(create.Body).Decode(&created); err != nil {
		t.Fatalf("decode create: %v", err)
	}

	resp := doJSON(t, router, http.MethodDelete, "/api/v1/tasks/"+created.ID, "g1", nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", resp.Code)
	}
	if _, err := repo.GetByID(context.Background(), "guest:g1", created.ID); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestDeleteTaskMissing(t *testing.T) {
	router, _ := setupTaskRouter()

	resp := doJSON(t, router, http.MethodDelete, "/api/v1/tasks/nope", "g1", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}
