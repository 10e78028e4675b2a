package bookmarks

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"learnhub-backend/internal/shared/server/middleware"
)

func setupBookmarkRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Identity())
	NewHandler(NewMemoryRepo()).RegisterRoutes(r.Group("/api/v1"))
	return r
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

func TestCreateBookmark(t *testing.T) {
	router := setupBookmarkRouter()

	resp := doJSON(t, router, http.MethodPost, "/api/v1/bookmarks", "g1", map[string]string{
		"title":    "Go blog",
		"url":      "https://go.dev/blog",
		"category": "reading",
	})

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created Bookmark
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.ID == "" || created.Title != "Go blog" || created.Category != "reading" {
		t.Fatalf("unexpected bookmark %+v", created)
	}
}

func TestCreateBookmarkInvalidURL(t *testing.T) {
	router := setupBookmarkRouter()

	cases := []string{"", "not a url", "/relative/path", "go.dev/blog"}
	for _, bad := range cases {
		resp := doJSON(t, router, http.MethodPost, "/api/v1/bookmarks", "g1", map[string]string{
			"title": "x",
			"url":   bad,
		})
		if resp.Code != http.StatusBadRequest {
			t.Errorf("url %q: expected status 400, got %d", bad, resp.Code)
		}
	}
}

func TestCreateBookmarkMissingTitle(t *testing.T) {
	router := setupBookmarkRouter()

	resp := doJSON(t, router, http.MethodPost, "/api/v1/bookmarks", "g1", map[string]string{
		"url": "https://go.dev",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestListBookmarksScopedToUser(t *testing.T) {
	router := setupBookmarkRouter()

	doJSON(t, router, http.MethodPost, "/api/v1/bookmarks", "alice", map[string]string{
		"title": "alice link", "url": "https://example.com/a",
	})
	doJSON(t, router, http.MethodPost, "/api/v1/bookmarks", "bob", map[string]string{
		"title": "bob link", "url": "https://example.com/b",
	})

	resp := doJSON(t, router, http.MethodGet, "/api/v1/bookmarks", "alice", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var listed []Bookmark
	if err := json.NewDecoder(resp.Body).Decode(&listed); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(listed) != 1 || listed[0].Title != "alice link" {
		t.Fatalf("expected only alice's bookmark, got %+v", listed)
	}
}

func TestDeleteBookmark(t *testing.T) {
	router := setupBookmarkRouter()

	create := doJSON(t, router, http.MethodPost, "/api/v1/bookmarks", "g1", map[string]string{
		"title": "temp", "url": "https://example.com",
	})
	var created Bookmark
	if err := json.NewDecoder(create.Body).Decode(&created); err != nil {
		t.Fatalf("decode create: %v", err)
	}

	resp := doJSON(t, router, http.MethodDelete, "/api/v1/bookmarks/"+created.ID, "g1", nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", resp.Code)
	}

	resp = doJSON(t, router, http.MethodDelete, "/api/v1/bookmarks/"+created.ID, "g1", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 on second delete, got %d", resp.Code)
	}
}
