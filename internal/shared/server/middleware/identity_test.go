package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"learnhub-backend/internal/shared/auth"
)

func setupIdentityRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Identity())
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userId":  UserIDFromContext(c),
			"isGuest": IsGuest(c),
		})
	})
	return r
}

func TestIdentityGuestHeader(t *testing.T) {
	router := setupIdentityRouter()

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("X-Guest-Id", "abc-123")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	body := resp.Body.String()
	if want := `"userId":"guest:abc-123"`; !strings.Contains(body, want) {
		t.Fatalf("expected %s in %s", want, body)
	}
	if want := `"isGuest":true`; !strings.Contains(body, want) {
		t.Fatalf("expected %s in %s", want, body)
	}
}

func TestIdentityBearerToken(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "test-secret")
	t.Setenv("ENV", "dev")

	token, err := auth.SignJWT(auth.Claims{Sub: "user-42", Email: "u@example.com"})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	router := setupIdentityRouter()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if want := `"userId":"user-42"`; !strings.Contains(resp.Body.String(), want) {
		t.Fatalf("expected %s in %s", want, resp.Body.String())
	}
	if want := `"isGuest":false`; !strings.Contains(resp.Body.String(), want) {
		t.Fatalf("expected %s in %s", want, resp.Body.String())
	}
}

func TestIdentityInvalidToken(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "test-secret")

	router := setupIdentityRouter()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestIdentityMissing(t *testing.T) {
	router := setupIdentityRouter()

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestIdentityOptionsBypass(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Identity())
	handlerRan := false
	r.OPTIONS("/whoami", func(c *gin.Context) {
		handlerRan = true
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodOptions, "/whoami", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", resp.Code)
	}
	if handlerRan {
		t.Fatal("expected preflight to stop before route handlers")
	}
}
