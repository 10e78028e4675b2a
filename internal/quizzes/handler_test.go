package quizzes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"learnhub-backend/internal/llm"
	"learnhub-backend/internal/shared/server/middleware"
)

type fakeClient struct {
	reply      string
	err        error
	lastPrompt string
}

func (f *fakeClient) Complete(_ context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	return f.reply, f.err
}

func (f *fakeClient) CompleteVision(_ context.Context, prompt string, _ []byte, _ string) (string, error) {
	return f.reply, f.err
}

func setupQuizRouter(fake *fakeClient) *gin.Engine {
	gin.SetMode(gin.TestMode)
	registry := llm.NewRegistry("gemini")
	registry.Register("gemini", fake)
	svc := &Service{Registry: registry}
	r := gin.New()
	r.Use(middleware.Identity())
	NewHandler(svc, NewMemoryResultsRepo(), true).RegisterRoutes(r.Group("/api/v1"))
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

const validQuizJSON = `{"questions":[
	{"prompt":"What starts a goroutine?","options":["go","run","spawn","async"],"answerIndex":0},
	{"prompt":"What is a channel for?","options":["files","communication","math","logging"],"answerIndex":1}
]}`

func TestGenerateQuiz(t *testing.T) {
	fake := &fakeClient{reply: "```json\n" + validQuizJSON + "\n```"}
	router := setupQuizRouter(fake)

	resp := doJSON(t, router, http.MethodPost, "/api/v1/quizzes", "g1", map[string]any{
		"topic": "goroutines",
		"count": 2,
	})

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var quiz Quiz
	if err := json.NewDecoder(resp.Body).Decode(&quiz); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if quiz.Topic != "goroutines" {
		t.Fatalf("expected topic set, got %q", quiz.Topic)
	}
	if quiz.Difficulty != "intermediate" {
		t.Fatalf("expected default difficulty, got %q", quiz.Difficulty)
	}
	if len(quiz.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(quiz.Questions))
	}
	if !strings.Contains(fake.lastPrompt, "exactly 2 questions") {
		t.Fatalf("expected count in prompt, got %q", fake.lastPrompt)
	}
}

func TestGenerateQuizCountClamped(t *testing.T) {
	fake := &fakeClient{reply: validQuizJSON}
	router := setupQuizRouter(fake)

	doJSON(t, router, http.MethodPost, "/api/v1/quizzes", "g1", map[string]any{
		"topic": "slices",
		"count": 100,
	})
	if !strings.Contains(fake.lastPrompt, "exactly 20 questions") {
		t.Fatalf("expected clamped count, got %q", fake.lastPrompt)
	}

	doJSON(t, router, http.MethodPost, "/api/v1/quizzes", "g1", map[string]any{
		"topic": "slices",
	})
	if !strings.Contains(fake.lastPrompt, "exactly 5 questions") {
		t.Fatalf("expected default count, got %q", fake.lastPrompt)
	}
}

func TestGenerateQuizMalformedReply(t *testing.T) {
	fake := &fakeClient{reply: "Sorry, I cannot help with that."}
	router := setupQuizRouter(fake)

	resp := doJSON(t, router, http.MethodPost, "/api/v1/quizzes", "g1", map[string]any{
		"topic": "maps",
	})

	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d: %s", resp.Code, resp.Body.String())
	}
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Details string `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Error.Code != "malformed_upstream_response" {
		t.Fatalf("expected malformed_upstream_response, got %s", body.Error.Code)
	}
	if body.Error.Details != "Sorry, I cannot help with that." {
		t.Fatalf("expected raw reply in details, got %q", body.Error.Details)
	}
}

func TestGenerateQuizInvalidAnswerIndex(t *testing.T) {
	fake := &fakeClient{reply: `{"questions":[{"prompt":"q","options":["a","b"],"answerIndex":5}]}`}
	router := setupQuizRouter(fake)

	resp := doJSON(t, router, http.MethodPost, "/api/v1/quizzes", "g1", map[string]any{
		"topic": "maps",
	})
	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", resp.Code)
	}
}

func TestGenerateQuizMissingTopic(t *testing.T) {
	router := setupQuizRouter(&fakeClient{})

	resp := doJSON(t, router, http.MethodPost, "/api/v1/quizzes", "g1", map[string]any{})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestSaveAndListResults(t *testing.T) {
	router := setupQuizRouter(&fakeClient{})

	resp := doJSON(t, router, http.MethodPost, "/api/v1/quizzes/results", "g1", map[string]any{
		"topic": "goroutines",
		"score": 4,
		"total": 5,
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var saved Result
	if err := json.NewDecoder(resp.Body).Decode(&saved); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if saved.Percentage != 80 {
		t.Fatalf("expected percentage 80, got %v", saved.Percentage)
	}

	list := doJSON(t, router, http.MethodGet, "/api/v1/quizzes/results", "g1", nil)
	if list.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", list.Code)
	}
	var results []Result
	if err := json.NewDecoder(list.Body).Decode(&results); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(results) != 1 || results[0].Topic != "goroutines" {
		t.Fatalf("unexpected results %+v", results)
	}

	other := doJSON(t, router, http.MethodGet, "/api/v1/quizzes/results", "g2", nil)
	var otherResults []Result
	if err := json.NewDecoder(other.Body).Decode(&otherResults); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(otherResults) != 0 {
		t.Fatalf("expected no results for other user, got %+v", otherResults)
	}
}

func TestSaveResultValidation(t *testing.T) {
	router := setupQuizRouter(&fakeClient{})

	cases := []map[string]any{
		{"score": 1, "total": 5},
		{"topic": "x", "score": 1, "total": 0},
		{"topic": "x", "score": 6, "total": 5},
		{"topic": "x", "score": -1, "total": 5},
	}
	for i, payload := range cases {
		resp := doJSON(t, router, http.MethodPost, "/api/v1/quizzes/results", "g1", payload)
		if resp.Code != http.StatusBadRequest {
			t.Errorf("case %d: expected status 400, got %d", i, resp.Code)
		}
	}
}
