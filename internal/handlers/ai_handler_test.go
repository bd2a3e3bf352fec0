package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/cedarpath/practice-api/internal/ai"
	"github.com/cedarpath/practice-api/internal/logger"
)

type cannedCompleter struct {
	reply string
	calls int
}

func (s *cannedCompleter) Complete(context.Context, string, []ai.Turn) (string, error) {
	s.calls++
	return s.reply, nil
}

func aiRouter(completer ai.Completer) *gin.Engine {
	h := NewAIHandler(ai.NewOrchestrator(completer, logger.Nop()), logger.Nop())
	r := gin.New()
	r.POST("/api/ai/session", h.CreateSession)
	r.POST("/api/ai/chat", h.Chat)
	r.GET("/api/ai/session/:id/summary", h.Summary)
	return r
}

func TestAICreateSession_Defaults(t *testing.T) {
	r := aiRouter(&cannedCompleter{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/api/ai/session", map[string]any{}))
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	require.NotEmpty(t, body["sessionId"])
	require.Equal(t, "self-empathy", body["type"])
	require.Contains(t, body["greeting"], "self-empathy")

	suggestions, ok := body["suggestions"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, suggestions["followUp"], "feelings")
}

func TestAICreateSession_ScenarioGreeting(t *testing.T) {
	r := aiRouter(&cannedCompleter{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/api/ai/session", map[string]any{
		"type":     "scenario",
		"scenario": map[string]any{"title": "Asking for a raise"},
	}))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, decodeBody(t, w)["greeting"], "Asking for a raise")
}

func TestAICreateSession_InvalidType(t *testing.T) {
	r := aiRouter(&cannedCompleter{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/api/ai/session", map[string]any{
		"type": "group",
	}))
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAIChat_RequiresMessage(t *testing.T) {
	r := aiRouter(&cannedCompleter{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/api/ai/chat", map[string]any{}))
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Message is required")
}

func TestAIChat_Reply(t *testing.T) {
	stub := &cannedCompleter{reply: "It sounds like you're feeling overwhelmed and needing rest."}
	r := aiRouter(stub)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/api/ai/chat", map[string]any{
		"message": "work has been nonstop",
	}))
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	require.Equal(t, stub.reply, body["message"])
	require.Equal(t, false, body["crisisDetected"])
}

func TestAIChat_CrisisBypassesModel(t *testing.T) {
	stub := &cannedCompleter{reply: "never used"}
	r := aiRouter(stub)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/api/ai/chat", map[string]any{
		"message": "I've been thinking about suicide",
	}))
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	require.Equal(t, true, body["crisisDetected"])
	require.Contains(t, body["message"], "988")
	require.Zero(t, stub.calls)
}

func TestAIChat_NotConfigured(t *testing.T) {
	r := aiRouter(nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/api/ai/chat", map[string]any{
		"message": "hello",
	}))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, w.Body.String(), "AI service not configured")
}

func TestAISummary_KeywordFallback(t *testing.T) {
	r := aiRouter(nil)

	messages := url.QueryEscape(`[{"role":"user","content":"I felt anxious and needed safety"}]`)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ai/session/sess-1/summary?messages="+messages, nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	require.Equal(t, "sess-1", body["sessionId"])
	require.NotEmpty(t, body["generatedAt"])

	summary, ok := body["summary"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, []any{"anxious"}, summary["feelings"])
	require.Equal(t, []any{"safety"}, summary["needs"])
}

func TestAISummary_NoMessages(t *testing.T) {
	r := aiRouter(&cannedCompleter{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ai/session/sess-1/summary", nil))
	require.Equal(t, http.StatusOK, w.Code)

	summary, ok := decodeBody(t, w)["summary"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, summary["practiceNotes"], "in progress")
}
