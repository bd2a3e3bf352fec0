package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cedarpath/practice-api/internal/ai"
	"github.com/cedarpath/practice-api/internal/httperr"
	"github.com/cedarpath/practice-api/internal/middleware"
	"github.com/cedarpath/practice-api/internal/models"
)

type AIHandler struct {
	orchestrator *ai.Orchestrator
	log          *zap.SugaredLogger
}

func NewAIHandler(orch *ai.Orchestrator, log *zap.SugaredLogger) *AIHandler {
	return &AIHandler{
		orchestrator: orch,
		log:          log.Named("ai"),
	}
}

type AISessionRequest struct {
	Type     string   `json:"type"`
	Feelings []ai.Ref `json:"feelings"`
	Needs    []ai.Ref `json:"needs"`
	Scenario *ai.Ref  `json:"scenario"`
}

// CreateSession handles POST /api/ai/session: returns a fresh session id
// and the opening greeting for the chosen practice type.
func (h *AIHandler) CreateSession(c *gin.Context) {
	req := AISessionRequest{Type: string(models.SessionSelfEmpathy)}
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Invalid request body")
		return
	}

	if !models.ValidSessionType(req.Type) {
		httperr.BadRequest(c, "Invalid session type")
		return
	}

	greeting := ai.Greeting(req.Type, ai.SessionContext{
		Feelings: req.Feelings,
		Needs:    req.Needs,
		Scenario: req.Scenario,
	})

	suggestions := gin.H{}
	if len(req.Feelings) == 0 {
		suggestions["followUp"] = "What feelings are coming up for you in this situation?"
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionId":   uuid.NewString(),
		"type":        req.Type,
		"greeting":    greeting,
		"suggestions": suggestions,
		"createdAt":   time.Now().UTC().Format(time.RFC3339),
	})
}

type ChatRequest struct {
	SessionID string         `json:"sessionId"`
	Message   string         `json:"message"`
	Context   ai.ChatContext `json:"context"`
}

// Chat handles POST /api/ai/chat.
func (h *AIHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Invalid request body")
		return
	}

	if req.Message == "" {
		httperr.BadRequest(c, "Message is required")
		return
	}

	h.log.Debugw("chat request",
		"session_id", req.SessionID,
		"authenticated", c.GetBool(middleware.ContextAuthenticated),
	)

	result, err := h.orchestrator.Chat(c.Request.Context(), req.Message, req.Context)
	if err != nil {
		if errors.Is(err, ai.ErrNotConfigured) {
			httperr.Internal(c, "AI service not configured")
			return
		}
		httperr.Internal(c, "AI service error")
		return
	}

	c.JSON(http.StatusOK, result)
}

// Summary handles GET /api/ai/session/:id/summary. The transcript arrives
// as a JSON-encoded query parameter.
func (h *AIHandler) Summary(c *gin.Context) {
	sessionID := c.Param("id")

	var turns []ai.Turn
	if raw := c.Query("messages"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &turns); err != nil {
			turns = nil
		}
	}

	summary := h.orchestrator.Summarize(c.Request.Context(), turns)

	c.JSON(http.StatusOK, gin.H{
		"sessionId":   sessionID,
		"summary":     summary,
		"generatedAt": time.Now().UTC().Format(time.RFC3339),
	})
}
