package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/cedarpath/practice-api/internal/config"
	"github.com/cedarpath/practice-api/internal/httperr"
	"github.com/cedarpath/practice-api/internal/models"
	"github.com/cedarpath/practice-api/internal/store"
)

type SessionHandler struct {
	store *store.Store
	log   *zap.SugaredLogger
}

func NewSessionHandler(st *store.Store, log *zap.SugaredLogger) *SessionHandler {
	return &SessionHandler{
		store: st,
		log:   log.Named("sessions"),
	}
}

type CreateSessionRequest struct {
	UserID     string          `json:"userId"`
	GuestID    string          `json:"guestId"`
	Type       string          `json:"type"`
	ScenarioID string          `json:"scenarioId"`
	Feelings   json.RawMessage `json:"feelings"`
	Needs      json.RawMessage `json:"needs"`
}

// Create handles POST /api/sessions.
func (h *SessionHandler) Create(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Invalid request body")
		return
	}

	if req.Type != "" && !models.ValidSessionType(req.Type) {
		httperr.BadRequest(c, "Invalid session type")
		return
	}

	session, err := h.store.CreateSession(store.NewSession{
		Identity:   store.Identity{UserID: req.UserID, GuestID: req.GuestID},
		Type:       req.Type,
		ScenarioID: req.ScenarioID,
		Feelings:   datatypes.JSON(req.Feelings),
		Needs:      datatypes.JSON(req.Needs),
	})
	if err != nil {
		if errors.Is(err, store.ErrMissingIdentity) {
			httperr.BadRequest(c, "userId or guestId required")
			return
		}
		h.log.Errorw("create session error", "error", err)
		httperr.Internal(c, "Failed to create session")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        session.ID,
		"message":   "Session created",
		"createdAt": session.CreatedAt.UTC().Format(time.RFC3339),
	})
}

// List handles GET /api/sessions.
func (h *SessionHandler) List(c *gin.Context) {
	identity := identityFromQuery(c)
	if !identity.Valid() {
		httperr.BadRequest(c, "userId or guestId required")
		return
	}

	limit, offset := paginationFromQuery(c, config.SessionLimitDefault)

	sessions, err := h.store.ListSessions(identity, limit, offset)
	if err != nil {
		h.log.Errorw("list sessions error", "error", err)
		httperr.Internal(c, "Failed to get sessions")
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

// Get handles GET /api/sessions/:id.
func (h *SessionHandler) Get(c *gin.Context) {
	session, err := h.store.GetSession(c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httperr.NotFound(c, "Session not found")
			return
		}
		h.log.Errorw("get session error", "error", err)
		httperr.Internal(c, "Failed to get session")
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": session})
}

type UpdateSessionRequest struct {
	Feelings        *json.RawMessage `json:"feelings"`
	Needs           *json.RawMessage `json:"needs"`
	Messages        *json.RawMessage `json:"messages"`
	Summary         *json.RawMessage `json:"summary"`
	DurationSeconds *int             `json:"durationSeconds"`
	Completed       *bool            `json:"completed"`
}

// Update handles PUT and PATCH /api/sessions/:id. Absent fields are left
// untouched.
func (h *SessionHandler) Update(c *gin.Context) {
	var req UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Invalid request body")
		return
	}

	patch := store.SessionPatch{
		Feelings:        rawToJSON(req.Feelings),
		Needs:           rawToJSON(req.Needs),
		Messages:        rawToJSON(req.Messages),
		Summary:         rawToJSON(req.Summary),
		DurationSeconds: req.DurationSeconds,
		Completed:       req.Completed,
	}

	if _, err := h.store.UpdateSession(c.Param("id"), patch); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httperr.NotFound(c, "Session not found")
			return
		}
		h.log.Errorw("update session error", "error", err)
		httperr.Internal(c, "Failed to update session")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Session updated"})
}

// Delete handles DELETE /api/sessions/:id.
func (h *SessionHandler) Delete(c *gin.Context) {
	requester := c.Query("userId")
	if requester == "" {
		requester = c.Query("guestId")
	}
	if requester == "" {
		httperr.BadRequest(c, "userId required")
		return
	}

	if err := h.store.DeleteSession(c.Param("id"), requester); err != nil {
		h.log.Errorw("delete session error", "error", err)
		httperr.Internal(c, "Failed to delete session")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Session deleted"})
}

// ===============================
// Shared request helpers
// ===============================

func identityFromQuery(c *gin.Context) store.Identity {
	return store.Identity{
		UserID:  c.Query("userId"),
		GuestID: c.Query("guestId"),
	}
}

func paginationFromQuery(c *gin.Context, defaultLimit int) (limit, offset int) {
	limit = defaultLimit
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = v
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}

func rawToJSON(raw *json.RawMessage) *datatypes.JSON {
	if raw == nil {
		return nil
	}
	j := datatypes.JSON(*raw)
	return &j
}
