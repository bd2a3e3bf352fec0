package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/cedarpath/practice-api/internal/config"
	"github.com/cedarpath/practice-api/internal/httperr"
	"github.com/cedarpath/practice-api/internal/store"
)

type ProgressHandler struct {
	store *store.Store
	log   *zap.SugaredLogger
}

func NewProgressHandler(st *store.Store, log *zap.SugaredLogger) *ProgressHandler {
	return &ProgressHandler{
		store: st,
		log:   log.Named("progress"),
	}
}

// Get handles GET /api/progress.
func (h *ProgressHandler) Get(c *gin.Context) {
	identity := identityFromQuery(c)
	if !identity.Valid() {
		httperr.BadRequest(c, "userId or guestId required")
		return
	}

	progress, err := h.store.GetProgress(identity.Key())
	if err != nil {
		h.log.Errorw("get progress error", "error", err)
		httperr.Internal(c, "Failed to get progress")
		return
	}

	c.JSON(http.StatusOK, gin.H{"progress": progress})
}

type CheckInRequest struct {
	UserID      string          `json:"userId"`
	GuestID     string          `json:"guestId"`
	Feelings    json.RawMessage `json:"feelings"`
	Needs       json.RawMessage `json:"needs"`
	EnergyLevel *int            `json:"energyLevel"`
	Notes       string          `json:"notes"`
}

// CheckIn handles POST /api/progress/check-in. One check-in per identity
// per calendar day; a repeat overwrites the earlier entry.
func (h *ProgressHandler) CheckIn(c *gin.Context) {
	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Invalid request body")
		return
	}

	var feelings []json.RawMessage
	if err := json.Unmarshal(req.Feelings, &feelings); err != nil || len(feelings) == 0 {
		httperr.BadRequest(c, "At least one feeling required")
		return
	}

	identity := store.Identity{UserID: req.UserID, GuestID: req.GuestID}
	checkIn, err := h.store.SaveCheckIn(store.NewCheckIn{
		Identity:    identity,
		Feelings:    datatypes.JSON(req.Feelings),
		Needs:       datatypes.JSON(req.Needs),
		EnergyLevel: req.EnergyLevel,
		Notes:       req.Notes,
	})
	if err != nil {
		if errors.Is(err, store.ErrMissingIdentity) {
			httperr.BadRequest(c, "userId or guestId required")
			return
		}
		h.log.Errorw("save check-in error", "error", err)
		httperr.Internal(c, "Failed to save check-in")
		return
	}

	progress, err := h.store.GetProgress(identity.Key())
	if err != nil {
		h.log.Errorw("get progress after check-in error", "error", err)
		httperr.Internal(c, "Failed to save check-in")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       checkIn.ID,
		"date":     checkIn.Date,
		"message":  "Check-in saved",
		"progress": progress,
	})
}

// ListCheckIns handles GET /api/progress/check-ins.
func (h *ProgressHandler) ListCheckIns(c *gin.Context) {
	identity := identityFromQuery(c)
	if !identity.Valid() {
		httperr.BadRequest(c, "userId or guestId required")
		return
	}

	limit, offset := paginationFromQuery(c, config.CheckInLimitDefault)

	checkIns, err := h.store.ListCheckIns(identity, limit, offset)
	if err != nil {
		h.log.Errorw("list check-ins error", "error", err)
		httperr.Internal(c, "Failed to get check-ins")
		return
	}

	c.JSON(http.StatusOK, gin.H{"checkIns": checkIns})
}

// Insights handles GET /api/progress/insights: derived highlights from the
// accumulated counters.
func (h *ProgressHandler) Insights(c *gin.Context) {
	identity := identityFromQuery(c)
	if !identity.Valid() {
		httperr.BadRequest(c, "userId or guestId required")
		return
	}

	progress, err := h.store.GetProgress(identity.Key())
	if err != nil {
		h.log.Errorw("get insights error", "error", err)
		httperr.Internal(c, "Failed to get insights")
		return
	}

	insights := []gin.H{}

	if top := topCounts(progress.FeelingCounts, 5); len(top) > 0 {
		insights = append(insights, gin.H{
			"type":  "top_feelings",
			"title": "Your most common feelings",
			"data":  top,
		})
	}

	if top := topCounts(progress.NeedCounts, 5); len(top) > 0 {
		insights = append(insights, gin.H{
			"type":  "top_needs",
			"title": "Your most explored needs",
			"data":  top,
		})
	}

	if progress.CurrentStreak >= 3 {
		insights = append(insights, gin.H{
			"type":    "streak",
			"title":   fmt.Sprintf("%d day streak!", progress.CurrentStreak),
			"message": "Keep up the great work with your daily practice.",
		})
	}

	if progress.TotalSessions >= 10 {
		insights = append(insights, gin.H{
			"type":    "milestone",
			"title":   fmt.Sprintf("%d sessions completed", progress.TotalSessions),
			"message": "You're building a strong practice habit.",
		})
	}

	c.JSON(http.StatusOK, gin.H{"insights": insights})
}

type countEntry struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

func topCounts(counts map[string]int, n int) []countEntry {
	entries := make([]countEntry, 0, len(counts))
	for id, count := range counts {
		entries = append(entries, countEntry{ID: id, Count: count})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].ID < entries[j].ID
	})

	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
