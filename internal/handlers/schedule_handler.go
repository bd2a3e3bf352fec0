package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cedarpath/practice-api/internal/config"
	"github.com/cedarpath/practice-api/internal/httperr"
	"github.com/cedarpath/practice-api/internal/notify"
	"github.com/cedarpath/practice-api/internal/store"
	"github.com/cedarpath/practice-api/internal/validators"
)

type ScheduleHandler struct {
	store  *store.Store
	notify *notify.Service
	log    *zap.SugaredLogger
}

func NewScheduleHandler(st *store.Store, nt *notify.Service, log *zap.SugaredLogger) *ScheduleHandler {
	return &ScheduleHandler{
		store:  st,
		notify: nt,
		log:    log.Named("schedule"),
	}
}

type ScheduleRequest struct {
	Service struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Duration int    `json:"duration"`
	} `json:"service"`
	Date string `json:"date"` // YYYY-MM-DD
	Time int    `json:"time"` // HHMM, e.g. 1430
	Client struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
		Phone     string `json:"phone"`
		Message   string `json:"message"`
		Consent   bool   `json:"consent"`
	} `json:"client"`
}

// Create handles POST /api/schedule. Like the contact form, storage and
// both emails are best-effort; only input validation fails the request.
func (h *ScheduleHandler) Create(c *gin.Context) {
	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Invalid request body")
		return
	}

	if req.Service.Name == "" || req.Date == "" || req.Time == 0 ||
		req.Client.Email == "" || !req.Client.Consent {
		httperr.BadRequest(c, "Missing required fields")
		return
	}
	if !validators.IsEmailValid(req.Client.Email) {
		httperr.BadRequest(c, "Invalid email format")
		return
	}
	if len(req.Client.Message) > config.ScheduleMessageMaxLength {
		httperr.BadRequest(c, "Message too long (max 2000 characters)")
		return
	}

	parsed, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		httperr.BadRequest(c, "Invalid date")
		return
	}

	formattedDate := parsed.Format("Monday, January 2, 2006")
	formattedTime := formatClockTime(req.Time)

	ap := store.NewAppointment{
		ID:              generateAppointmentID(),
		ServiceName:     req.Service.Name,
		ServiceDuration: req.Service.Duration,
		ServiceType:     req.Service.ID,
		Date:            formattedDate,
		Time:            formattedTime,
		ClientName:      strings.TrimSpace(req.Client.FirstName + " " + req.Client.LastName),
		ClientEmail:     req.Client.Email,
		ClientPhone:     req.Client.Phone,
		ClientNotes:     req.Client.Message,
	}

	h.log.Infow("new appointment scheduled",
		"id", ap.ID,
		"service", ap.ServiceName,
		"date", formattedDate,
	)

	if _, err := h.store.SaveAppointment(ap); err != nil {
		h.log.Errorw("failed to save appointment", "id", ap.ID, "error", err)
	}

	email := notify.AppointmentEmail{
		ServiceName:     ap.ServiceName,
		ServiceDuration: ap.ServiceDuration,
		Date:            formattedDate,
		Time:            formattedTime,
		ClientName:      ap.ClientName,
		ClientEmail:     ap.ClientEmail,
		ClientPhone:     ap.ClientPhone,
		ClientNotes:     ap.ClientNotes,
	}
	h.notify.SendAppointmentNotification(email)
	h.notify.SendAppointmentConfirmation(email)

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Appointment request submitted successfully",
		"appointment": gin.H{
			"id":      ap.ID,
			"service": ap.ServiceName,
			"date":    formattedDate,
			"time":    formattedTime,
		},
	})
}

func generateAppointmentID() string {
	buf := make([]byte, 4)
	_, _ = rand.Read(buf)
	return "apt_" + strconv.FormatInt(time.Now().UnixMilli(), 36) + hex.EncodeToString(buf)
}

// formatClockTime renders an HHMM integer (e.g. 1430) as "2:30 PM".
func formatClockTime(t int) string {
	hour := t / 100
	minute := t % 100

	ampm := "AM"
	if hour >= 12 {
		ampm = "PM"
	}

	displayHour := hour
	switch {
	case hour > 12:
		displayHour = hour - 12
	case hour == 0:
		displayHour = 12
	}

	return fmt.Sprintf("%d:%02d %s", displayHour, minute, ampm)
}
