package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cedarpath/practice-api/internal/config"
	"github.com/cedarpath/practice-api/internal/httperr"
	"github.com/cedarpath/practice-api/internal/httpresp"
	"github.com/cedarpath/practice-api/internal/models"
	"github.com/cedarpath/practice-api/internal/store"
)

// AdminHandler is the practitioner-facing surface: inquiry triage,
// appointment status changes, dashboard totals. Mounted behind RequireAuth.
type AdminHandler struct {
	store *store.Store
	log   *zap.SugaredLogger
}

func NewAdminHandler(st *store.Store, log *zap.SugaredLogger) *AdminHandler {
	return &AdminHandler{
		store: st,
		log:   log.Named("admin"),
	}
}

// ListContacts handles GET /api/admin/contacts.
func (h *AdminHandler) ListContacts(c *gin.Context) {
	limit, offset := paginationFromQuery(c, config.ContactLimitDefault)

	contacts, err := h.store.ListContacts(store.ContactFilter{
		Status: c.Query("status"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		h.log.Errorw("list contacts error", "error", err)
		httperr.Internal(c, "Failed to list contacts")
		return
	}

	httpresp.List(c, contacts)
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateContactStatus handles PATCH /api/admin/contacts/:id/status.
func (h *AdminHandler) UpdateContactStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "Invalid contact id")
		return
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Missing required fields")
		return
	}

	if err := h.store.UpdateContactStatus(uint(id), req.Status); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httperr.NotFound(c, "Contact not found")
			return
		}
		h.log.Errorw("update contact status error", "error", err)
		httperr.Internal(c, "Failed to update contact")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Contact updated"})
}

// ListAppointments handles GET /api/admin/appointments.
func (h *AdminHandler) ListAppointments(c *gin.Context) {
	limit, offset := paginationFromQuery(c, config.AppointmentLimitDefault)

	appointments, err := h.store.ListAppointments(store.AppointmentFilter{
		Status:   c.Query("status"),
		FromDate: c.Query("fromDate"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		h.log.Errorw("list appointments error", "error", err)
		httperr.Internal(c, "Failed to list appointments")
		return
	}

	httpresp.List(c, appointments)
}

// UpdateAppointmentStatus handles PATCH /api/admin/appointments/:id/status.
func (h *AdminHandler) UpdateAppointmentStatus(c *gin.Context) {
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Missing required fields")
		return
	}

	if !models.ValidAppointmentStatus(req.Status) {
		httperr.BadRequest(c, "Invalid appointment status")
		return
	}

	if err := h.store.UpdateAppointmentStatus(c.Param("id"), req.Status); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httperr.NotFound(c, "Appointment not found")
			return
		}
		h.log.Errorw("update appointment status error", "error", err)
		httperr.Internal(c, "Failed to update appointment")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment updated"})
}

// Stats handles GET /api/admin/stats.
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.store.GetDashboardStats()
	if err != nil {
		h.log.Errorw("dashboard stats error", "error", err)
		httperr.Internal(c, "Failed to load stats")
		return
	}

	httpresp.OK(c, stats)
}
