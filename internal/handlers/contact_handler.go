package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cedarpath/practice-api/internal/config"
	"github.com/cedarpath/practice-api/internal/httperr"
	"github.com/cedarpath/practice-api/internal/notify"
	"github.com/cedarpath/practice-api/internal/store"
	"github.com/cedarpath/practice-api/internal/validators"
)

type ContactHandler struct {
	store  *store.Store
	notify *notify.Service
	log    *zap.SugaredLogger
}

func NewContactHandler(st *store.Store, nt *notify.Service, log *zap.SugaredLogger) *ContactHandler {
	return &ContactHandler{
		store:  st,
		notify: nt,
		log:    log.Named("contact"),
	}
}

type ContactRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Message   string `json:"message"`
	Consent   bool   `json:"consent"`
}

// Create handles POST /api/contact. Persistence and email are secondary
// effects: their failures are logged and the submitter still gets a
// success as long as the input was valid.
func (h *ContactHandler) Create(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Invalid request body")
		return
	}

	if req.Email == "" || req.Message == "" || !req.Consent {
		httperr.BadRequest(c, "Missing required fields")
		return
	}
	if !validators.IsEmailValid(req.Email) {
		httperr.BadRequest(c, "Invalid email format")
		return
	}
	if len(req.Message) > config.ContactMessageMaxLength {
		httperr.BadRequest(c, "Message too long (max 5000 characters)")
		return
	}

	name := strings.TrimSpace(strings.Join(nonEmpty(req.FirstName, req.LastName), " "))
	if name == "" {
		name = "Anonymous"
	}

	h.log.Infow("new contact form submission",
		"name", name,
		"message_length", len(req.Message),
	)

	if contact, err := h.store.SaveContact(store.NewContact{
		Name:    name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	}); err != nil {
		h.log.Errorw("failed to save contact", "error", err)
	} else {
		h.log.Debugw("contact saved", "id", contact.ID)
	}

	email := notify.ContactEmail{
		Name:    name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	}
	h.notify.SendContactNotification(email)
	h.notify.SendContactConfirmation(email)

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Thank you for your inquiry. We will respond shortly.",
	})
}

func nonEmpty(parts ...string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, strings.TrimSpace(p))
		}
	}
	return out
}
