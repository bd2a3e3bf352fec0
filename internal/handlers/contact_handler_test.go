package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/cedarpath/practice-api/internal/logger"
	"github.com/cedarpath/practice-api/internal/store"
)

func contactRouter(t *testing.T) *gin.Engine {
	t.Helper()
	h := NewContactHandler(newTestStore(t), newTestNotify(t), logger.Nop())
	r := gin.New()
	r.POST("/api/contact", h.Create)
	return r
}

func validContactBody() map[string]any {
	return map[string]any{
		"firstName": "Dana",
		"lastName":  "Reyes",
		"email":     "dana@example.com",
		"message":   "I'd like to ask about couples sessions.",
		"consent":   true,
	}
}

func TestContactCreate_Success(t *testing.T) {
	r := contactRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/api/contact", validContactBody()))

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	require.Equal(t, "success", body["status"])
	require.Equal(t, "Thank you for your inquiry. We will respond shortly.", body["message"])
}

func TestContactCreate_MissingFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{"no email", func(b map[string]any) { delete(b, "email") }},
		{"no message", func(b map[string]any) { delete(b, "message") }},
		{"no consent", func(b map[string]any) { b["consent"] = false }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := contactRouter(t)
			body := validContactBody()
			tc.mutate(body)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/api/contact", body))
			require.Equal(t, http.StatusBadRequest, w.Code)
			require.Contains(t, w.Body.String(), "Missing required fields")
		})
	}
}

func TestContactCreate_InvalidEmail(t *testing.T) {
	r := contactRouter(t)
	body := validContactBody()
	body["email"] = "not-an-email"

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/api/contact", body))
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Invalid email format")
}

func TestContactCreate_MessageTooLong(t *testing.T) {
	r := contactRouter(t)
	body := validContactBody()
	body["message"] = strings.Repeat("a", 5001)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/api/contact", body))
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Message too long")
}

func TestContactCreate_AnonymousWhenNoName(t *testing.T) {
	st := newTestStore(t)
	h := NewContactHandler(st, newTestNotify(t), logger.Nop())
	r := gin.New()
	r.POST("/api/contact", h.Create)

	body := validContactBody()
	delete(body, "firstName")
	delete(body, "lastName")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/api/contact", body))
	require.Equal(t, http.StatusOK, w.Code)

	contacts, err := st.ListContacts(store.ContactFilter{Limit: 10})
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	require.Equal(t, "Anonymous", contacts[0].Name)
}
