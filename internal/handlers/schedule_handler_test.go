package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/cedarpath/practice-api/internal/logger"
	"github.com/cedarpath/practice-api/internal/store"
)

func scheduleRouter(t *testing.T, st *store.Store) *gin.Engine {
	t.Helper()
	h := NewScheduleHandler(st, newTestNotify(t), logger.Nop())
	r := gin.New()
	r.POST("/api/schedule", h.Create)
	return r
}

func validScheduleBody() map[string]any {
	return map[string]any{
		"service": map[string]any{
			"id":       "individual",
			"name":     "Individual Session",
			"duration": 50,
		},
		"date": "2026-04-15",
		"time": 1430,
		"client": map[string]any{
			"firstName": "Dana",
			"lastName":  "Reyes",
			"email":     "dana@example.com",
			"consent":   true,
		},
	}
}

func TestScheduleCreate_Success(t *testing.T) {
	st := newTestStore(t)
	r := scheduleRouter(t, st)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/api/schedule", validScheduleBody()))

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	require.Equal(t, "success", body["status"])

	appointment, ok := body["appointment"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, appointment["id"], "apt_")
	require.Equal(t, "Wednesday, April 15, 2026", appointment["date"])
	require.Equal(t, "2:30 PM", appointment["time"])

	saved, err := st.ListAppointments(store.AppointmentFilter{Limit: 10})
	require.NoError(t, err)
	require.Len(t, saved, 1)
	require.Equal(t, "pending", saved[0].Status)
	require.Equal(t, "Dana Reyes", saved[0].ClientName)
}

func TestScheduleCreate_MissingFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{"no service name", func(b map[string]any) { b["service"] = map[string]any{} }},
		{"no date", func(b map[string]any) { delete(b, "date") }},
		{"no time", func(b map[string]any) { delete(b, "time") }},
		{"no consent", func(b map[string]any) {
			b["client"] = map[string]any{"email": "dana@example.com", "consent": false}
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := scheduleRouter(t, newTestStore(t))
			body := validScheduleBody()
			tc.mutate(body)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/api/schedule", body))
			require.Equal(t, http.StatusBadRequest, w.Code)
			require.Contains(t, w.Body.String(), "Missing required fields")
		})
	}
}

func TestScheduleCreate_InvalidDate(t *testing.T) {
	r := scheduleRouter(t, newTestStore(t))
	body := validScheduleBody()
	body["date"] = "April 15th"

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/api/schedule", body))
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Invalid date")
}

func TestFormatClockTime(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{900, "9:00 AM"},
		{1430, "2:30 PM"},
		{1200, "12:00 PM"},
		{5, "12:05 AM"},
		{2359, "11:59 PM"},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, formatClockTime(tc.in))
	}
}
