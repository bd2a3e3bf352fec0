package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/cedarpath/practice-api/internal/config"
	"github.com/cedarpath/practice-api/internal/logger"
	"github.com/cedarpath/practice-api/internal/models"
	"github.com/cedarpath/practice-api/internal/notify"
	"github.com/cedarpath/practice-api/internal/store"
)

var testDBSeq int

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	testDBSeq++
	dsn := fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared", testDBSeq)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Contact{},
		&models.Appointment{},
		&models.PracticeSession{},
		&models.CheckIn{},
		&models.UserProgress{},
	))

	return store.New(db, logger.Nop())
}

// newTestNotify builds a log-only notifier: no API key means nothing is
// ever sent, which is exactly what handler tests want.
func newTestNotify(t *testing.T) *notify.Service {
	t.Helper()
	svc := notify.NewService(&config.Config{}, logger.Nop())
	t.Cleanup(svc.Stop)
	return svc
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func init() {
	gin.SetMode(gin.TestMode)
}
