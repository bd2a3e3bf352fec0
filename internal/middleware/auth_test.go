package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/cedarpath/practice-api/internal/config"
	"github.com/cedarpath/practice-api/internal/logger"
)

const testAuthSecret = "test-secret-at-least-32-chars-long!!"

func signToken(t *testing.T, secret, subject string, expiry time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(expiry).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func authRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/optional", OptionalAuth(cfg, logger.Nop()), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userID":        c.GetString(ContextUserID),
			"authenticated": c.GetBool(ContextAuthenticated),
		})
	})
	r.GET("/private", RequireAuth(cfg, logger.Nop()), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": c.GetString(ContextUserID)})
	})
	return r
}

func TestRequireAuth_NoToken(t *testing.T) {
	r := authRouter(&config.Config{AuthSecret: testAuthSecret})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Authentication required")
}

func TestRequireAuth_ValidBearerToken(t *testing.T) {
	r := authRouter(&config.Config{AuthSecret: testAuthSecret})

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testAuthSecret, "user-42", time.Hour))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "user-42")
}

func TestRequireAuth_SessionCookie(t *testing.T) {
	r := authRouter(&config.Config{AuthSecret: testAuthSecret})

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{
		Name:  config.SessionCookie,
		Value: signToken(t, testAuthSecret, "user-42", time.Hour),
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuth_WrongSecretRejected(t *testing.T) {
	r := authRouter(&config.Config{AuthSecret: testAuthSecret})

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "different-secret-also-32-chars!!!!!", "user-42", time.Hour))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuth_ExpiredTokenDowngradesToAnonymous(t *testing.T) {
	r := authRouter(&config.Config{AuthSecret: testAuthSecret})

	req := httptest.NewRequest(http.MethodGet, "/optional", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testAuthSecret, "user-42", -time.Hour))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"authenticated":false`)
}

func TestOptionalAuth_NoSecretIsNoOp(t *testing.T) {
	r := authRouter(&config.Config{})

	req := httptest.NewRequest(http.MethodGet, "/optional", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testAuthSecret, "user-42", time.Hour))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"authenticated":false`)
}

func TestOptionalAuth_GarbageTokenIgnored(t *testing.T) {
	r := authRouter(&config.Config{AuthSecret: testAuthSecret})

	req := httptest.NewRequest(http.MethodGet, "/optional", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"authenticated":false`)
}
