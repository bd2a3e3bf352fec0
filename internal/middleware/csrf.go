package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cedarpath/practice-api/internal/config"
)

// Double-submit cookie pattern: the SPA reads the csrf_token cookie and
// echoes it back in the x-csrf-token header on state-changing requests.

// CSRFToken handles GET /api/csrf-token: issues a fresh random token in a
// JS-readable cookie and in the response body.
func CSRFToken(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		buf := make([]byte, config.CSRFTokenLength)
		if _, err := rand.Read(buf); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
			return
		}
		token := hex.EncodeToString(buf)

		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(
			config.CSRFCookieName,
			token,
			int(config.CSRFCookieMaxAge.Seconds()),
			"/",
			"",
			cfg.IsProduction(),
			false, // the client needs to read it
		)

		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}

// CSRFProtection validates cookie==header on state-changing requests.
func CSRFProtection(cfg *config.Config, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		for _, path := range config.CSRFSkipPaths {
			if strings.HasPrefix(c.Request.URL.Path, path) {
				c.Next()
				return
			}
		}

		if !cfg.CSRFEnforced() {
			c.Next()
			return
		}

		cookieToken, err := c.Cookie(config.CSRFCookieName)
		headerToken := c.GetHeader(config.CSRFHeaderName)

		if err != nil || cookieToken == "" || headerToken == "" {
			log.Warnw("missing CSRF token",
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
				"has_cookie", err == nil && cookieToken != "",
				"has_header", headerToken != "",
			)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":   "CSRF token missing",
				"message": "Please refresh the page and try again",
			})
			return
		}

		if subtle.ConstantTimeCompare([]byte(cookieToken), []byte(headerToken)) != 1 {
			log.Warnw("CSRF token mismatch",
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
			)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":   "CSRF token invalid",
				"message": "Please refresh the page and try again",
			})
			return
		}

		c.Next()
	}
}
