package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/cedarpath/practice-api/internal/config"
)

const (
	ContextUserID        = "userID"
	ContextAuthenticated = "authenticated"
)

// OptionalAuth enriches the request with identity when a valid session
// token is present and falls through silently otherwise. It never writes a
// response. Without a configured secret it is a permanent no-op so local
// development works without the identity provider.
func OptionalAuth(cfg *config.Config, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authenticate(c, cfg, log)
	}
}

// RequireAuth runs the same verification and converts "not authenticated"
// into a 401.
func RequireAuth(cfg *config.Config, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authenticate(c, cfg, log)

		if !c.GetBool(ContextAuthenticated) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Authentication required",
				"message": "Please sign in to access this feature",
			})
			return
		}
	}
}

func authenticate(c *gin.Context, cfg *config.Config, log *zap.SugaredLogger) {
	c.Set(ContextAuthenticated, false)

	if cfg.AuthSecret == "" {
		return
	}

	tokenString := bearerToken(c)
	if tokenString == "" {
		if cookie, err := c.Cookie(config.SessionCookie); err == nil {
			tokenString = cookie
		}
	}
	if tokenString == "" {
		return
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(cfg.AuthSecret), nil
	})
	if err != nil || !token.Valid {
		// Expired or garbage tokens downgrade to anonymous.
		if err != nil && !strings.Contains(err.Error(), "expired") {
			log.Warnw("token verification failed", "error", err.Error())
		}
		return
	}

	if sub, subErr := token.Claims.GetSubject(); subErr == nil && sub != "" {
		c.Set(ContextUserID, sub)
		c.Set(ContextAuthenticated, true)
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
