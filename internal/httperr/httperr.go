package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Client-facing error body. Message is safe to show to the user; internal
// detail stays in the logs.
type HTTPError struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func Write(c *gin.Context, status int, errText, message string) {
	c.JSON(status, HTTPError{
		Error:   errText,
		Message: message,
	})
}

func BadRequest(c *gin.Context, errText string) {
	Write(c, http.StatusBadRequest, errText, "")
}

func NotFound(c *gin.Context, errText string) {
	Write(c, http.StatusNotFound, errText, "")
}

func Internal(c *gin.Context, errText string) {
	Write(c, http.StatusInternalServerError, errText, "")
}
