// Package resp writes the JSON envelope every endpoint uses:
// {success, message, data}.
package resp

import (
	"log/slog"
	"net/http"

	"backend/pkg/apperr"

	"github.com/gin-gonic/gin"
)

func envelope(success bool, message string, data any) gin.H {
	return gin.H{"success": success, "message": message, "data": data}
}

func OK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, envelope(true, message, data))
}

func Created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, envelope(true, message, data))
}

func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, envelope(false, msg, nil))
}

func NotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, envelope(false, msg, nil))
}

func Unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, envelope(false, msg, nil))
}

func Forbidden(c *gin.Context, msg string) {
	c.JSON(http.StatusForbidden, envelope(false, msg, nil))
}

func TooManyRequests(c *gin.Context, msg string) {
	c.JSON(http.StatusTooManyRequests, envelope(false, msg, nil))
}

func ServerError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, envelope(false, "internal server error", nil))
}

// Error maps a service error to the envelope by kind. Unexpected errors are
// logged here and never leak their message to the client.
func Error(c *gin.Context, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		NotFound(c, err.Error())
	case apperr.KindConflict, apperr.KindValidation:
		BadRequest(c, err.Error())
	default:
		slog.Error("request failed", "path", c.FullPath(), "error", err)
		ServerError(c)
	}
}
