package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/safar/go-lounge-pos/internal/apperr"
)

func respondJSON(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

func statusOf(kind apperr.Kind) int {
	switch kind {
	case apperr.Unauthenticated:
		return http.StatusUnauthorized
	case apperr.Forbidden:
		return http.StatusForbidden
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.InvalidState:
		return http.StatusConflict
	case apperr.InvalidArgument:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {"error": message}. Server-side failures are logged
// with their cause and reported with a generic message.
func respondError(c *gin.Context, log *slog.Logger, err error) {
	kind := apperr.KindOf(err)
	status := statusOf(kind)

	message := "Internal server error"
	if status < http.StatusInternalServerError {
		var e *apperr.Error
		if errors.As(err, &e) {
			message = e.Message
		} else {
			message = err.Error()
		}
	} else {
		log.Error("request failed",
			slog.String("request_id", c.GetString(requestIDKey)),
			slog.String("kind", kind.String()),
			slog.Any("error", err),
		)
	}

	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

func respondBadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": message})
}
