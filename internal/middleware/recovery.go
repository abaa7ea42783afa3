package middleware

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Recovery turns a handler panic into a 500 with the standard error body.
func Recovery(log *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		log.ErrorContext(c.Request.Context(), "panic recovered",
			"path", c.Request.URL.Path,
			"requestId", GetRequestID(c),
			"panic", recovered,
		)
		RespondWithError(c, http.StatusInternalServerError, "Internal server error")
	})
}
