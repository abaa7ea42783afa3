package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eaglebank/customer-account-service/internal/middleware"
)

// NewRouter builds the service's gin engine. Recovery sits inside the request
// logger so a recovered panic is logged with its 500 status.
func NewRouter(accounts *AccountHandler, log *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.LoggingMiddleware(log),
		middleware.Recovery(log),
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	accounts.RegisterRoutes(router.Group("/api/v1/accounts"))
	return router
}
