package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gigflow_backend/internal/handlers"
	"gigflow_backend/internal/logger"
	"gigflow_backend/internal/middleware"
	"gigflow_backend/ws"
)

// RegisterRoutes wires all HTTP and websocket routes.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	wsHandler *ws.Handler,
) {
	ginRouter.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to GigFlow API",
			"version": "1.0.0",
		})
	})

	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.GigHandler.RegisterRoutes(api)
		appHandlers.BidHandler.RegisterRoutes(api)
		appHandlers.NotificationHandler.RegisterRoutes(api)
	}

	wsGroup := ginRouter.Group("/ws")
	wsGroup.Use(middleware.AuthMiddleware())
	{
		wsGroup.GET("", wsHandler.ServeWS)
	}
	logger.Info("WebSocket route /ws registered")
}
