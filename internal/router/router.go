package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"

	"github.com/jmar008/dealaai/internal/handler"
	"github.com/jmar008/dealaai/internal/middleware"
)

// Setup registers all routes.
func Setup(
	h *server.Hertz,
	userHandler *handler.UserHandler,
	stockHandler *handler.StockHandler,
	chatHandler *handler.ChatHandler,
	healthHandler *handler.HealthHandler,
) {
	// Global middleware
	h.Use(middleware.Recovery())
	h.Use(middleware.Logger())
	h.Use(middleware.CORS())

	// Health check routes (no authentication required)
	h.GET("/ping", healthHandler.Ping)
	h.GET("/health/ready", healthHandler.Readiness)
	h.GET("/health/live", healthHandler.Liveness)

	apiV1 := h.Group("/api/v1")
	{
		// ============ Public routes (no authentication required) ============
		auth := apiV1.Group("/auth")
		{
			auth.POST("/login", userHandler.Login)
			auth.POST("/refresh", userHandler.RefreshToken)
		}

		// ============ Protected routes (JWT authentication required) ============
		authorized := apiV1.Group("")
		authorized.Use(userHandler.AuthMiddleware())
		{
			authorized.POST("/auth/logout", userHandler.Logout)

			// User management
			users := authorized.Group("/users")
			{
				users.GET("/me", userHandler.GetCurrentUser)
				users.POST("/change_password", userHandler.ChangePassword)
				users.GET("", userHandler.ListUsers)
				users.GET("/:id", userHandler.GetUser)
			}

			// Vehicle stock
			stock := authorized.Group("/stock")
			{
				stock.GET("", stockHandler.List)
				stock.GET("/search", stockHandler.Search)
				stock.GET("/stats", stockHandler.Stats)
				stock.GET("/export", stockHandler.Export)
				stock.GET("/:vin", stockHandler.Get)
			}

			// Assistant chat
			chat := authorized.Group("/chat")
			{
				chat.POST("/messages", chatHandler.SendMessage)
				chat.GET("/conversations", chatHandler.ListConversations)
				chat.GET("/conversations/:id", chatHandler.GetConversation)
				chat.DELETE("/conversations/:id", chatHandler.DeleteConversation)
				chat.DELETE("/conversations", chatHandler.ClearAll)
			}
		}
	}
}
