package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ducielo/rencontre-coeur-brise/internal/handlers"
	"github.com/ducielo/rencontre-coeur-brise/internal/middleware"
)

func RegisterMessageRoutes(r gin.IRouter) {
	messages := r.Group("/messages")
	messages.Use(middleware.AuthMiddleware())
	{
		messages.POST("", middleware.MessageRateLimit(), handlers.SendMessage)
		messages.GET("/conversation/:otherUserId", handlers.GetConversation)
		messages.POST("/:messageId/read", handlers.MarkMessageRead)
		messages.GET("/unread-count", handlers.GetUnreadCount)
	}
}
