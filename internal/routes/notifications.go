package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ducielo/rencontre-coeur-brise/internal/handlers"
	"github.com/ducielo/rencontre-coeur-brise/internal/middleware"
)

func RegisterNotificationRoutes(r gin.IRouter) {
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware())
	{
		notifications.GET("", handlers.GetNotifications)
		notifications.GET("/unread-count", handlers.GetNotificationUnreadCount)
		notifications.GET("/stats", handlers.GetDailyStats)
		notifications.PUT("/:id/read", handlers.MarkNotificationRead)
		notifications.PUT("/read-all", handlers.MarkAllNotificationsRead)
	}
}
