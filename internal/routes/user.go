package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ducielo/rencontre-coeur-brise/internal/handlers"
	"github.com/ducielo/rencontre-coeur-brise/internal/middleware"
)

func RegisterUserRoutes(r gin.IRouter) {
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		// Specific paths first, wildcard last
		users.GET("", handlers.ListUsers)
		users.GET("/profile", handlers.GetMe)
		users.PUT("/profile", handlers.UpdateProfile)
		users.GET("/discovery", handlers.GetDiscovery)
		users.POST("/ping", handlers.Ping)
		users.DELETE("/profile", handlers.DeactivateUser)
		users.GET("/:id", handlers.GetUser)
	}
}
