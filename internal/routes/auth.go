package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ducielo/rencontre-coeur-brise/internal/handlers"
	"github.com/ducielo/rencontre-coeur-brise/internal/middleware"
)

func RegisterAuthRoutes(r gin.IRouter) {
	r.POST("/register", handlers.Register)
	r.POST("/login", handlers.Login)
	r.GET("/profile", middleware.AuthMiddleware(), handlers.GetMe)
	r.POST("/logout", middleware.AuthMiddleware(), handlers.Logout)
}
