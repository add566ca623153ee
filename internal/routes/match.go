package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ducielo/rencontre-coeur-brise/internal/handlers"
	"github.com/ducielo/rencontre-coeur-brise/internal/middleware"
)

func RegisterMatchRoutes(r gin.IRouter) {
	matches := r.Group("/matches")
	matches.Use(middleware.AuthMiddleware())
	{
		matches.POST("/like", handlers.SendLike)
		matches.GET("", handlers.GetMatches)
		matches.GET("/likes", handlers.GetReceivedLikes)
		matches.GET("/stats", handlers.GetLikeStats)
		matches.DELETE("/:matchId", handlers.Unmatch)
	}
}
