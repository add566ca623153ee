package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ducielo/rencontre-coeur-brise/internal/handlers"
	"github.com/ducielo/rencontre-coeur-brise/internal/middleware"
)

func RegisterUploadRoutes(r gin.IRouter) {
	upload := r.Group("/upload")
	upload.Use(middleware.AuthMiddleware())
	{
		upload.POST("/photo", handlers.UploadPhoto)
		upload.DELETE("/photo/:photoId", handlers.DeletePhoto)
		upload.PATCH("/photo/:photoId/primary", handlers.SetPrimaryPhoto)
	}
}
