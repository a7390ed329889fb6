package routes

import (
	"github.com/gin-gonic/gin"

	"resourcehub/controllers"
	"resourcehub/middleware"
)

func FileRoutes(r *gin.RouterGroup) {
	fileController := controllers.NewFileController()

	files := r.Group("/files")
	{
		files.GET("/", fileController.GetFiles)
		files.GET("/:id", fileController.GetFile)

		protected := files.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.POST("/upload", fileController.RegisterUploads)
			protected.POST("/link", fileController.RegisterLink)
			protected.DELETE("/:id", fileController.DeleteFile)
		}
	}
}
