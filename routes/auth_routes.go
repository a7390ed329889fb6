package routes

import (
	"github.com/gin-gonic/gin"

	"resourcehub/controllers"
	"resourcehub/middleware"
)

func AuthRoutes(r *gin.RouterGroup) {
	authController := controllers.NewAuthController()

	auth := r.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.Refresh)

		protected := auth.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.POST("/change-password", authController.ChangePassword)
		}
	}
}
