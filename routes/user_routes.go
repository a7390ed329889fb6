package routes

import (
	"github.com/gin-gonic/gin"

	"resourcehub/controllers"
	"resourcehub/middleware"
)

func UserRoutes(r *gin.RouterGroup) {
	userController := controllers.NewUserController()

	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("/me", userController.GetProfile)
		users.PUT("/me", userController.UpdateProfile)
		users.GET("/me/stats", userController.GetMyStats)

		// Co-manager user administration
		users.GET("/", userController.GetUsers)
		users.PUT("/:id/role", userController.ChangeRole)
		users.DELETE("/:id", userController.DeactivateUser)
	}
}
