package users

import (
	"github.com/gin-gonic/gin"
)

func SetupUserRoutes(rg *gin.RouterGroup, controller *Controller) {
	userRoutes := rg.Group("/users")
	{
		userRoutes.POST("", controller.Create) // POST /api/v1/users - Create user
		userRoutes.GET("", controller.List)    // GET /api/v1/users - List users
		userRoutes.GET("/:id", controller.Get) // GET /api/v1/users/:id - Get user by id
	}
}
