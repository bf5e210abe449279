package auth

import (
	"ledgerly/internal/shared/config"
	"ledgerly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles auth-related routes
type Router struct {
	controller *Controller
	config     *config.Config
	resolver   middleware.UserResolver
}

// NewRouter creates a new auth router
func NewRouter(controller *Controller, cfg *config.Config, resolver middleware.UserResolver) *Router {
	return &Router{
		controller: controller,
		config:     cfg,
		resolver:   resolver,
	}
}

// SetupRoutes registers all auth routes
func (authRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		// Public routes (no authentication required)
		auth.POST("/register", authRouter.controller.Register)
		auth.POST("/login", authRouter.controller.Login)

		// Protected routes (authentication required)
		protected := auth.Group("")
		protected.Use(middleware.JWTAuthWithConfig(authRouter.config, authRouter.resolver))
		{
			protected.GET("/getCurrentUser", authRouter.controller.GetCurrentUser)
			protected.GET("/refreshToken", authRouter.controller.RefreshToken)
			protected.DELETE("/logout", authRouter.controller.Logout)
		}
	}
}
