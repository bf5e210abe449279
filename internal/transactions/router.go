package transactions

import (
	"ledgerly/internal/shared/config"
	"ledgerly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupTransactionRoutes registers the transaction routes. Every route is
// guarded: transactions are always scoped to the authenticated user.
func SetupTransactionRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config, resolver middleware.UserResolver) {
	transactionRoutes := rg.Group("/transactions")
	transactionRoutes.Use(middleware.JWTAuthWithConfig(cfg, resolver))
	{
		transactionRoutes.POST("", controller.Create)       // POST /api/v1/transactions - Create transaction
		transactionRoutes.GET("", controller.List)          // GET /api/v1/transactions - List own transactions
		transactionRoutes.GET("/:id", controller.Get)       // GET /api/v1/transactions/:id - Get one transaction
		transactionRoutes.DELETE("/:id", controller.Delete) // DELETE /api/v1/transactions/:id - Delete transaction
	}
}
