// api/routes/router.go
package routes

import (
	"ledgerly/internal/auth"
	"ledgerly/internal/shared/config"
	"ledgerly/internal/shared/database"
	"ledgerly/internal/transactions"
	"ledgerly/internal/users"
	"ledgerly/pkg/hash"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	hasher   hash.Hasher
	notifier auth.Notifier
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB) *Router {
	return &Router{
		config: cfg,
		db:     db,
		hasher: hash.NewBcryptHasher(),
	}
}

// SetNotifier injects the registration notifier. Optional; when nil,
// registration completes without publishing a welcome notification.
func (r *Router) SetNotifier(notifier auth.Notifier) {
	r.notifier = notifier
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)
		r.setupUserRoutes(api)
		r.setupTransactionRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "ledgerly-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "ledgerly-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupAuthRoutes configures authentication and session routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.hasher, r.config)
	if r.notifier != nil {
		authService.SetNotifier(r.notifier)
	}
	authController := auth.NewController(authService)

	// The repository doubles as the guard's user resolver
	authRouter := auth.NewRouter(authController, r.config, authRepo)
	authRouter.SetupRoutes(rg)
}

// setupUserRoutes configures user management routes
func (r *Router) setupUserRoutes(rg *gin.RouterGroup) {
	userRepo := users.NewRepository(r.db.GetPostgreSQL())
	userService := users.NewService(userRepo, r.hasher)
	userController := users.NewController(userService)

	users.SetupUserRoutes(rg, userController)
}

// setupTransactionRoutes configures transaction routes
func (r *Router) setupTransactionRoutes(rg *gin.RouterGroup) {
	transactionRepo := transactions.NewRepository(r.db.GetPostgreSQL())
	transactionService := transactions.NewService(transactionRepo)
	transactionController := transactions.NewController(transactionService)

	resolver := auth.NewRepository(r.db.GetPostgreSQL())
	transactions.SetupTransactionRoutes(rg, transactionController, r.config, resolver)
}
