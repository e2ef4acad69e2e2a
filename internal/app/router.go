package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"carpool/internal/handler"
	"carpool/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	UserHandler    *handler.UserHandler
	CarpoolHandler *handler.CarpoolHandler
	RosterHandler  *handler.RosterHandler
	AssetHandler   *handler.AssetHandler
	RedisClient    *redis.Client
	NewRelicApp    *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// User routes.
		users := v1.Group("/users")
		{
			users.POST("/register", deps.UserHandler.Register)
			users.GET("", deps.UserHandler.GetAll)
			users.GET("/:id", deps.UserHandler.Get)
		}

		// Authentication.
		v1.POST("/auth/login", deps.UserHandler.Login)

		// Carpool catalog and roster routes.
		carpools := v1.Group("/carpools")
		{
			carpools.POST("", deps.CarpoolHandler.Create)
			carpools.GET("", deps.CarpoolHandler.Search)
			carpools.GET("/:id", deps.CarpoolHandler.Get)
			carpools.DELETE("/:id", deps.CarpoolHandler.Delete)

			carpools.POST("/:id/join", deps.RosterHandler.Join)
			carpools.POST("/:id/leave", deps.RosterHandler.Leave)
			carpools.POST("/:id/cancel", deps.RosterHandler.CancelPending)
			carpools.POST("/:id/accept", deps.RosterHandler.Accept)
			carpools.POST("/:id/decline", deps.RosterHandler.Decline)
		}

		// Asset routes.
		assets := v1.Group("/assets")
		{
			assets.POST("", deps.AssetHandler.Upload)
			assets.GET("/:id", deps.AssetHandler.Get)
		}
	}

	return router
}
