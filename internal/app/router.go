package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"github.com/Rakib1514/tickto-server/internal/domain"
	"github.com/Rakib1514/tickto-server/internal/handler"
	"github.com/Rakib1514/tickto-server/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	AvailabilityHandler *handler.AvailabilityHandler
	LocationHandler     *handler.LocationHandler
	TripHandler         *handler.TripHandler
	BusHandler          *handler.BusHandler
	UserHandler         *handler.UserHandler
	EventHandler        *handler.EventHandler
	PaymentHandler      *handler.PaymentHandler
	AuthHandler         *handler.AuthHandler
	JWTSecret           string
	RedisClient         *redis.Client
	NewRelicApp         *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.Idempotency(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public read surface of the query engine.
	router.GET("/trips/available", deps.AvailabilityHandler.Search)
	router.GET("/locations", deps.LocationHandler.Suggest)

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Auth routes.
		auth := v1.Group("/auth")
		{
			auth.POST("/token", deps.AuthHandler.IssueToken)
		}

		// User routes.
		users := v1.Group("/users")
		{
			users.POST("/register", deps.UserHandler.Register)
			users.GET("", middleware.RequireAuth(deps.JWTSecret), middleware.RequireRole(domain.UserRoleAdmin), deps.UserHandler.GetAll)
			users.GET("/:email", middleware.RequireAuth(deps.JWTSecret), deps.UserHandler.GetByEmail)
			users.PATCH("/:email/role", middleware.RequireAuth(deps.JWTSecret), middleware.RequireRole(domain.UserRoleAdmin), deps.UserHandler.SetRole)
		}

		// Trip routes: posting and editing require an operator.
		trips := v1.Group("/trips")
		{
			trips.GET("", deps.TripHandler.List)
			trips.GET("/:id", deps.TripHandler.Get)
			operator := trips.Group("", middleware.RequireAuth(deps.JWTSecret), middleware.RequireRole(domain.UserRoleOperator, domain.UserRoleAdmin))
			{
				operator.POST("", deps.TripHandler.Create)
				operator.PATCH("/:id", deps.TripHandler.Update)
			}
		}

		// Bus routes.
		buses := v1.Group("/buses")
		{
			buses.GET("", deps.BusHandler.ListByOperator)
			buses.GET("/:id", deps.BusHandler.Get)
			buses.POST("", middleware.RequireAuth(deps.JWTSecret), middleware.RequireRole(domain.UserRoleOperator, domain.UserRoleAdmin), deps.BusHandler.Create)
		}

		// Event routes.
		events := v1.Group("/events")
		{
			events.GET("", deps.EventHandler.GetAll)
			events.GET("/:id", deps.EventHandler.Get)
			events.POST("", middleware.RequireAuth(deps.JWTSecret), middleware.RequireRole(domain.UserRoleOperator, domain.UserRoleAdmin), deps.EventHandler.Create)
			events.DELETE("/:id", middleware.RequireAuth(deps.JWTSecret), middleware.RequireRole(domain.UserRoleAdmin), deps.EventHandler.Delete)
		}

		// Payment routes.
		payments := v1.Group("/payments")
		{
			payments.POST("/intent", middleware.RequireAuth(deps.JWTSecret), deps.PaymentHandler.CreateIntent)
		}
	}

	return router
}
