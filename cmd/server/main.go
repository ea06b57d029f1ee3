package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Rakib1514/tickto-server/internal/app"
	"github.com/Rakib1514/tickto-server/internal/config"
	"github.com/Rakib1514/tickto-server/internal/handler"
	internalRedis "github.com/Rakib1514/tickto-server/internal/redis"
	"github.com/Rakib1514/tickto-server/internal/repository/mongodb"
	"github.com/Rakib1514/tickto-server/internal/service"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before the stores so we can instrument them).
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s (with store instrumentation)", cfg.NewRelic.AppName)
		}
	}

	// Initialize MongoDB with New Relic instrumentation.
	mongoClient, err := app.NewMongoClient(ctx, cfg.Mongo, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Printf("mongodb disconnect: %v", err)
		}
	}()
	log.Println("Connected to MongoDB")

	// Initialize Redis with New Relic instrumentation.
	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Connected to Redis")

	// Wire dependencies.
	server, reconciler := wireServer(mongoClient, redisClient, nrApp, cfg)

	// Drive periodic status reconciliation so the read path normally
	// finds fresh statuses without writing.
	reconcileCtx, stopReconcile := context.WithCancel(context.Background())
	go reconciler.Run(reconcileCtx)

	// Start server in goroutine.
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	stopReconcile()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server and the
// reconciler driving status refreshes.
func wireServer(mongoClient *mongo.Client, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config) (*http.Server, *service.Reconciler) {
	db := mongoClient.Database(cfg.Mongo.Database)

	// Initialize Redis stores.
	lockStore := internalRedis.NewLockStore(redisClient)
	cacheStore := internalRedis.NewCacheStore(redisClient)

	// Initialize repositories.
	tripRepo := mongodb.NewTripRepository(db)
	busRepo := mongodb.NewBusRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	eventRepo := mongodb.NewEventRepository(db)
	paymentRepo := mongodb.NewPaymentRepository(db)

	// Initialize services.
	reconciler := service.NewReconciler(tripRepo, lockStore, cfg.Reconcile.Interval)
	availabilityService := service.NewAvailabilityService(tripRepo, reconciler)
	locationService := service.NewLocationService(tripRepo, cacheStore)
	tripService := service.NewTripService(tripRepo)
	paymentService := service.NewPaymentService(paymentRepo, service.NewMockPaymentProvider())

	// Initialize handlers.
	availabilityHandler := handler.NewAvailabilityHandler(availabilityService)
	locationHandler := handler.NewLocationHandler(locationService)
	tripHandler := handler.NewTripHandler(tripService)
	busHandler := handler.NewBusHandler(busRepo)
	userHandler := handler.NewUserHandler(userRepo)
	eventHandler := handler.NewEventHandler(eventRepo)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	authHandler := handler.NewAuthHandler(userRepo, cfg.JWT.Secret, cfg.JWT.TokenTTL)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		AvailabilityHandler: availabilityHandler,
		LocationHandler:     locationHandler,
		TripHandler:         tripHandler,
		BusHandler:          busHandler,
		UserHandler:         userHandler,
		EventHandler:        eventHandler,
		PaymentHandler:      paymentHandler,
		AuthHandler:         authHandler,
		JWTSecret:           cfg.JWT.Secret,
		RedisClient:         redisClient,
		NewRelicApp:         nrApp,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, reconciler
}
