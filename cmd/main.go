package main

import (
	"context"
	"net/http"
	"time"

	"discovery-service/internal/engine"
	"discovery-service/internal/handler"
	mid "discovery-service/internal/middleware"
	"discovery-service/internal/provider"
	"discovery-service/internal/provider/gormstore"
	"discovery-service/internal/provider/rediscache"
	"discovery-service/pkg/config"
	"discovery-service/pkg/database"
	"discovery-service/pkg/jwtutil"
	"discovery-service/pkg/logger"
	"discovery-service/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	appConfig, err := config.Load("discovery-service")
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	if err := logger.InitLogger(appConfig); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting discovery-service", appConfig.LogConfig()...)

	// Initialize JWT utility for optional viewer identity
	jwtutil.Initialize(&appConfig.JWT)
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	if err := database.InitDB(appConfig); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Wire the read providers
	db := database.GetDB()
	var sellers provider.SellerDirectory = gormstore.NewSellerDirectory(db)
	var moderation provider.Moderation = gormstore.NewModeration(db)

	// Optionally layer the Redis lookup cache over the slowly-changing
	// seller and moderation reads
	if appConfig.Redis.Enabled {
		client := rediscache.NewClient(appConfig.Redis)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rediscache.Ping(ctx, client); err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		cancel()
		sellers = rediscache.NewSellerDirectory(sellers, client, appConfig.Redis.TTL, log)
		moderation = rediscache.NewModeration(moderation, client, appConfig.Redis.TTL, log)
		log.Info("Redis lookup cache enabled",
			zap.String("address", appConfig.Redis.Address),
			zap.Duration("ttl", appConfig.Redis.TTL))
	}

	// Build the ranking engine
	rankEngine := engine.New(engine.Config{
		Catalog:      gormstore.NewCatalog(db),
		Sellers:      sellers,
		Interactions: gormstore.NewInteractions(db),
		Moderation:   moderation,
		Placements:   gormstore.NewPlacements(db),
		Weights:      engine.DefaultWeights(),
		MaxPageSize:  appConfig.Discovery.MaxPageSize,
		Logger:       log,
	})

	discoveryHandler := handler.NewDiscoveryHandler(rankEngine, appConfig.Discovery.DefaultPageSize)

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Routes
	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", handler.Health)

	// Discovery API routes - viewer identity is optional, so the auth
	// middleware never rejects
	discoveryAPI := e.Group("/api/discovery", mid.ViewerMiddleware)
	discoveryAPI.GET("/products", discoveryHandler.SearchProducts)

	// Placement slot resolution
	e.GET("/api/slots/:slot", discoveryHandler.ResolveSlot)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
		log.Fatal("Server error", zap.Error(err))
	}
}
