package main

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/timeout"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/medtransit/fare-engine/internal/geo"
	"github.com/medtransit/fare-engine/internal/pricing"
	"github.com/medtransit/fare-engine/internal/promos"
	"github.com/medtransit/fare-engine/pkg/common"
	"github.com/medtransit/fare-engine/pkg/config"
	"github.com/medtransit/fare-engine/pkg/database"
	"github.com/medtransit/fare-engine/pkg/logger"
	"github.com/medtransit/fare-engine/pkg/middleware"
	redisclient "github.com/medtransit/fare-engine/pkg/redis"
	"github.com/medtransit/fare-engine/pkg/validation"
)

const (
	serviceName = "fare-engine"
	version     = "1.0.0"
)

func main() {
	// Load configuration
	cfg, err := config.Load(serviceName)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Server.Environment); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := validation.RegisterGinValidators(); err != nil {
		logger.Fatal("Failed to register validators", zap.Error(err))
	}

	// Sentry error reporting (optional)
	sentryEnabled := cfg.Sentry.Enabled && cfg.Sentry.DSN != ""
	if sentryEnabled {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Server.Environment,
			Release:     serviceName + "@" + version,
		})
		if err != nil {
			logger.Warn("Failed to initialize Sentry", zap.Error(err))
			sentryEnabled = false
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Connect to PostgreSQL
	db, err := database.NewPostgresPool(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)
	logger.Info("Connected to PostgreSQL database")

	if err := database.RunMigrations(&cfg.Database); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Connect to Redis
	redisClient, err := redisclient.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	logger.Info("Connected to Redis")

	// Wire services and handlers
	validator := geo.NewValidator()
	calculator := pricing.NewCalculator(validator)
	pricingHandler := pricing.NewHandler(calculator)

	promoRepo := promos.NewRepository(db)
	promoService := promos.NewService(promoRepo)
	promoHandler := promos.NewHandler(promoService)

	// Set up Gin router
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.CorrelationID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.Metrics())

	if sentryEnabled {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.Server.CORSOrigins, ",")
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "Idempotency-Key", middleware.CorrelationIDHeader}
	router.Use(cors.New(corsConfig))

	// Health check and metrics (no middleware beyond the globals)
	router.GET("/healthz", common.HealthCheckWithDeps(serviceName, version, map[string]func() error{
		"postgres": func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return db.Ping(ctx)
		},
		"redis": func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Ping(ctx).Err()
		},
	}))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := router.Group("/api/v1")
	api.Use(timeout.New(
		timeout.WithTimeout(time.Duration(cfg.Server.RequestTimeout)*time.Second),
		timeout.WithHandler(func(c *gin.Context) { c.Next() }),
		timeout.WithResponse(func(c *gin.Context) {
			common.ErrorResponse(c, http.StatusRequestTimeout, "request timed out")
		}),
	))
	{
		api.POST("/fares/estimate", pricingHandler.Estimate)

		promosGroup := api.Group("/promos")
		{
			promosGroup.POST("/validate", promoHandler.ValidatePromoCode)
			// Redemption is replay-protected: clients retrying after an
			// ambiguous failure must reuse their Idempotency-Key.
			promosGroup.POST("/redeem", middleware.Idempotency(redisClient), promoHandler.RedeemPromoCode)
		}
	}

	// Start server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	logger.Info("Fare engine service starting", zap.String("port", cfg.Server.Port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}
