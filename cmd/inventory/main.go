package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"gorm.io/gorm"

	"github.com/ledgerkeep/inventory/internal/inventory"
	inventoryHTTP "github.com/ledgerkeep/inventory/internal/inventory/delivery/http"
	inventoryDomain "github.com/ledgerkeep/inventory/internal/inventory/domain"
	userHTTP "github.com/ledgerkeep/inventory/internal/user/delivery/http"
	userRepository "github.com/ledgerkeep/inventory/internal/user/repository"
	userCommand "github.com/ledgerkeep/inventory/internal/user/usecase/command"
	userQuery "github.com/ledgerkeep/inventory/internal/user/usecase/query"
	"github.com/ledgerkeep/inventory/kafka"
	"github.com/ledgerkeep/inventory/pkg/database"
	"github.com/ledgerkeep/inventory/pkg/logger"
	"github.com/ledgerkeep/inventory/pkg/tracing"
)

func main() {
	// Initialize logger
	serviceName := getEnv("OTEL_SERVICE_NAME", "inventory-service")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Str("log_level", logLevel).
		Msg("Starting inventory service")

	// Initialize tracing
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize tracer")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracing.Shutdown(ctx, tp); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
		}
	}()

	// Load database configuration
	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "inventorydb"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Connect to database
	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Separate lib/pq connection for the health probe, so /health keeps
	// answering even when the GORM pool is exhausted
	healthDB, err := database.NewPostgresConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to open health check connection")
	}
	defer healthDB.Close()

	// Run migrations
	if err := db.AutoMigrate(
		&inventoryDomain.Category{},
		&inventoryDomain.Product{},
		&inventoryDomain.StockMovement{},
	); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	logger.Logger.Info().Msg("Database initialized successfully")

	// Optional Redis cache for product reads
	var redisClient *redis.Client
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: getEnv("REDIS_PASSWORD", ""),
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Logger.Warn().Err(err).Msg("Redis unavailable, product cache disabled")
			redisClient = nil
		} else {
			logger.Logger.Info().Str("addr", redisAddr).Msg("Product cache enabled")
		}
	}

	// Optional Kafka publisher for stock movement events
	var publisher *kafka.Publisher
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		publisher, err = kafka.NewPublisher(strings.Split(brokers, ","))
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("Kafka unavailable, movement events disabled")
		} else {
			defer publisher.Close()
			logger.Logger.Info().Str("brokers", brokers).Msg("Movement events enabled")
		}
	}

	// Initialize inventory handlers with Wire DI
	handlers, err := inventory.InitializeHandlers(db, redisClient, publisher)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize handlers")
	}

	userHandler, err := initializeUserHandler(db)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize user handler")
	}

	// Start HTTP server
	httpPort := getEnv("HTTP_PORT", "8082")
	go startHTTPServer(handlers, userHandler, healthDB, httpPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
}

func initializeUserHandler(db *gorm.DB) (*userHTTP.UserHandler, error) {
	repo := userRepository.NewGormUserRepository(db)
	if err := repo.AutoMigrate(); err != nil {
		return nil, err
	}

	return userHTTP.NewUserHandler(
		userCommand.NewRegisterUserHandler(repo),
		userCommand.NewLoginUserHandler(repo),
		userCommand.NewChangeRoleHandler(repo),
		userQuery.NewGetUserHandler(repo),
		userQuery.NewListUsersHandler(repo),
	), nil
}

func startHTTPServer(handlers *inventory.Handlers, userHandler *userHTTP.UserHandler, db *sql.DB, port string) {
	// Setup router
	router := mux.NewRouter()

	// Tracing runs outside logging so request logs carry the trace ID
	router.Use(inventoryHTTP.RequestIDMiddleware)
	router.Use(inventoryHTTP.RecoveryMiddleware)
	router.Use(inventoryHTTP.TracingMiddleware)
	router.Use(inventoryHTTP.LoggingMiddleware)

	// Register routes
	handlers.Category.RegisterRoutes(router)
	handlers.Product.RegisterRoutes(router)
	handlers.Movement.RegisterRoutes(router)
	userHandler.RegisterRoutes(router)

	// Health check endpoint
	handlers.Product.RegisterHealthCheck(router, db)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	logger.Logger.Info().
		Str("port", port).
		Str("metrics_endpoint", "/metrics").
		Msg("HTTP server started")

	if err := http.ListenAndServe(":"+port, c.Handler(router)); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
