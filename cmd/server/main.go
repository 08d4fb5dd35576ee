package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aerocost/api/internal/api"
	"aerocost/api/internal/common"
	"aerocost/api/internal/config"
	"aerocost/api/internal/db"
	"aerocost/api/internal/db/repositories"
	"aerocost/api/internal/events"
	"aerocost/api/internal/jobs"
	"aerocost/api/internal/logging"
	"aerocost/api/internal/metrics"
	"aerocost/api/internal/routes"
	"aerocost/api/internal/services"

	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	// Initialize structured logging
	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("AeroCost starting up",
		"environment", cfg.AppEnv,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	if cfg.Auth.JWTSecret == "" {
		// tokens from a generated secret do not survive a restart
		secret := make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			logging.Fatal("Failed to generate JWT secret", "error", err.Error())
		}
		cfg.Auth.JWTSecret = hex.EncodeToString(secret)
		logging.Warn("JWT_SECRET not set, using a generated secret")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to DB with GORM
	orm, err := db.InitORM(cfg.Database, cfg.AppEnv)
	if err != nil {
		logging.Fatal("Failed to connect to database (GORM)", "error", err.Error())
	}
	if err := db.AutoMigrate(orm); err != nil {
		logging.Fatal("Failed to migrate database", "error", err.Error())
	}
	logging.Info("Connected to database (GORM)", "driver", cfg.Database.Driver)

	// sqlx serves the reporting queries
	sqlxDB, err := db.InitSQLX(cfg.Database, orm)
	if err != nil {
		logging.Fatal("Failed to connect to database (sqlx)", "error", err.Error())
	}
	defer sqlxDB.Close()

	var cache common.CacheInterface
	if cfg.Redis.Enabled() {
		cache = common.NewRedisCacheService(common.NewRedisClient(cfg.Redis))
		logging.Info("Token denylist backed by Redis", "addr", cfg.Redis.Addr())
	} else {
		cache = common.NewCacheService(cfg.Auth.TokenTTL(), 10*time.Minute)
	}
	defer cache.Close()

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.Kafka.Enabled() {
		publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.CostTopic)
		logging.Info("Publishing cost changes to Kafka", "topic", cfg.Kafka.CostTopic)
	}
	defer publisher.Close()

	var logStore services.CalculationLogStore
	if cfg.ActivityStore.Backend == "dynamodb" {
		ddb, err := db.NewDynamoDBClient(ctx, cfg.ActivityStore)
		if err != nil {
			logging.Fatal("Failed to create DynamoDB client", "error", err.Error())
		}
		logStore = repositories.NewCalculationLogDynamoRepo(ddb, cfg.ActivityStore.DynamoDBTable)
		logging.Info("Calculation logs stored in DynamoDB", "table", cfg.ActivityStore.DynamoDBTable)
	}

	metricsReg := metrics.NewMetricsRegistry(prometheus.DefaultRegisterer)

	deps, err := api.InitDependencies(cfg, api.Infra{
		ORM:       orm,
		SQLX:      sqlxDB,
		Cache:     cache,
		Publisher: publisher,
		LogStore:  logStore,
		Metrics:   metricsReg,
	})
	if err != nil {
		logging.Fatal("Failed to initialize dependencies", "error", err.Error())
	}

	costReconcileJob := jobs.InitializeJobs(ctx, cfg.Jobs, deps.Repo.Aircraft, deps.Services.FlightCosts, metricsReg)
	router := routes.RegisterRoutes(deps, api.NewJobsHandler(costReconcileJob))

	// Setup metrics endpoint outside of Chi router
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Info("Server starting", "port", cfg.HTTP.Port, "environment", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("Server failed", "error", err.Error())
		}
	}()

	<-ctx.Done()
	logging.Info("Shutdown signal received, draining connections")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error("Graceful shutdown failed", "error", err.Error())
	}
	logging.Info("Server stopped")
}
