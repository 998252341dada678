package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	_ "github.com/joho/godotenv/autoload"
	"github.com/openhire/pagebuilder/internal/builder/auth"
	"github.com/openhire/pagebuilder/internal/builder/controller"
	"github.com/openhire/pagebuilder/internal/builder/db"
	"github.com/openhire/pagebuilder/internal/builder/events"
	"github.com/openhire/pagebuilder/internal/builder/handlers"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Config struct for YAML configuration
type Config struct {
	HTTPPort      int      `yaml:"HTTP_PORT"`
	DBHost        string   `yaml:"DB_HOST"`
	DBPort        int      `yaml:"DB_PORT"`
	DBUser        string   `yaml:"DB_USER"`
	DBPassword    string   `yaml:"DB_PASSWORD"`
	DBName        string   `yaml:"DB_NAME"`
	DBSSLMode     string   `yaml:"DB_SSLMODE"`
	KafkaBrokers  []string `yaml:"KAFKA_BROKERS"`
	JWTSecret     string   `yaml:"JWT_SECRET"`
	TokenTTL      string   `yaml:"TOKEN_TTL"`
	Topic         string   `yaml:"TOPIC"`
	JobsRateLimit int      `yaml:"JOBS_RATE_LIMIT"`
}

func main() {
	logger := initLogger()
	defer func(logger *zap.Logger) {
		err := logger.Sync()
		if err != nil {
			logger.Error("failed to sync logger", zap.Error(err))
		}
	}(logger)

	cfg, err := loadConfig()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	repo, err := connectDatabase(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Error("failed to close database", zap.Error(err))
		}
	}()

	producer, err := events.NewProducer(cfg.KafkaBrokers, logger, cfg.Topic)
	if err != nil {
		logger.Fatal("failed to initialize Kafka producer", zap.Error(err))
	}
	defer producer.Close()

	consumerCtx, consumerCancel := context.WithCancel(context.Background())
	defer consumerCancel()
	consumer := events.NewConsumer(cfg.KafkaBrokers, "page-audit", cfg.Topic, logger)
	consumer.RegisterHandler(events.AuditHandler(logger))
	consumer.Start(consumerCtx)
	defer consumer.Close()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, parseTTL(cfg.TokenTTL))
	pageSvc := controller.NewPageService(repo, producer, jwtManager, logger)
	pageHandler := handlers.NewPageHandler(pageSvc, logger)

	server := handlers.NewServer(cfg.HTTPPort, logger)
	server.RegisterRoutes(pageHandler, jwtManager, handlers.RateLimitConfig{
		Requests: jobsRateLimit(cfg),
		Interval: time.Minute,
	})

	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	waitForShutdown(server, logger)
}

// initLogger initializes a Zap production logger.
func initLogger() *zap.Logger {
	logger, _ := zap.NewProduction()
	return logger
}

// loadConfig loads configuration from the YAML file, with JWT_SECRET
// overridable from the environment (godotenv loads a local .env first).
func loadConfig() (*Config, error) {
	configPath := filepath.Join("internal", "builder", "config", "config.yaml")
	file, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(file, &cfg); err != nil {
		return nil, err
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.JWTSecret = secret
	}
	return &cfg, nil
}

// connectDatabase opens the repository, retrying with exponential backoff
// so the service survives the database coming up after it.
func connectDatabase(cfg *Config, logger *zap.Logger) (*db.Repository, error) {
	dbConf := &db.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	}

	var repo *db.Repository
	err := backoff.Retry(func() error {
		var err error
		repo, err = db.NewRepository(dbConf)
		if err != nil {
			logger.Warn("database not ready, retrying", zap.Error(err))
		}
		return err
	}, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5))
	if err != nil {
		return nil, err
	}
	return repo, nil
}

func parseTTL(raw string) time.Duration {
	ttl, err := time.ParseDuration(raw)
	if err != nil {
		return 24 * time.Hour
	}
	return ttl
}

func jobsRateLimit(cfg *Config) int {
	if cfg.JobsRateLimit <= 0 {
		return 120
	}
	return cfg.JobsRateLimit
}

// waitForShutdown blocks until an interrupt or SIGTERM is received, then
// shuts down the server.
func waitForShutdown(server *handlers.Server, logger *zap.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	server.Stop()
	logger.Info("Server stopped properly")
}
