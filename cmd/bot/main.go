package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"viola/internal/cache"
	"viola/internal/config"
	"viola/internal/handler"
	"viola/internal/middleware"
	"viola/internal/repository"
	"viola/internal/repository/memory"
	"viola/internal/repository/postgres"
	"viola/internal/service"
	"viola/internal/slang"
	"viola/internal/translate"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const janitorInterval = 5 * time.Minute

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting vioLa")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully")

	// Preference storage: postgres when configured, memory otherwise
	var prefRepo repository.PreferenceRepository
	if cfg.HasDatabase() {
		db, err := connectDatabase(cfg.DSN(), logger)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		if err := runMigrations(db, logger); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}

		prefRepo = postgres.NewPreferenceRepo(db)
		logger.Info("Using postgres preference store")
	} else {
		prefRepo = memory.NewPreferenceRepo()
		logger.Info("Using in-memory preference store")
	}

	// Translation cache: redis when configured, memory otherwise
	var translationCache cache.TranslationCache
	if cfg.RedisURL != "" {
		translationCache, err = cache.NewRedis(cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			logger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		logger.Info("Using redis translation cache")
	} else {
		translationCache = cache.NewMemory(cfg.CacheTTL)
		logger.Info("Using in-memory translation cache")
	}

	// Translation model behind a circuit breaker
	var provider translate.Provider = translate.NewOpenAIProvider(translate.OpenAIConfig{
		APIKey:  cfg.OpenAI.APIKey,
		Model:   cfg.OpenAI.Model,
		BaseURL: cfg.OpenAI.BaseURL,
	})
	provider = translate.NewBreakerProvider(provider, logger)
	invoker := translate.NewInvoker(provider, translationCache, logger)

	// Initialize services
	resolver := service.NewResolver(prefRepo)
	prefService := service.NewPreferenceService(prefRepo, logger)
	liveRegistry := service.NewLiveRegistry(logger)
	retryStore := service.NewRetryStore(cfg.RetryTTL, logger)
	pipeline := service.NewPipeline(invoker, slang.Default(), logger)

	// Initialize Telegram bot
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	logger.Info("Telegram bot initialized")

	bot.Use(middleware.LogUpdates(logger))
	bot.Use(middleware.IgnoreBots())

	// Initialize handler
	h := handler.NewHandler(bot, resolver, prefService, liveRegistry, retryStore, pipeline, logger)
	h.RegisterHandlers()

	logger.Info("Handlers registered")

	// Sweep expired retry contexts in background
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go retryStore.StartJanitor(ctx, janitorInterval)

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	// Graceful shutdown
	bot.Stop()
	cancel()

	logger.Info("Bot stopped gracefully")
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		// Test connection
		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		// Connection successful
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Migrations applied")
	return nil
}
