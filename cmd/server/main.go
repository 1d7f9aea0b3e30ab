package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/mroshb/buynothing/internal/config"
	"github.com/mroshb/buynothing/internal/database"
	"github.com/mroshb/buynothing/internal/handlers"
	"github.com/mroshb/buynothing/internal/middleware"
	"github.com/mroshb/buynothing/internal/payment"
	"github.com/mroshb/buynothing/internal/repositories"
	"github.com/mroshb/buynothing/internal/services"
	"github.com/mroshb/buynothing/pkg/logger"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// Initialize logger
	logger.Init()
	defer logger.Sync()

	logger.Info("Starting Buy Nothing Store API...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", err)
	}

	// Validate production security settings
	if cfg.AppEnv == "production" {
		if err := cfg.ValidateProductionSecurity(); err != nil {
			logger.Fatal("Production security validation failed", err)
		}
		logger.Info("Production security validation passed")
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database with TLS
	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", err)
	}

	// Run GORM auto-migration
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Seed the catalog and lootbox reward pools
	if err := database.SeedProducts(db); err != nil {
		logger.Warn("Failed to seed products", "error", err)
	}

	// Leaderboard cache is optional; without redis every read hits postgres
	var cache *redis.Client
	if cfg.RedisAddr != "" {
		cache = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := cache.Ping(context.Background()).Err(); err != nil {
			logger.Warn("Redis unreachable, leaderboard caching disabled", "error", err)
			cache = nil
		}
	}

	// Repositories
	users := repositories.NewUserRepository(db)
	products := repositories.NewProductRepository(db)
	purchases := repositories.NewPurchaseRepository(db)
	settlements := repositories.NewSettlementRepository(db)
	lootboxes := repositories.NewLootboxRepository(db)
	trades := repositories.NewTradeRepository(db)

	// Payment provider
	provider := payment.NewMollieClient(cfg.MollieAPIKey, cfg.MollieBaseURL, cfg.GetProviderTimeout())

	// Out-of-band trade notifications, optional
	var notifier services.Notifier
	if tg := services.NewTelegramNotifier(cfg.BotToken, cfg.NotifyChatID); tg != nil {
		notifier = tg
	}

	// Services
	authSvc := services.NewAuthService(users, cfg.JWTSecret)
	checkoutSvc := services.NewCheckoutService(products, provider, cfg.PublicBaseURL, cfg.CheckoutReturn)
	settlementSvc := services.NewSettlementService(settlements, provider)
	lootboxSvc := services.NewLootboxService(lootboxes)
	tradeSvc := services.NewTradeService(trades, users, notifier)
	leaderboardSvc := services.NewLeaderboardService(users, cache, cfg.LeaderboardSize, cfg.GetLeaderboardTTL())

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerUser, cfg.RateLimitPerIP, cfg.GetRateLimitWindow())

	router := handlers.NewRouter(handlers.Handlers{
		Auth:        handlers.NewAuthHandler(authSvc),
		Products:    handlers.NewProductHandler(products),
		Checkout:    handlers.NewCheckoutHandler(checkoutSvc),
		Webhooks:    handlers.NewWebhookHandler(settlementSvc),
		Lootboxes:   handlers.NewLootboxHandler(lootboxSvc),
		Profiles:    handlers.NewProfileHandler(authSvc, users, purchases, cfg.ShowcaseLimit),
		Trades:      handlers.NewTradeHandler(tradeSvc),
		Leaderboard: handlers.NewLeaderboardHandler(leaderboardSvc),
	}, cfg.JWTSecret, limiter)

	server := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("API listening", "port", cfg.AppPort, "env", cfg.AppEnv)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}

	if cache != nil {
		_ = cache.Close()
	}

	logger.Info("Server stopped")
}
