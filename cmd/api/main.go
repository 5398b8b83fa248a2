package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dimesonly/platform-backend/api/routes"
	"github.com/dimesonly/platform-backend/internal/config"
	"github.com/dimesonly/platform-backend/internal/handlers"
	"github.com/dimesonly/platform-backend/internal/repositories"
	mongorepo "github.com/dimesonly/platform-backend/internal/repositories/mongodb"
	"github.com/dimesonly/platform-backend/internal/services"
	"github.com/dimesonly/platform-backend/pkg/mongodb"
	"github.com/dimesonly/platform-backend/pkg/payments"
	"github.com/joho/godotenv"
	"golang.org/x/exp/slog"
)

func main() {
	// Load .env if present, environment variables take precedence
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.LogLevel)

	if cfg.JWT.Secret == "" {
		slog.Error("JWT secret is not configured")
		os.Exit(1)
	}

	// Connect to MongoDB
	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		slog.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			slog.Error("Error disconnecting from MongoDB", "error", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	// Repositories
	var (
		userRepo      repositories.UserRepository             = mongorepo.NewUserRepository(db)
		tipRepo       repositories.TipRepository              = mongorepo.NewTipRepository(db)
		poolRepo      repositories.JackpotPoolRepository      = mongorepo.NewJackpotPoolRepository(db)
		drawingRepo   repositories.DrawingRepository          = mongorepo.NewDrawingRepository(db)
		winnerRepo    repositories.WinnerRepository           = mongorepo.NewWinnerRepository(db)
		weeklyRepo    repositories.WeeklyEarningRepository    = mongorepo.NewWeeklyEarningRepository(db)
		quarterlyRepo repositories.QuarterlyPaymentRepository = mongorepo.NewQuarterlyPaymentRepository(db)
		referralRepo  repositories.ReferralRepository         = mongorepo.NewReferralRepository(db)
		eventRepo     repositories.EventRepository            = mongorepo.NewEventRepository(db)
	)

	paymentsClient := payments.NewClient(cfg.Payments.BaseURL, cfg.Payments.APIKey, cfg.Payments.MockAPI)

	// Services
	referralService := services.NewReferralService(referralRepo, userRepo)
	authService := services.NewAuthService(userRepo, referralService, cfg)
	userService := services.NewUserService(userRepo)
	tipService := services.NewTipService(tipRepo, userRepo, poolRepo, paymentsClient, cfg)
	jackpotService := services.NewJackpotService(poolRepo, drawingRepo, winnerRepo, tipRepo, userRepo, cfg)
	earningsService := services.NewEarningsService(userRepo, weeklyRepo, quarterlyRepo, tipRepo, eventRepo)
	eventService := services.NewEventService(eventRepo, userRepo)

	// Handlers
	deps := &routes.HandlerDependencies{
		AuthHandler:     handlers.NewAuthHandler(authService),
		UserHandler:     handlers.NewUserHandler(userService),
		TipHandler:      handlers.NewTipHandler(tipService),
		JackpotHandler:  handlers.NewJackpotHandler(jackpotService),
		EarningsHandler: handlers.NewEarningsHandler(earningsService),
		ReferralHandler: handlers.NewReferralHandler(referralService),
		EventHandler:    handlers.NewEventHandler(eventService),
	}

	router := routes.SetupRouter(cfg, deps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited")
}

func setupLogger(level string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
