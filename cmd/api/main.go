package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/campaign-tracker/backend/internal/auth"
	"github.com/campaign-tracker/backend/internal/config"
	"github.com/campaign-tracker/backend/internal/db"
	"github.com/campaign-tracker/backend/internal/events"
	apphttp "github.com/campaign-tracker/backend/internal/http"
	"github.com/campaign-tracker/backend/internal/http/handlers"
	"github.com/campaign-tracker/backend/internal/repositories"
	"github.com/campaign-tracker/backend/internal/services"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := cfg.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := cfg.Validate(log); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Run migrations
	if cfg.RunMigrations {
		if err := db.RunMigrations(cfg.PostgresDSN, log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Database
	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	// Redis
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Repositories
	userRepo := repositories.NewUserRepo(pool)
	campaignRepo := repositories.NewCampaignRepo(pool)
	dashboardRepo := repositories.NewDashboardRepo(pool)
	auditRepo := repositories.NewAuditRepo(pool)

	// Events
	publisher := events.NewRedisPublisher(rdb, log)
	subscriber := events.NewRedisSubscriber(rdb, log)

	// Services
	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	userService := services.NewUserService(userRepo, issuer, log)
	campaignService := services.NewCampaignService(campaignRepo, auditRepo, publisher, cfg.EnforceEndDateAfterStart, log)
	dashboardService := services.NewDashboardService(dashboardRepo, cfg.TimeZone)
	currencyService := services.NewCurrencyService(cfg, rdb, log)

	// Handlers
	wsHub := handlers.NewWSHub(issuer, subscriber, log)
	h := apphttp.Handlers{
		Auth:      handlers.NewAuthHandler(userService, log),
		User:      handlers.NewUserHandler(userService, log),
		Campaign:  handlers.NewCampaignHandler(campaignService, log),
		Dashboard: handlers.NewDashboardHandler(dashboardService, log),
		Currency:  handlers.NewCurrencyHandler(currencyService, log),
		Meta:      handlers.NewMetaHandler(),
		WSHub:     wsHub,
	}

	// Start WS hub
	if err := wsHub.Start(ctx); err != nil {
		log.Fatal("failed to subscribe to campaign events", zap.Error(err))
	}

	app := apphttp.NewApp()
	apphttp.SetupRouter(app, cfg, log, rdb, issuer, h)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
