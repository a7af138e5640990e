package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/giglysam/adlinker-discord-ads-sub000/internal/adapter/discord"
	httpadapter "github.com/giglysam/adlinker-discord-ads-sub000/internal/adapter/http"
	"github.com/giglysam/adlinker-discord-ads-sub000/internal/adapter/moderation"
	"github.com/giglysam/adlinker-discord-ads-sub000/internal/adapter/postgres"
	"github.com/giglysam/adlinker-discord-ads-sub000/internal/adapter/usecase"
	"github.com/giglysam/adlinker-discord-ads-sub000/internal/config"
	"github.com/giglysam/adlinker-discord-ads-sub000/internal/db"
	"github.com/giglysam/adlinker-discord-ads-sub000/internal/scheduler"
)

// main is the entry point of the ad marketplace service. It loads
// configuration, optionally runs database migrations and seeding,
// initializes the repositories and usecases, starts the background
// distribution scheduler and the HTTP server, then waits for a
// termination signal to shut everything down gracefully.
func main() {
	// best-effort .env for local development
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	var logger *slog.Logger
	{
		var handler slog.Handler
		level := cfg.Log.SlogLevel()
		switch cfg.Log.SlogFormat() {
		case "json":
			handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
		default:
			handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
		}
		logger = slog.New(handler)
	}

	if cfg.Psql.RunMigrations {
		if err = db.Migrate(cfg.Psql.Addr.String()); err != nil {
			logger.Error("migration error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("migrations applied successfully")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.Psql)
	if err != nil {
		logger.Error("database connection error", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.Psql.SeedDemo {
		if err = db.Seed(ctx, pool); err != nil {
			logger.Error("seed error", slog.Any("error", err))
		} else {
			logger.Info("demo data seeded")
		}
	}

	users := postgres.NewUserRepository(pool)
	ads := postgres.NewAdRepository(pool)
	hooks := postgres.NewWebhookRepository(pool)
	deliveries := postgres.NewDeliveryRepository(pool)
	clicks := postgres.NewClickRepository(pool)

	sender := discord.NewSender(cfg.Delivery.Timeout)
	filter := moderation.NewClient(cfg.Filter, logger)

	webhookSvc := usecase.NewWebhookUseCase(hooks, users, sender)
	adSvc := usecase.NewAdUseCase(ads, users)
	deliverySvc := usecase.NewDeliveryUseCase(ads, hooks, deliveries, users, sender, filter, cfg.Delivery, logger)
	clickSvc := usecase.NewClickUseCase(ads, hooks, clicks, cfg.Delivery.ClickEarning)
	userSvc := usecase.NewUserUseCase(users)

	if cfg.Sched.Enabled {
		sched := scheduler.New(deliverySvc, cfg.Sched.Interval, cfg.Filter.Enabled, logger)
		go func() {
			if err := sched.Run(ctx); err != nil && ctx.Err() == nil {
				logger.Error("scheduler stopped", slog.Any("error", err))
			}
		}()
		logger.Info("distribution scheduler started",
			slog.Duration("interval", cfg.Sched.Interval),
			slog.Bool("filter", cfg.Filter.Enabled))
	}

	handler := httpadapter.NewHandler(webhookSvc, adSvc, deliverySvc, clickSvc, userSvc, cfg.Filter.Enabled, logger)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: handler.Router(),
	}

	go func() {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	} else {
		logger.Info("server gracefully stopped")
	}
}
