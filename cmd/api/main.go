package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/plotdesk/plotdesk-backend/api/routes"
	"github.com/plotdesk/plotdesk-backend/internal/buyers"
	"github.com/plotdesk/plotdesk-backend/internal/ledger"
	"github.com/plotdesk/plotdesk-backend/internal/payments"
	"github.com/plotdesk/plotdesk-backend/internal/plots"
	"github.com/plotdesk/plotdesk-backend/internal/seed"
	"github.com/plotdesk/plotdesk-backend/internal/transactions"
	"github.com/plotdesk/plotdesk-backend/pkg/config"
	"github.com/plotdesk/plotdesk-backend/pkg/db"
	"github.com/plotdesk/plotdesk-backend/pkg/logger"
	"github.com/plotdesk/plotdesk-backend/pkg/migrate"
	pkgredis "github.com/plotdesk/plotdesk-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRun(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run startup migrations", err)
		os.Exit(1)
	}

	if cfg.FeatureFlags.AutoSeed {
		inserted, err := seed.Plots(ctx, dbClient.DB(), cfg.Seed)
		if err != nil {
			logg.Error(ctx, "failed to seed plots", err)
			os.Exit(1)
		}
		if inserted > 0 {
			logg.Info(logg.WithField(ctx, "plots", inserted), "seeded plot inventory")
		}
	}

	var redisClient *pkgredis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = pkgredis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
	}

	ledgerSvc, err := ledger.NewService(ledger.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(ctx, "failed to create ledger service", err)
		os.Exit(1)
	}
	plotSvc, err := plots.NewService(plots.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(ctx, "failed to create plot service", err)
		os.Exit(1)
	}
	buyerSvc, err := buyers.NewService(buyers.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(ctx, "failed to create buyer service", err)
		os.Exit(1)
	}
	txSvc, err := transactions.NewService(transactions.NewRepository(dbClient.DB()), ledgerSvc)
	if err != nil {
		logg.Error(ctx, "failed to create transaction service", err)
		os.Exit(1)
	}
	paySvc, err := payments.NewService(payments.NewRepository(dbClient.DB()), txSvc, ledgerSvc)
	if err != nil {
		logg.Error(ctx, "failed to create payment service", err)
		os.Exit(1)
	}

	deps := routes.Deps{
		Config:       cfg,
		Logger:       logg,
		DB:           dbClient,
		Plots:        plotSvc,
		Buyers:       buyerSvc,
		Transactions: txSvc,
		Payments:     paySvc,
	}
	if redisClient != nil {
		deps.RedisPinger = redisClient
		deps.IdempotencyStore = redisClient
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	startCtx := logg.WithFields(ctx, map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"backend": dbClient.Driver(),
	})
	logg.Info(startCtx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(deps),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(startCtx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(startCtx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	closeErr := server.Shutdown(shutdownCtx)
	if redisClient != nil {
		closeErr = multierr.Append(closeErr, redisClient.Close())
	}
	closeErr = multierr.Append(closeErr, dbClient.Close())
	if closeErr != nil {
		logg.Error(startCtx, "error during shutdown", closeErr)
		os.Exit(1)
	}
	logg.Info(startCtx, "api server stopped")
}
