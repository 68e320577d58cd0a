package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/habistudio/habi-backend/api/routes"
	"github.com/habistudio/habi-backend/internal/auth"
	"github.com/habistudio/habi-backend/internal/cart"
	"github.com/habistudio/habi-backend/internal/catalog"
	"github.com/habistudio/habi-backend/internal/feedback"
	"github.com/habistudio/habi-backend/internal/inventory"
	"github.com/habistudio/habi-backend/internal/orders"
	"github.com/habistudio/habi-backend/internal/state"
	"github.com/habistudio/habi-backend/pkg/auth/session"
	"github.com/habistudio/habi-backend/pkg/config"
	"github.com/habistudio/habi-backend/pkg/logger"
	"github.com/habistudio/habi-backend/pkg/metrics"
	"github.com/habistudio/habi-backend/pkg/redis"
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

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessions, err := session.NewManager(redisClient, cfg.JWT.SessionTTL())
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	storeMetrics := metrics.NewStoreMetrics(registry)

	stateStore, err := state.NewStore(cfg.State.SaveDir, logg, storeMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to open save directory", err)
		os.Exit(1)
	}

	authService := auth.NewService(
		auth.NewRegistry(cfg.State.ConfigDir),
		auth.NewAdminCredentials(cfg.State.ConfigDir),
		auth.NewRememberStore(cfg.State.ConfigDir),
		sessions,
		cfg.JWT,
		cfg.Password,
		storeMetrics,
		logg,
	)

	bootCtx := context.Background()
	catalogService := catalog.NewService()
	ledger := inventory.NewLedger(stateStore.InitialInventory(bootCtx), storeMetrics)
	orderLog := orders.NewLog(storeMetrics)
	cartService := cart.NewService(catalogService, ledger, orderLog, authService, storeMetrics)
	stateManager := state.NewManager(stateStore, ledger, cartService, orderLog, authService, logg)

	if restored, err := stateManager.RestoreLatest(bootCtx); err != nil {
		logg.Error(bootCtx, "failed to restore latest snapshot", err)
		os.Exit(1)
	} else if restored {
		logg.Info(bootCtx, "restored latest snapshot")
	}

	mailer := feedback.NewMailer(cfg.SMTP, logg)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, routes.Services{
			Redis:    redisClient,
			Sessions: sessions,
			Registry: registry,
			Auth:     authService,
			Catalog:  catalogService,
			Ledger:   ledger,
			Cart:     cartService,
			Orders:   orderLog,
			Store:    stateStore,
			State:    stateManager,
			Mailer:   mailer,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
