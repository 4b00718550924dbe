package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/muhammedshamilmt/snapgro-backend/api/routes"
	"github.com/muhammedshamilmt/snapgro-backend/internal/auth"
	"github.com/muhammedshamilmt/snapgro-backend/internal/catalog"
	"github.com/muhammedshamilmt/snapgro-backend/internal/orders"
	"github.com/muhammedshamilmt/snapgro-backend/internal/profiles"
	sessionsvc "github.com/muhammedshamilmt/snapgro-backend/internal/session"
	"github.com/muhammedshamilmt/snapgro-backend/internal/users"
	"github.com/muhammedshamilmt/snapgro-backend/pkg/auth/session"
	"github.com/muhammedshamilmt/snapgro-backend/pkg/config"
	"github.com/muhammedshamilmt/snapgro-backend/pkg/db"
	"github.com/muhammedshamilmt/snapgro-backend/pkg/logger"
	"github.com/muhammedshamilmt/snapgro-backend/pkg/metrics"
	"github.com/muhammedshamilmt/snapgro-backend/pkg/migrate"
	"github.com/muhammedshamilmt/snapgro-backend/pkg/redis"
)

const shutdownGrace = 15 * time.Second

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

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}

	tokenSessions, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create token session manager", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       users.NewRepository(dbClient.DB()),
		SessionManager: tokenSessions,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	registerService, err := auth.NewRegisterServiceFromDB(dbClient, tokenSessions, cfg.Password, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create register service", err)
		os.Exit(1)
	}

	profileRepo := profiles.NewRepository(dbClient.DB())
	profileService, err := profiles.NewService(profileRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create profile service", err)
		os.Exit(1)
	}

	fees, err := orders.ParseFeeSchedule(cfg.Checkout)
	if err != nil {
		logg.Error(context.Background(), "invalid checkout fee schedule", err)
		os.Exit(1)
	}
	orderService, err := orders.NewService(orders.NewRepository(dbClient.DB()), dbClient, profileRepo, fees)
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	catalogService := catalog.NewService()
	sessionMetrics := metrics.NewSessionMetrics(prometheus.DefaultRegisterer)

	storefront, err := sessionsvc.NewManager(sessionsvc.ManagerParams{
		Config:  cfg.Session,
		Catalog: catalogService,
		Orders:  orderService,
		Metrics: sessionMetrics,
		Logger:  logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create storefront session manager", err)
		os.Exit(1)
	}
	storefront.StartSweeper()

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
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			tokenSessions,
			authService,
			registerService,
			catalogService,
			storefront,
			orderService,
			profileService,
		),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stopCh:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	var shutdownErr error
	if err := server.Shutdown(shutdownCtx); err != nil {
		shutdownErr = multierr.Append(shutdownErr, err)
	}
	storefront.Close()
	if err := redisClient.Close(); err != nil {
		shutdownErr = multierr.Append(shutdownErr, err)
	}
	if err := dbClient.Close(); err != nil {
		shutdownErr = multierr.Append(shutdownErr, err)
	}
	if shutdownErr != nil {
		logg.Error(ctx, "shutdown finished with errors", shutdownErr)
		os.Exit(1)
	}

	logg.Info(ctx, "api server shut down cleanly")
}
