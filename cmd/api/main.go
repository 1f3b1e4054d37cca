package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/malonic/quotehub-backend/api/routes"
	"github.com/malonic/quotehub-backend/internal/auth"
	"github.com/malonic/quotehub-backend/internal/clients"
	"github.com/malonic/quotehub-backend/internal/export"
	"github.com/malonic/quotehub-backend/internal/quotations"
	"github.com/malonic/quotehub-backend/internal/users"
	"github.com/malonic/quotehub-backend/pkg/auth/session"
	"github.com/malonic/quotehub-backend/pkg/config"
	"github.com/malonic/quotehub-backend/pkg/db"
	"github.com/malonic/quotehub-backend/pkg/env"
	"github.com/malonic/quotehub-backend/pkg/logger"
	"github.com/malonic/quotehub-backend/pkg/metrics"
	"github.com/malonic/quotehub-backend/pkg/migrate"
	"github.com/malonic/quotehub-backend/pkg/redis"
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

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	userRepo := users.NewRepository(dbClient.DB())
	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		Passwords:      cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	userService, err := users.NewService(users.ServiceParams{
		Repo:      userRepo,
		Passwords: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}

	clientRepo := clients.NewRepository(dbClient.DB())
	clientService, err := clients.NewService(clientRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create client service", err)
		os.Exit(1)
	}

	quotationRepo := quotations.NewRepository(dbClient.DB())
	quotationService, err := quotations.NewService(quotations.ServiceParams{
		Repo:         quotationRepo,
		Clients:      clientRepo,
		ValidityDays: cfg.Export.QuotationValidityDays,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create quotation service", err)
		os.Exit(1)
	}

	renderMetrics := metrics.NewRenderMetrics(prometheus.DefaultRegisterer)
	exportAdapter := export.NewAdapter(cfg.Render, logg, renderMetrics)
	documentBuilder := export.NewDocumentBuilder(cfg.Company, exportAdapter)
	exporter, err := export.NewService(quotationRepo, exportAdapter, documentBuilder)
	if err != nil {
		logg.Error(context.Background(), "failed to create export service", err)
		os.Exit(1)
	}

	addr := ":" + env.Get("PORT", cfg.App.Port)
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:         cfg,
			Logger:         logg,
			DB:             dbClient,
			Redis:          redisClient,
			SessionManager: sessionManager,
			AuthService:    authService,
			ClientService:  clientService,
			QuoteService:   quotationService,
			UserService:    userService,
			Exporter:       exporter,
			RenderMetrics:  renderMetrics,
		}),
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	}()

	<-shutdown
	logg.Info(ctx, "shutting down api server")

	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(stopCtx); err != nil {
		logg.Error(stopCtx, "graceful shutdown failed", err)
	}
}
