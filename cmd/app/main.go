package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/cmd"
	httpin "storefront/internal/adapters/in/http"
	"storefront/internal/adapters/out/postgres"
	"storefront/internal/health"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("unable to load configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With("service", "storefront")
	if configs.TokenSecret == "" {
		logger.Warn("TOKEN_SECRET is not set, signup and login will fail until it is configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gormDB := mustGormOpen(ctx, configs)

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("unable to build application: %v", err)
	}

	jobManager, err := app.CreateJobManager()
	if err != nil {
		log.Fatalf("unable to create jobs: %v", err)
	}
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("unable to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(ctx, app, configs, logger)
}

func mustGormOpen(ctx context.Context, configs cmd.Config) *gorm.DB {
	gormDB, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("connection error: %v", err)
	}
	if err = postgres.Migrate(ctx, gormDB); err != nil {
		log.Fatalf("migration error: %v", err)
	}
	return gormDB
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, configs cmd.Config, logger *slog.Logger) {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httpin.NewErrorHandler(configs.Development(), logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.CORS())
	e.Use(httpin.RequestLogger(logger))
	e.Use(httpin.RequestMetrics(app.Metrics()))

	healthHandler := app.CreateHealthHandler()
	e.GET("/health", echo.WrapHandler(healthHandler))
	e.GET("/healthz", echo.WrapHandler(http.HandlerFunc(health.LivenessHandler)))
	e.GET("/readyz", echo.WrapHandler(http.HandlerFunc(healthHandler.ReadinessHandler)))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	server := app.CreateServer()
	server.RegisterRoutes(e,
		httpin.BearerAuth(app.Tokens(), app.Metrics(), logger),
		httpin.LoginRateLimiter(configs.LoginRateLimit, configs.LoginRateBurst),
	)

	go func() {
		logger.Info("http server starting", "port", configs.HTTPPort)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", "error", err)
	}
}
