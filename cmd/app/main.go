package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/cmd"
	httpin "storefront/internal/adapters/in/http"
	"storefront/internal/adapters/out/postgres"
	"storefront/internal/jobs"
	"storefront/internal/pkg/logger"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func main() {
	configs := getConfigs()

	zapLogger, err := logger.New(configs.LogLevel)
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, configs, zapLogger); err != nil {
		zapLogger.Fatal("Application stopped", zap.Error(err))
	}
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	var config cmd.Config
	if err := env.Parse(&config); err != nil {
		log.Fatalf("Error parsing configuration: %v", err)
	}
	return config
}

func run(ctx context.Context, configs cmd.Config, zapLogger *zap.Logger) error {
	gormDB, err := postgres.Open(configs.DSN())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err = postgres.Migrate(ctx, gormDB); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, prometheus.DefaultRegisterer, zapLogger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			zapLogger.Warn("Failed to close connections", zap.Error(closeErr))
		}
	}()

	jobManager, err := jobs.NewJobManager(app.CreateReconcileDeliveredOrdersCommandHandler(), jobs.Config{
		ReconcileSchedule:  configs.ReconcileSchedule,
		ReconcileBatchSize: configs.ReconcileBatchSize,
	}, zapLogger)
	if err != nil {
		return err
	}
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	return startWebServer(ctx, app, configs, zapLogger)
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, configs cmd.Config, zapLogger *zap.Logger) error {
	server := httpin.NewServer(httpin.Handlers{
		CreateOrder:       app.CreateCreateOrderCommandHandler(),
		UpdateOrder:       app.CreateUpdateOrderCommandHandler(),
		MarkDelivered:     app.CreateMarkOrderDeliveredCommandHandler(),
		GetOrder:          app.CreateGetOrderQueryHandler(),
		UndeliveredOrders: app.CreateGetUndeliveredOrdersQueryHandler(),
		Images:            app.ImageStorage(),
	}, zapLogger)

	e := httpin.NewRouter(server, httpin.RouterConfig{UploadDir: configs.UploadDir})

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort))
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
