package cmd

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

	"parceldelivery/internal/adapters/out/rabbit"

	"github.com/labstack/echo/v4"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewLogger builds the service's structured logger.
func NewLogger(service string) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil)).With("service", service)
}

// OpenDatabase connects to postgres and migrates the given models.
func OpenDatabase(config Config, models ...any) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(config.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if len(models) > 0 {
		if err = db.AutoMigrate(models...); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	return db, nil
}

// ConnectBroker brings the broker connection up in the background. The client
// retries unreachable brokers indefinitely, so startup proceeds and the
// service stays alive while the connection converges; consumers registered
// before readiness start once connected.
func ConnectBroker(broker *rabbit.Client, logger *slog.Logger) {
	go func() {
		if err := broker.Connect(context.Background()); err != nil && !errors.Is(err, rabbit.ErrClientClosed) {
			logger.Error("broker connection failed", "error", err)
		}
	}()
}

// NewEcho builds an echo instance with the shared health endpoint.
func NewEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	return e
}

// RunServer starts the HTTP server and blocks until SIGINT or SIGTERM,
// then shuts it down gracefully and runs the provided cleanup.
func RunServer(e *echo.Echo, port string, logger *slog.Logger, cleanup func()) {
	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && err != http.ErrServerClosed {
			logger.Error("http server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("http shutdown failed", "error", err)
	}

	if cleanup != nil {
		cleanup()
	}
}
