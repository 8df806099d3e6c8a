package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"serviceregistry/adapters/healthprobe"
	"serviceregistry/handlers"
	"serviceregistry/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// A missing .env is fine; real deployments configure the process
	// environment directly.
	_ = godotenv.Load()

	// Initialize logger
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.WithPrefix(logger, "ts", log.DefaultTimestampUTC)
	logger = log.WithPrefix(logger, "caller", log.DefaultCaller)

	// Load configuration
	config, err := LoadConfig()
	if err != nil {
		level.Error(logger).Log("msg", "Failed to load configuration", "err", err)
		os.Exit(1)
	}
	logger = level.NewFilter(logger, allowLevel(config.LogLevel))

	level.Info(logger).Log(
		"msg", "Starting service registry",
		"port", config.Port,
		"health_check_enabled", config.Health.Enabled,
		"probe_scheme", config.ProbeScheme,
	)

	// Create the registry engine with its health monitor
	prober := healthprobe.New(&http.Client{}, config.ProbeScheme)
	registry, err := service.NewRegistry(service.Config{
		RegistrationKey: config.RegistrationKey,
		Health:          config.Health,
	}, prober, service.NewRealTimeProvider(), logger)
	if err != nil {
		level.Error(logger).Log("msg", "Failed to create registry", "err", err)
		os.Exit(1)
	}

	// Shutdown channel shared by SIGTERM and POST /admin/shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	requestShutdown := func() {
		select {
		case quit <- syscall.SIGTERM:
		default:
		}
	}

	// Create HTTP server (Echo)
	var e *echo.Echo
	{
		e = echo.New()
		e.HideBanner = true
		e.Validator = handlers.NewRequestValidator()
		e.Use(handlers.AccessLog(logger))
		e.Use(handlers.SecurityHeaders())
		e.Use(handlers.RateLimit(config.RateLimitRPS, int(config.RateLimitRPS)*2))
		service.RegisterErrorHandler(e, logger)
		handlers.RegisterRoutes(e, handlers.NewHTTPServer(registry, config.AdminAPIKey, requestShutdown, logger))
	}

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%d", config.Port)
		level.Info(logger).Log("msg", "Starting HTTP server", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			level.Error(logger).Log("msg", "HTTP server error", "err", err)
		}
	}()

	// Wait for interrupt signal or admin shutdown
	<-quit
	level.Info(logger).Log("msg", "Shutting down server...")

	// Forced exit if graceful shutdown stalls
	forced := time.AfterFunc(shutdownTimeout, func() {
		level.Error(logger).Log("msg", "Forced exit after shutdown timeout")
		os.Exit(1)
	})
	defer forced.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		level.Error(logger).Log("msg", "Error during server shutdown", "err", err)
	}
	registry.Dispose()

	level.Info(logger).Log("msg", "Server stopped")
}

// allowLevel maps LOG_LEVEL to a go-kit level filter option.
func allowLevel(name string) level.Option {
	switch name {
	case "debug":
		return level.AllowDebug()
	case "warn":
		return level.AllowWarn()
	case "error":
		return level.AllowError()
	default:
		return level.AllowInfo()
	}
}
