package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ikkim/storefront/config"
	"github.com/ikkim/storefront/internal/app"
	"github.com/ikkim/storefront/internal/app/service"
	"github.com/ikkim/storefront/internal/db"
	"github.com/ikkim/storefront/internal/scheduler"
	"github.com/ikkim/storefront/internal/validation"
	"github.com/ikkim/storefront/pkg/logger"
	"github.com/ikkim/storefront/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logger.Initialize(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		EnableColor: cfg.Server.Environment == "development",
	})

	logger.Info("Starting storefront server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   cfg.Log.Level,
	})

	if err := validation.RegisterWithGin(); err != nil {
		logger.Fatal("Failed to register validators", err)
	}

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// A nil *redis.ProductCache must not reach the service as a non-nil interface.
	var cache service.ProductCache
	if cfg.Redis.Enabled {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Warn("Redis unavailable, product cache disabled", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			cache = redis.NewProductCache(redis.GetClient(), cfg.Redis.CacheTTL)
			defer func() {
				if err := redis.Close(); err != nil {
					logger.Error("Failed to close Redis connection", err)
				}
			}()
		}
	}

	services := app.NewServices(db.GetDB(), cache)
	engine := app.NewEngine(services, cfg)

	purgeScheduler := scheduler.NewCartPurgeScheduler(services.Cart, cfg.Cart.PurgeSchedule, cfg.Cart.TTL)
	if err := purgeScheduler.Start(); err != nil {
		logger.Fatal("Failed to start cart purge scheduler", err)
	}
	defer purgeScheduler.Stop()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: engine,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...", map[string]interface{}{
		"timeout": cfg.Server.ShutdownTimeout.String(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", err)
		return
	}

	logger.Info("Server stopped successfully")
}
