package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kanban/internal/config"
	"kanban/internal/db"
	httpServer "kanban/internal/http"
	"kanban/internal/http/handlers"
	"kanban/internal/http/middleware"
	"kanban/internal/logger"
	"kanban/internal/service"

	"github.com/gin-gonic/gin"
)

var version = "dev"

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := db.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		logger.Fatal("open database", "error", err)
	}
	defer store.Close()

	// falls back to the in-process limiter when REDIS_ADDR is empty or unreachable
	if middleware.InitRedisRateLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB) {
		defer middleware.CloseRedisRateLimiter()
	}

	audit := service.NewAuditService()
	auth := service.NewAuthService(store.Users, audit)
	tasks := service.NewTaskService(store.Tasks, audit)
	sessions := service.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL)

	h := handlers.NewHandlerWithConfig(auth, tasks, sessions, audit, handlers.HandlerConfig{
		CookieSecure: cfg.CookieSecure,
	})
	health := handlers.NewHealthHandler(store, store.Name, version)

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := httpServer.NewRouter(h, health, httpServer.Limits{
		AuthRateLimit:   cfg.AuthRateLimit,
		AuthRateWindow:  cfg.AuthRateWindow,
		TaskWriteLimit:  cfg.TaskWriteLimit,
		TaskWriteWindow: cfg.TaskWriteWindow,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "backend", store.Name, "version", version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
