package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ramhdi/vimana2/internal/config"
	"github.com/ramhdi/vimana2/internal/database"
	"github.com/ramhdi/vimana2/internal/logging"
	"github.com/ramhdi/vimana2/internal/observability"
	"github.com/ramhdi/vimana2/internal/server"
	"github.com/ramhdi/vimana2/internal/service"
)

func main() {
	cfg := config.Load()
	logger := logging.Setup(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	if err := observability.InitSentry(cfg.SentryDSN, cfg.AppEnv); err != nil {
		logger.Error("init sentry", "error", err)
	}
	defer observability.FlushSentry()

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		logger.Error("open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	srv := server.New(db, cfg, logger)

	if err := srv.AuthService().BootstrapAdmin(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		logger.Error("bootstrap admin", "error", err)
		os.Exit(1)
	}

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	sweeper := service.NewSessionSweeper(srv.SessionStore(), cfg.SweepInterval, logger.With("component", "sweeper"))
	go sweeper.Run(sweepCtx)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	stopSweep()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("shutdown", "error", err)
	}
}
