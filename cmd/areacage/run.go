package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nvalkov/areacage/internal/app"
	"github.com/nvalkov/areacage/internal/config"
)

// run wires the application and blocks until shutdown.
func run(logger *log.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logStartup(logger, cfg)

	appInstance, err := app.New(cfg, logger)
	if err != nil {
		return err
	}
	if err := appInstance.Start(); err != nil {
		return err
	}
	defer func() {
		if err := appInstance.Stop(); err != nil {
			logger.Error("shutdown", "err", err)
		}
	}()

	mux := http.NewServeMux()
	appInstance.RegisterRoutes(mux, "")
	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// logStartup prints startup checks and connection info.
func logStartup(logger *log.Logger, cfg config.Config) {
	logger.Info("AreaCage starting")
	logEnvStatus(logger, cfg)
	logger.Info("default tablet", "id", cfg.DefaultTablet)
	logListenStatus(logger, cfg.ListenAddr)
}

// logEnvStatus reports whether a .env file was found and whether the UI
// password is set.
func logEnvStatus(logger *log.Logger, cfg config.Config) {
	envPath := filepath.Join(cfg.DataDir, ".env")
	if fileExists(envPath) {
		logger.Info("env check: ok", "path", envPath)
	} else {
		logger.Info("env check: missing", "path", envPath)
	}
	if strings.TrimSpace(cfg.UIPassword) == "" {
		logger.Warn("UI_PASSWORD unset, running without authentication")
	} else {
		logger.Info("env UI_PASSWORD: set")
	}
}

// logListenStatus reports the listen address and a local URL helper.
func logListenStatus(logger *log.Logger, addr string) {
	logger.Info("listen addr", "addr", addr)
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	logger.Info("local url", "url", "http://"+net.JoinHostPort(host, port))
}

// fileExists reports whether a path exists and is a file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
