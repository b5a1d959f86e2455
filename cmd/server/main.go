package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/Tesseract-Nexus/admin-bff/internal/api"
	"github.com/Tesseract-Nexus/admin-bff/internal/config"
	"github.com/Tesseract-Nexus/admin-bff/internal/pkg/logger"
	"github.com/Tesseract-Nexus/admin-bff/internal/repository/postgres"
	"github.com/Tesseract-Nexus/admin-bff/internal/service/audit"
	"github.com/Tesseract-Nexus/admin-bff/internal/settings"
)

// checkPortAvailable verifies that the target port is not already in use,
// so a stale stub-backend process does not silently answer dashboard calls.
func checkPortAvailable(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("port %d is already in use (addr %s): %v", port, addr, err)
	}
	ln.Close()
	return nil
}

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.LoadFromEnv(configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err.Error())
		os.Exit(1)
	}

	host := cfg.Server.GetHost()
	if err := checkPortAvailable(host, cfg.Server.Port); err != nil {
		logger.Error("port check failed", "error", err.Error())
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var auditSvc *audit.Service
	if cfg.Audit.Enabled && cfg.Audit.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.Audit.DatabaseURL)
		if err != nil {
			logger.Error("failed to open audit database", "error", err.Error())
			os.Exit(1)
		}
		defer db.Close()
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
		if err := db.PingContext(pingCtx); err != nil {
			logger.Warn("audit database unreachable, continuing without audit", "error", err.Error())
		} else {
			auditSvc = audit.NewService(postgres.NewAuditRepo(db))
			logger.Info("audit log enabled")
		}
		pingCancel()
	}

	var settingsStore settings.Store
	if cfg.Redis.Enabled && cfg.Redis.URL != "" {
		store, err := settings.NewRedisStore(cfg.Redis.URL, cfg.Cache.SettingsTTL())
		if err != nil {
			logger.Error("invalid redis url", "error", err.Error())
			os.Exit(1)
		}
		settingsStore = store
		logger.Info("settings cache backed by redis")
	} else {
		settingsStore = settings.NewMemoryStore(cfg.Cache.SettingsTTL(), cfg.Cache.SettingsMaxEntries)
	}

	server := api.NewServer(ctx, cfg, auditSvc, settingsStore)

	addr := fmt.Sprintf("%s:%d", host, cfg.Server.Port)
	go func() {
		logger.Info("admin BFF listening",
			"addr", addr,
			"tenants", cfg.Tenants.BaseURL,
			"orders", cfg.Orders.BaseURL,
			"shipping", cfg.Shipping.BaseURL,
			"customDomain", cfg.CustomDomain.BaseURL,
			"settings", cfg.Settings.BaseURL,
			"devMode", fmt.Sprintf("%t", cfg.Auth.DevMode))
		if err := server.ListenAndServe(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "error", err.Error())
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err.Error())
	}
}
