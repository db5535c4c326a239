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

	"github.com/joho/godotenv"

	"github.com/hongminglow/va-ops-be/internal/airline"
	"github.com/hongminglow/va-ops-be/internal/auth"
	"github.com/hongminglow/va-ops-be/internal/config"
	"github.com/hongminglow/va-ops-be/internal/logger"
	"github.com/hongminglow/va-ops-be/internal/metrics"
	"github.com/hongminglow/va-ops-be/internal/server"
	"github.com/hongminglow/va-ops-be/internal/storage"
	"github.com/hongminglow/va-ops-be/internal/storage/memory"
	"github.com/hongminglow/va-ops-be/internal/storage/postgres"
)

func main() {
	envLoaded := godotenv.Load() == nil

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if !envLoaded {
		log.Info("no .env file found; relying on existing environment")
	}

	gate, err := newGate(cfg)
	if err != nil {
		log.Fatal("init admin gate", "error", err)
	}

	ctx := context.Background()
	store, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("init storage", "error", err)
	}
	defer store.Close()

	m := metrics.New(cfg.MetricsNamespace)
	sessions := auth.NewRegistry(
		auth.NewTokenManager(cfg.SessionSecret, cfg.SessionIssuer, cfg.SessionTTL),
		auth.WithSessionLimit(cfg.SessionLimit),
	)

	srv := server.New(cfg, server.Deps{
		Ops:      airline.NewService(gate, store, log, m),
		Sessions: sessions,
		Log:      log,
		Metrics:  m,
	})

	go func() {
		log.Info("VA operations backend listening", "address", cfg.HTTPAddress())
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server error", "error", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Error("graceful shutdown error", "error", err)
	}
	log.Info("server stopped")
}

func newGate(cfg config.Config) (*auth.Gate, error) {
	if cfg.AdminPasswordHash != "" {
		return auth.NewGate(cfg.AdminPasswordHash)
	}
	return auth.NewGateFromPassword(cfg.AdminPassword)
}

// openStore picks postgres when DATABASE_URL is set and falls back to the
// in-process store otherwise.
func openStore(ctx context.Context, cfg config.Config, log logger.Logger) (storage.Store, error) {
	if cfg.DatabaseURL == "" {
		log.Warn("DATABASE_URL not set; records will not survive a restart")
		return memory.NewStore(), nil
	}
	store, err := postgres.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	return store, nil
}
