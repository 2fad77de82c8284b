// cmd/worker-manager/main.go
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

	"civic-relevance-workers/internal/common/camunda"
	"civic-relevance-workers/internal/common/config"
	"civic-relevance-workers/internal/common/logger"
	"civic-relevance-workers/internal/common/observability"
	"civic-relevance-workers/internal/dataset"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "worker-manager: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer func() { _ = zapLog.Sync() }()
	log := logger.NewZapAdapter(zapLog).WithFields(map[string]interface{}{
		"app":         cfg.App.Name,
		"environment": cfg.App.Environment,
	})
	log.Info("Starting worker manager...", map[string]interface{}{"dataSource": cfg.Explorer.DataSource})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	obs, err := observability.New(cfg.App.Name, nil)
	if err != nil {
		return err
	}

	conns, err := connect(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer conns.Close()

	src, err := dataset.NewSource(cfg.Explorer, dataset.Deps{
		DB:     dbOf(conns),
		Redis:  conns.redis.Client,
		Logger: log,
	})
	if err != nil {
		return err
	}

	// fail fast on an unreadable dataset rather than on the first job
	ds, err := dataset.Load(ctx, src)
	if err != nil {
		return err
	}
	log.Info("dataset ready", map[string]interface{}{
		"source":   src.Name(),
		"profiles": len(ds.Profiles),
		"issues":   len(ds.Issues),
	})

	zeebe, err := camunda.NewClientWithConfig(ctx, camunda.ConfigFrom(cfg.Camunda), log)
	if err != nil {
		return err
	}
	defer zeebe.Close()
	log.Info("Zeebe client connected successfully", nil)

	regs := buildHandlers(cfg, src, conns, log, obs)
	workers := startWorkers(zeebe.GetClient(), cfg, regs, log, obs)
	log.Info("workers registered", map[string]interface{}{"count": len(workers)})

	// --- Health & Metrics Server ---
	srv := newServer(cfg.Server.Address, map[string]readinessCheck{
		"zeebe":    zeebe.HealthCheck,
		"backends": conns.Ping,
	}, log)
	go func() {
		log.Info("Health/Metrics server listening", map[string]interface{}{"address": cfg.Server.Address})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Health/Metrics server failed", map[string]interface{}{"error": err.Error()})
			stop()
		}
	}()

	// --- Graceful Shutdown ---
	<-ctx.Done()
	log.Info("Shutdown signal received, stopping workers...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Stop()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Error stopping health server", map[string]interface{}{"error": err.Error()})
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		log.Error("Error stopping telemetry", map[string]interface{}{"error": err.Error()})
	}

	log.Info("Worker manager stopped", nil)
	return nil
}
