package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/archimate-engine/batchmut/internal/config"
	"github.com/archimate-engine/batchmut/internal/engine"
	"github.com/archimate-engine/batchmut/internal/idempotency"
	"github.com/archimate-engine/batchmut/internal/maintenance"
	"github.com/archimate-engine/batchmut/internal/model"
	"github.com/archimate-engine/batchmut/internal/transport"
	"github.com/archimate-engine/batchmut/internal/validation"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP host: POST /plans, GET /orphans, GET /health",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := newLogger(cfg.Log.Level)

	logger.Info("starting batchmutd", "version", version, "model", modelPath)

	m, err := model.LoadFile(modelPath)
	if err != nil {
		return fmt.Errorf("loading model snapshot: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	host := engine.Host{
		Factory: engine.DefaultFactory{},
		Stack:   engine.NewDefaultStack(),
		Clock:   engine.RealClock{},
		Logger:  logger,
	}

	engineCfg := engine.Config{
		ChunkMode:  chunkModeFromString(cfg.Engine.ChunkMode),
		ChunkSize:  cfg.Engine.ChunkSize,
		SettleTime: cfg.SettleDuration(),
		Timeout:    cfg.TimeoutDuration(),
	}
	validationCfg := validation.Config{MaxChanges: cfg.Engine.MaxChanges}

	cache := idempotency.New(cfg.Idempotency.Capacity, cfg.IdempotencyTTL())

	scheduler := maintenance.NewScheduler(logger)
	if cfg.Maintenance.Enabled {
		interval := time.Duration(cfg.Maintenance.IntervalHours) * time.Hour
		scheduler.AddJob(maintenance.NewOrphanSweep(m, logger), interval)
		scheduler.AddJob(maintenance.NewCacheEviction(cache, logger), interval)
		scheduler.Start(ctx)
		defer scheduler.Stop()
	}

	srv := transport.New(m, host, engineCfg, validationCfg, cache, cfg.Transport.CORSOrigins, logger)

	addr := cfg.Transport.Host + ":" + cfg.Transport.Port
	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv.Handler(),
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("error during shutdown", "error", err)
		}
	}

	if err := m.SaveFile(modelPath); err != nil {
		return fmt.Errorf("saving model snapshot: %w", err)
	}
	logger.Info("model snapshot saved", "path", modelPath)
	return nil
}

func chunkModeFromString(s string) engine.ChunkMode {
	if s == "per-operation" {
		return engine.ChunkPerOperation
	}
	return engine.ChunkThreshold
}
