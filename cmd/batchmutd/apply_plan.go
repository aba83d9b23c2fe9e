package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/archimate-engine/batchmut/internal/config"
	"github.com/archimate-engine/batchmut/internal/engine"
	"github.com/archimate-engine/batchmut/internal/model"
	"github.com/archimate-engine/batchmut/internal/validation"
)

var applyPlanCmd = &cobra.Command{
	Use:   "apply-plan <plan.json>",
	Short: "Execute a single change plan against the model snapshot and exit",
	Args:  cobra.ExactArgs(1),
	RunE:  runApplyPlan,
}

func init() {
	rootCmd.AddCommand(applyPlanCmd)
}

func runApplyPlan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := newLogger(cfg.Log.Level)

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading plan file: %w", err)
	}

	m, err := model.LoadFile(modelPath)
	if err != nil {
		return fmt.Errorf("loading model snapshot: %w", err)
	}

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

	result, cerr := engine.ExecutePlan(context.Background(), m, raw, validationCfg, engineCfg, host)
	if cerr != nil {
		enc := json.NewEncoder(os.Stderr)
		enc.SetIndent("", "  ")
		_ = enc.Encode(map[string]any{
			"code":           cerr.Code,
			"message":        cerr.Message,
			"operationIndex": cerr.OperationIndex,
			"details":        cerr.Details,
		})
		return fmt.Errorf("plan rejected: %s", cerr.Code)
	}

	if err := m.SaveFile(modelPath); err != nil {
		return fmt.Errorf("saving model snapshot: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
