// Command batchmutd runs the batch mutation engine daemon: it loads a
// persisted ArchiMate model snapshot, executes change plans submitted over
// HTTP, and schedules periodic orphan sweeps and idempotency-cache
// eviction.
//
// Structured logging follows the teacher's convention: JSON to stderr via
// log/slog, level controlled by configuration (internal/config/config.go).
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// version is set via ldflags at build time, mirroring the teacher's
// cmd/specmcp Version convention.
var version = "dev"

var (
	configPath string
	modelPath  string
)

var rootCmd = &cobra.Command{
	Use:   "batchmutd",
	Short: "Batched mutation engine for an in-memory ArchiMate model",
	Long: `batchmutd executes ordered change plans against an in-memory
ArchiMate graph model as single undoable transactions, with duplicate
detection, cascading deletes, bounded chunking, and a read-only orphan
detector.`,
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to batchmut.toml (default: search BATCHMUT_CONFIG, ./batchmut.toml, ~/.config/batchmut/batchmut.toml)")
	rootCmd.PersistentFlags().StringVar(&modelPath, "model", "model.json", "path to the persisted model snapshot")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "batchmutd: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(level string) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(level),
	}))
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
