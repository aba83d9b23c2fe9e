package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/archimate-engine/batchmut/internal/maintenance"
	"github.com/archimate-engine/batchmut/internal/model"
)

var detectOrphansCmd = &cobra.Command{
	Use:   "detect-orphans",
	Short: "Run the read-only orphan sweep against the model snapshot and print the report",
	RunE:  runDetectOrphans,
}

func init() {
	rootCmd.AddCommand(detectOrphansCmd)
}

func runDetectOrphans(cmd *cobra.Command, args []string) error {
	m, err := model.LoadFile(modelPath)
	if err != nil {
		return fmt.Errorf("loading model snapshot: %w", err)
	}

	report := maintenance.DetectOrphans(m)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
