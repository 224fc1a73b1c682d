// Package main is the rfpdesk CLI: questionnaire structure detection,
// question extraction, and answer write-back for xlsx documents.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"rfpdesk/internal/config"
	"rfpdesk/internal/detector"
	"rfpdesk/internal/engine"
	"rfpdesk/internal/extractor"
	"rfpdesk/internal/planner"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rfpdesk",
		Short: "Questionnaire structure detection and answer write-back",
		Long: `rfpdesk parses multi-sheet xlsx questionnaires (RFP/RFI style),
detects which columns hold questions, responses and scores, extracts a
normalized question list, and writes generated answers back into a new
copy of the document without touching formatting or formulas.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newWriteCmd())
	rootCmd.AddCommand(newServeCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newEngine builds an engine from config.toml (or defaults). CLI runs
// are one-shot and keep no run history.
func newEngine() *engine.Engine {
	cfg, err := config.LoadConfig()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	return engine.New(engine.Config{
		Detector: detector.Options{
			ScanRows:         cfg.Detect.HeaderScanRows,
			MinHeaderCells:   cfg.Detect.HeaderMinCells,
			MaxHeaderCellLen: cfg.Detect.HeaderMaxCellLen,
		},
		Extractor: extractor.Options{
			DividerMaxLen: cfg.Detect.DividerMaxLen,
		},
		Planner: planner.Options{
			Ceiling: cfg.Batch.Ceiling,
			Floor:   cfg.Batch.Floor,
		},
	})
}
