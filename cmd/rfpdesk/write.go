package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rfpdesk/internal/model"
)

func newWriteCmd() *cobra.Command {
	var (
		inputPath   string
		answersPath string
		outputPath  string
	)

	cmd := &cobra.Command{
		Use:   "write",
		Short: "Write generated answers back into a copy of the questionnaire",
		Long: `Write applies an answers JSON file to a fresh copy of the source
document. The original is never opened writable; the output defaults to
"<input>_answered.xlsx" and differs from the source only in the
targeted response and score cells.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(inputPath); err != nil {
				return fmt.Errorf("input file: %w", err)
			}

			data, err := os.ReadFile(answersPath)
			if err != nil {
				return fmt.Errorf("answers file: %w", err)
			}
			var set model.AnswerSet
			if err := json.Unmarshal(data, &set); err != nil {
				return fmt.Errorf("answers file: %w", err)
			}

			report, err := newEngine().WriteAnswers(inputPath, set, outputPath)
			if err != nil {
				return err
			}

			fmt.Fprintf(os.Stderr, "applied=%d skipped_formula=%d stale_target=%d orphaned=%d\n",
				report.Applied, report.SkippedFormula, report.StaleTarget, report.Orphaned)

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{
				"status":      "success",
				"output_file": report.OutputFile,
				"report":      report,
			})
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "Path to the original xlsx file")
	cmd.Flags().StringVar(&answersPath, "answers", "", "Path to the answers JSON file")
	cmd.Flags().StringVar(&outputPath, "output", "", "Output path (default: <input>_answered.xlsx)")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("answers")

	return cmd
}
