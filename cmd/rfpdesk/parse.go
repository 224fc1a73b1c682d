package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"rfpdesk/internal/engine"
)

func newParseCmd() *cobra.Command {
	var (
		inputPath string
		sheets    string
		batches   bool
	)

	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Detect structure and extract questions from a questionnaire",
		Long: `Parse lists every sheet with its answerability and detected column
layout. With --sheets, the matching sheets' extracted question list is
included; --batches additionally plans the generation batches.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(inputPath); err != nil {
				return fmt.Errorf("input file: %w", err)
			}

			opts := engine.ParseOptions{IncludeBatches: batches}
			for _, s := range strings.Split(sheets, ",") {
				if s = strings.TrimSpace(s); s != "" {
					opts.SheetFilter = append(opts.SheetFilter, s)
				}
			}

			report, err := newEngine().Parse(inputPath, opts)
			if err != nil {
				return err
			}

			for _, sheet := range report.Sheets {
				if sheet.Answerable {
					fmt.Fprintf(os.Stderr, "%s: %d questions\n", sheet.Name, sheet.QuestionCount)
				} else {
					fmt.Fprintf(os.Stderr, "%s: not answerable (%s)\n", sheet.Name, sheet.Reason)
				}
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "Path to the xlsx file")
	cmd.Flags().StringVar(&sheets, "sheets", "", "Comma-separated sheet names to extract questions from")
	cmd.Flags().BoolVar(&batches, "batches", false, "Include planned generation batches (with --sheets)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}
