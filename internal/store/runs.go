package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RunMode distinguishes the two pipeline operations.
type RunMode string

const (
	ModeParse RunMode = "parse"
	ModeWrite RunMode = "write"
)

// Run is one recorded pipeline invocation.
type Run struct {
	ID         string  `json:"id"`
	Mode       RunMode `json:"mode"`
	SourceFile string  `json:"source_file"`
	OutputFile string  `json:"output_file,omitempty"`

	SheetCount    int `json:"sheet_count"`
	QuestionCount int `json:"question_count"`

	Applied        int `json:"applied"`
	SkippedFormula int `json:"skipped_formula"`
	StaleTarget    int `json:"stale_target"`
	Orphaned       int `json:"orphaned"`

	ErrorMessage string    `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// RecordRun inserts a run row. A zero ID gets a fresh uuid.
func (s *Store) RecordRun(run Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	_, err := s.db.Exec(`
		INSERT INTO runs (
			id, mode, source_file, output_file,
			sheet_count, question_count,
			applied, skipped_formula, stale_target, orphaned,
			error_message
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, string(run.Mode), run.SourceFile, run.OutputFile,
		run.SheetCount, run.QuestionCount,
		run.Applied, run.SkippedFormula, run.StaleTarget, run.Orphaned,
		run.ErrorMessage)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, mode, source_file, output_file,
		       sheet_count, question_count,
		       applied, skipped_formula, stale_target, orphaned,
		       error_message, created_at
		FROM runs
		ORDER BY created_at DESC, id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var mode string
		if err := rows.Scan(
			&r.ID, &mode, &r.SourceFile, &r.OutputFile,
			&r.SheetCount, &r.QuestionCount,
			&r.Applied, &r.SkippedFormula, &r.StaleTarget, &r.Orphaned,
			&r.ErrorMessage, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.Mode = RunMode(mode)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
