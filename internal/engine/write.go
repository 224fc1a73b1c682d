package engine

import (
	"path/filepath"

	"rfpdesk/internal/model"
	"rfpdesk/internal/store"
	"rfpdesk/internal/writer"
)

// WriteAnswers applies the answer set to a fresh copy of the source
// document. Self-contained: the valid target set is re-derived from the
// file, nothing carries over from a parse invocation.
func (e *Engine) WriteAnswers(path string, set model.AnswerSet, outputPath string) (*model.WriteReport, error) {
	report, err := e.wr.Write(path, set, writer.Options{OutputPath: outputPath})
	if err != nil {
		return nil, err
	}

	e.logRun(store.Run{
		Mode:           store.ModeWrite,
		SourceFile:     filepath.Base(path),
		OutputFile:     filepath.Base(report.OutputFile),
		Applied:        report.Applied,
		SkippedFormula: report.SkippedFormula,
		StaleTarget:    report.StaleTarget,
		Orphaned:       report.Orphaned,
	})

	return report, nil
}
