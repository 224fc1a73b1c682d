// Package writer applies externally generated answers to a fresh copy
// of the source document.
//
// Hard constraints: the source file is never opened writable and its
// bytes are provably unchanged (checksummed before and after); the
// output differs from the source only in the targeted response and
// score cells; formula cells are never overwritten; the output either
// appears complete at its final path or not at all.
package writer

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"rfpdesk/internal/detector"
	"rfpdesk/internal/extractor"
	"rfpdesk/internal/model"
	"rfpdesk/internal/table"
)

// Options configures a write run.
type Options struct {
	// OutputPath names the new document. Empty derives
	// "<base>_answered<ext>" beside the source.
	OutputPath string

	Detector  detector.Options
	Extractor extractor.Options
}

// Writer performs answer write-back. It re-derives the valid target set
// from the source file itself, so a write invocation shares no state
// with any earlier parse invocation.
type Writer struct {
	det *detector.Detector
	ext *extractor.Extractor
}

// New creates a writer.
func New(opts Options) *Writer {
	return &Writer{
		det: detector.New(opts.Detector),
		ext: extractor.New(opts.Extractor),
	}
}

// Write produces the answered copy of sourcePath and the per-record
// application report. Individual bad records (stale target, formula
// conflict, orphan) are reported and skipped; they never abort the run.
func (w *Writer) Write(sourcePath string, set model.AnswerSet, opts Options) (*model.WriteReport, error) {
	outputPath := opts.OutputPath
	if outputPath == "" {
		outputPath = derivedOutputPath(sourcePath)
	}
	// The source is read-only; refuse before anything is saved rather
	// than detecting the clobber afterwards.
	if samePath(sourcePath, outputPath) {
		return nil, fmt.Errorf("output path %s resolves to the source document", outputPath)
	}

	sumBefore, err := checksumFile(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("checksum source: %w", err)
	}

	// Freshly reloaded model of the source: extraction here defines which
	// (sheet, row) targets are legitimate. Records pointing anywhere else
	// are rejected, never guessed at.
	wb, err := table.Load(sourcePath)
	if err != nil {
		return nil, err
	}
	targets := w.validTargets(wb)

	f, err := excelize.OpenFile(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", table.ErrUnreadableDocument, err)
	}
	defer f.Close()

	report := &model.WriteReport{OutputFile: outputPath}

	sheetNames := make([]string, 0, len(set.Answers))
	for name := range set.Answers {
		sheetNames = append(sheetNames, name)
	}
	sort.Strings(sheetNames)

	for _, sheetName := range sheetNames {
		sheet := wb.SheetByName(sheetName)
		for _, rec := range set.Answers[sheetName] {
			w.applyRecord(f, sheet, sheetName, rec, targets[sheetName], report)
		}
	}

	if err := saveAtomic(f, outputPath); err != nil {
		return nil, err
	}

	sumAfter, err := checksumFile(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("checksum source after write: %w", err)
	}
	if sumBefore != sumAfter {
		return nil, fmt.Errorf("source file %s changed during write-back", sourcePath)
	}

	return report, nil
}

// validTargets maps sheet name to the set of rows a question was
// extracted from.
func (w *Writer) validTargets(wb *model.Workbook) map[string]map[int]bool {
	targets := make(map[string]map[int]bool)
	for _, sheet := range wb.Sheets {
		layout, _ := w.det.Detect(sheet)
		if !layout.Answerable() {
			continue
		}
		rows := make(map[int]bool)
		for _, q := range w.ext.Extract(sheet, layout) {
			rows[q.Row] = true
		}
		targets[sheet.Name] = rows
	}
	return targets
}

func (w *Writer) applyRecord(f *excelize.File, sheet *model.Sheet, sheetName string, rec model.AnswerRecord, rows map[int]bool, report *model.WriteReport) {
	result := model.RecordResult{Sheet: sheetName, Row: rec.Row, Column: rec.ResponseCol}

	if sheet == nil {
		result.Status = model.StatusStaleTarget
		result.Detail = "sheet not found in source document"
		report.Add(result)
		return
	}
	if rec.Row < 1 || rec.Row > sheet.RowCount() {
		result.Status = model.StatusStaleTarget
		result.Detail = fmt.Sprintf("row %d outside sheet's %d rows", rec.Row, sheet.RowCount())
		report.Add(result)
		return
	}
	if !rows[rec.Row] {
		result.Status = model.StatusOrphaned
		result.Detail = "no question was extracted at this row"
		report.Add(result)
		return
	}

	report.Add(w.writeCell(f, sheetName, rec.Row, rec.ResponseCol, rec.Answer))

	// Optional score write: both value and column must be supplied.
	if rec.Score != "" && rec.ScoreCol != "" {
		report.Add(w.writeCell(f, sheetName, rec.Row, rec.ScoreCol, rec.Score))
	}
}

// writeCell sets the cell value only. The cell's style stays whatever
// the original template defined; formula cells are left untouched and
// reported as conflicts.
func (w *Writer) writeCell(f *excelize.File, sheetName string, row int, col, value string) model.RecordResult {
	result := model.RecordResult{Sheet: sheetName, Row: row, Column: col}

	addr := fmt.Sprintf("%s%d", col, row)
	if formula, err := f.GetCellFormula(sheetName, addr); err == nil && formula != "" {
		result.Status = model.StatusSkippedFormula
		result.Detail = "target cell is formula-derived"
		return result
	}

	if err := f.SetCellValue(sheetName, addr, value); err != nil {
		result.Status = model.StatusStaleTarget
		result.Detail = err.Error()
		return result
	}
	result.Status = model.StatusApplied
	return result
}

// saveAtomic writes to a temp path in the output directory and renames
// into place, so a failed run leaves no partial output behind.
func saveAtomic(f *excelize.File, outputPath string) error {
	if dir := filepath.Dir(outputPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	// The temp name keeps the real extension: SaveAs validates the
	// workbook format from it and rejects anything else.
	ext := filepath.Ext(outputPath)
	tmpPath := fmt.Sprintf("%s.tmp-%s%s", strings.TrimSuffix(outputPath, ext), uuid.New().String()[:8], ext)
	if err := f.SaveAs(tmpPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write output: %w", err)
	}
	if err := os.Rename(tmpPath, outputPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("finalize output: %w", err)
	}
	return nil
}

// derivedOutputPath suffixes the source name, keeping its extension:
// questionnaire.xlsx -> questionnaire_answered.xlsx.
func derivedOutputPath(sourcePath string) string {
	ext := filepath.Ext(sourcePath)
	base := strings.TrimSuffix(sourcePath, ext)
	return base + "_answered" + ext
}

// samePath reports whether two paths address the same file location.
func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

func checksumFile(path string) (string, error) {
	fh, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer fh.Close()

	h := sha256.New()
	if _, err := io.Copy(h, fh); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
