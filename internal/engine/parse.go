package engine

import (
	"github.com/xuri/excelize/v2"

	"rfpdesk/internal/model"
	"rfpdesk/internal/planner"
	"rfpdesk/internal/store"
	"rfpdesk/internal/table"
)

// ParseOptions selects what the parse report carries.
type ParseOptions struct {
	// SheetFilter limits question extraction to the matching sheets.
	// Empty means structure report only, no question list.
	SheetFilter []string
	// IncludeBatches attaches the planned batches for the extracted
	// questions. Only meaningful together with a sheet filter.
	IncludeBatches bool
}

// Parse loads the workbook, detects every sheet's layout, and builds
// the structure report. Non-answerable sheets are recorded with their
// reason and processing continues; only an unreadable document aborts.
func (e *Engine) Parse(path string, opts ParseOptions) (*model.ParseReport, error) {
	wb, err := table.Load(path)
	if err != nil {
		return nil, err
	}

	report := &model.ParseReport{File: wb.File}

	sheetNames := make([]string, 0, len(wb.Sheets))
	for _, s := range wb.Sheets {
		sheetNames = append(sheetNames, s.Name)
	}

	selected := make(map[string]bool)
	for _, query := range opts.SheetFilter {
		if name := matchSheetName(query, sheetNames); name != "" {
			selected[name] = true
		}
	}

	for _, sheet := range wb.Sheets {
		sr := model.SheetReport{Name: sheet.Name}

		layout, reason := e.det.Detect(sheet)
		if !layout.Answerable() {
			sr.Reason = reason
			report.Sheets = append(report.Sheets, sr)
			continue
		}

		questions := e.ext.Extract(sheet, layout)

		sr.Answerable = true
		sr.QuestionCount = len(questions)
		sr.Layout = layoutInfo(layout)
		sr.Ambiguous = layout.Ambiguous
		report.Sheets = append(report.Sheets, sr)

		if selected[sheet.Name] {
			report.Questions = append(report.Questions, questions...)
		}
	}

	if opts.IncludeBatches && len(report.Questions) > 0 {
		report.Batches = planner.Plan(report.Questions, e.plan)
	}

	e.logRun(store.Run{
		Mode:          store.ModeParse,
		SourceFile:    wb.File,
		SheetCount:    len(report.Sheets),
		QuestionCount: totalQuestions(report.Sheets),
	})

	return report, nil
}

func totalQuestions(sheets []model.SheetReport) int {
	n := 0
	for _, s := range sheets {
		n += s.QuestionCount
	}
	return n
}

// layoutInfo renders column indices as letters for the JSON report.
func layoutInfo(layout *model.ColumnLayout) *model.LayoutInfo {
	col := func(n int) string {
		if n <= 0 {
			return ""
		}
		name, err := excelize.ColumnNumberToName(n)
		if err != nil {
			return ""
		}
		return name
	}
	return &model.LayoutInfo{
		HeaderRow:     layout.HeaderRow,
		QuestionCol:   col(layout.QuestionCol),
		ResponseCol:   col(layout.ResponseCol),
		ScoreCol:      col(layout.ScoreCol),
		IDCol:         col(layout.IDCol),
		AdditionalCol: col(layout.AdditionalCol),
	}
}
