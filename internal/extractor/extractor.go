// Package extractor walks an answerable sheet and produces its ordered,
// normalized question list.
package extractor

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"rfpdesk/internal/model"
)

// Options tunes row heuristics.
type Options struct {
	// DividerMaxLen is the rune length below which a lone question-column
	// text is treated as a section divider rather than a question.
	DividerMaxLen int
}

// DefaultOptions returns the standard thresholds.
func DefaultOptions() Options {
	return Options{DividerMaxLen: 80}
}

// Extractor produces question records from a sheet plus its layout.
// Extraction is idempotent: same sheet and layout in, same question list
// out, in original row order.
type Extractor struct {
	opts Options
}

// New creates an extractor.
func New(opts Options) *Extractor {
	if opts.DividerMaxLen <= 0 {
		opts.DividerMaxLen = DefaultOptions().DividerMaxLen
	}
	return &Extractor{opts: opts}
}

// Extract walks rows below the header in order. Section dividers update
// the running category and emit nothing; question rows become Question
// records with the sheet name as the default category.
func (e *Extractor) Extract(sheet *model.Sheet, layout *model.ColumnLayout) []model.Question {
	if sheet == nil || !layout.Answerable() {
		return nil
	}

	responseCol, _ := excelize.ColumnNumberToName(layout.ResponseCol)
	scoreCol := ""
	if layout.ScoreCol > 0 {
		scoreCol, _ = excelize.ColumnNumberToName(layout.ScoreCol)
	}

	headerText := sheet.Value(layout.HeaderRow, layout.QuestionCol)
	category := sheet.Name

	var questions []model.Question
	for row := layout.FirstDataRow(); row <= sheet.RowCount(); row++ {
		text := sheet.Value(row, layout.QuestionCol)
		id := ""
		if layout.IDCol > 0 {
			id = sheet.Value(row, layout.IDCol)
		}

		if text == "" && id == "" {
			continue
		}
		// Repeated header rows, formula echoes and totals rows are noise.
		if text == headerText && text != "" {
			continue
		}
		if strings.HasPrefix(text, "=") {
			continue
		}
		if hasTotalPrefix(text) || hasTotalPrefix(id) {
			continue
		}

		if e.isSectionDivider(sheet, layout, row, text, id) {
			if text != "" {
				category = text
			} else if id != "" {
				category = id
			}
			continue
		}

		if text == "" {
			continue
		}

		q := model.Question{
			Sheet:            sheet.Name,
			Row:              row,
			ID:               id,
			Text:             text,
			Category:         category,
			Type:             Classify(text),
			ExistingResponse: sheet.Value(row, layout.ResponseCol),
			ResponseCol:      responseCol,
			ScoreCol:         scoreCol,
		}
		if layout.ScoreCol > 0 {
			if c, ok := sheet.Cell(row, layout.ScoreCol); ok {
				q.ScoreIsFormula = c.IsFormula
			}
		}
		questions = append(questions, q)
	}

	return questions
}

// isSectionDivider recognizes rows that label a section instead of
// asking a question: the question column is populated while every other
// data column is blank, and the text is short or an all-uppercase
// label. A row carrying an identifier or any other data is always a
// question, no matter how its text is cased.
func (e *Extractor) isSectionDivider(sheet *model.Sheet, layout *model.ColumnLayout, row int, text, id string) bool {
	if text == "" || id != "" {
		return false
	}
	for _, col := range []int{layout.ResponseCol, layout.ScoreCol, layout.IDCol, layout.AdditionalCol} {
		if col > 0 && sheet.Value(row, col) != "" {
			return false
		}
	}

	return utf8.RuneCountInString(text) < e.opts.DividerMaxLen || isUpperLabel(text)
}

func hasTotalPrefix(s string) bool {
	return strings.HasPrefix(strings.ToLower(s), "total")
}

// isUpperLabel reports whether the text contains letters and none of
// them lowercase ("COMPANY INFORMATION" style dividers).
func isUpperLabel(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}
