// Package detector assigns semantic column roles to questionnaire sheets.
// Detection consults only cell text and position, never styles, so it
// stays independent of any particular file-format library.
package detector

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"rfpdesk/internal/model"
)

// Options bounds the header scan.
type Options struct {
	// ScanRows is how many leading rows are examined for a header row.
	ScanRows int
	// MinHeaderCells is the minimum number of header-like cells a row
	// needs to qualify as a header at all.
	MinHeaderCells int
	// MaxHeaderCellLen is the rune length above which a cell no longer
	// counts as header-like (headers are short labels).
	MaxHeaderCellLen int
}

// DefaultOptions returns the standard scan bounds.
func DefaultOptions() Options {
	return Options{
		ScanRows:         10,
		MinHeaderCells:   3,
		MaxHeaderCellLen: 40,
	}
}

// Detector locates a sheet's header row and assigns column roles from
// the keyword rule table. Detection is deterministic: the same sheet
// always yields the identical layout.
type Detector struct {
	opts  Options
	rules []roleRule
}

// New creates a detector.
func New(opts Options) *Detector {
	if opts.ScanRows <= 0 {
		opts.ScanRows = DefaultOptions().ScanRows
	}
	if opts.MinHeaderCells <= 0 {
		opts.MinHeaderCells = DefaultOptions().MinHeaderCells
	}
	if opts.MaxHeaderCellLen <= 0 {
		opts.MaxHeaderCellLen = DefaultOptions().MaxHeaderCellLen
	}
	return &Detector{
		opts:  opts,
		rules: defaultRoleRules(),
	}
}

// Detect returns the sheet's column layout, or nil with a reason when
// the sheet is not answerable.
func (d *Detector) Detect(sheet *model.Sheet) (*model.ColumnLayout, string) {
	if sheet.Empty() {
		return nil, "empty sheet"
	}

	headerRow := d.findHeaderRow(sheet)
	if headerRow == 0 {
		return nil, "no header row detected"
	}

	layout := d.assignRoles(sheet, headerRow)
	if layout.QuestionCol == 0 {
		return nil, "no question column detected"
	}
	if layout.ResponseCol == 0 {
		return nil, "no response column detected"
	}
	return layout, ""
}

// findHeaderRow scans the leading rows. A row holding both a question
// and a response keyword wins outright; otherwise the row with the
// highest density of short non-blank cells is taken, provided it clears
// the minimum cell count.
func (d *Detector) findHeaderRow(sheet *model.Sheet) int {
	limit := d.opts.ScanRows
	if limit > sheet.RowCount() {
		limit = sheet.RowCount()
	}

	bestRow, bestCount := 0, 0
	for row := 1; row <= limit; row++ {
		count := 0
		hasQuestion, hasResponse := false, false
		for col := 1; col <= d.rowWidth(sheet, row); col++ {
			val := sheet.Value(row, col)
			if val == "" || utf8.RuneCountInString(val) >= d.opts.MaxHeaderCellLen {
				continue
			}
			count++
			switch d.matchRole(val) {
			case model.RoleQuestion:
				hasQuestion = true
			case model.RoleResponse:
				hasResponse = true
			}
		}
		if hasQuestion && hasResponse && count >= d.opts.MinHeaderCells {
			return row
		}
		if count > bestCount {
			bestRow, bestCount = row, count
		}
	}

	if bestCount < d.opts.MinHeaderCells {
		return 0
	}
	return bestRow
}

func (d *Detector) rowWidth(sheet *model.Sheet, row int) int {
	if row < 1 || row > sheet.RowCount() {
		return 0
	}
	return len(sheet.Rows[row-1])
}

// matchRole returns the first rule matching the header text, or ignored.
func (d *Detector) matchRole(header string) model.ColumnRole {
	h := strings.ToLower(strings.TrimSpace(header))
	if h == "" {
		return model.RoleIgnored
	}
	for _, rule := range d.rules {
		if rule.Match(h) {
			return rule.Role
		}
	}
	return model.RoleIgnored
}

func (d *Detector) assignRoles(sheet *model.Sheet, headerRow int) *model.ColumnLayout {
	layout := &model.ColumnLayout{
		HeaderRow: headerRow,
		Roles:     make(map[int]model.ColumnRole),
	}

	candidates := make(map[model.ColumnRole][]int)
	for col := 1; col <= d.rowWidth(sheet, headerRow); col++ {
		role := model.RoleIgnored
		if val := sheet.Value(headerRow, col); val != "" {
			role = d.matchRole(val)
		}
		layout.Roles[col] = role
		if role != model.RoleIgnored {
			candidates[role] = append(candidates[role], col)
		}
	}

	layout.QuestionCol = d.pickQuestionCol(sheet, headerRow, candidates[model.RoleQuestion], layout)
	layout.ResponseCol = pickResponseCol(layout.QuestionCol, candidates[model.RoleResponse], layout)
	layout.ScoreCol = firstOf(candidates[model.RoleScore])
	layout.IDCol = firstOf(candidates[model.RoleIdentifier])
	layout.CategoryCol = firstOf(candidates[model.RoleCategory])
	layout.AdditionalCol = firstOf(candidates[model.RoleAdditional])

	// Demote unchosen question/response candidates so the layout keeps
	// its one-primary-per-role invariant.
	for _, col := range candidates[model.RoleQuestion] {
		if col != layout.QuestionCol {
			layout.Roles[col] = model.RoleIgnored
		}
	}
	for _, col := range candidates[model.RoleResponse] {
		if col != layout.ResponseCol {
			layout.Roles[col] = model.RoleIgnored
		}
	}

	return layout
}

// pickQuestionCol resolves multiple question-keyword columns: questions
// are long text, identifiers and categories are short, so the column
// with the longest average non-blank cell below the header wins.
func (d *Detector) pickQuestionCol(sheet *model.Sheet, headerRow int, cands []int, layout *model.ColumnLayout) int {
	if len(cands) == 0 {
		return 0
	}
	if len(cands) == 1 {
		return cands[0]
	}

	best, bestAvg := cands[0], -1.0
	for _, col := range cands {
		total, n := 0, 0
		for row := headerRow + 1; row <= sheet.RowCount(); row++ {
			if val := sheet.Value(row, col); val != "" {
				total += utf8.RuneCountInString(val)
				n++
			}
		}
		avg := 0.0
		if n > 0 {
			avg = float64(total) / float64(n)
		}
		if avg > bestAvg {
			best, bestAvg = col, avg
		}
	}

	layout.Ambiguous = true
	layout.AmbiguityNote = fmt.Sprintf("%d question-like columns, picked longest average text", len(cands))
	return best
}

// pickResponseCol resolves multiple response-keyword columns: the column
// immediately right of the question column is preferred, else the
// leftmost match.
func pickResponseCol(questionCol int, cands []int, layout *model.ColumnLayout) int {
	if len(cands) == 0 {
		return 0
	}
	if len(cands) == 1 {
		return cands[0]
	}

	layout.Ambiguous = true
	if layout.AmbiguityNote != "" {
		layout.AmbiguityNote += "; "
	}
	layout.AmbiguityNote += fmt.Sprintf("%d response-like columns, picked adjacent-to-question", len(cands))

	for _, col := range cands {
		if questionCol > 0 && col == questionCol+1 {
			return col
		}
	}
	return cands[0]
}

func firstOf(cands []int) int {
	if len(cands) == 0 {
		return 0
	}
	return cands[0]
}
