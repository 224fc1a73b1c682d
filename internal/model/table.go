package model

import "strings"

// Workbook is the in-memory table model of one source document.
// It is built once by the table loader and never mutated afterwards;
// answer write-back always happens on a fresh copy of the file itself.
type Workbook struct {
	// File is the source file name (no path).
	File string `json:"file"`
	// Sheets preserves the workbook's sheet order.
	Sheets []*Sheet `json:"sheets"`
}

// Sheet is a 2D grid of cells. All public coordinates are 1-based,
// matching spreadsheet addressing.
type Sheet struct {
	Name string   `json:"name"`
	Rows [][]Cell `json:"rows"`
}

// Cell holds a cell's display value, whether the value is formula-derived,
// and an opaque style handle. The style is copied around, never interpreted.
type Cell struct {
	Value     string `json:"value"`
	IsFormula bool   `json:"is_formula,omitempty"`
	StyleID   int    `json:"style_id,omitempty"`
}

// SheetByName returns the named sheet, or nil.
func (w *Workbook) SheetByName(name string) *Sheet {
	for _, s := range w.Sheets {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Cell returns the cell at 1-based (row, col). Out-of-range addresses
// return a zero Cell and false.
func (s *Sheet) Cell(row, col int) (Cell, bool) {
	if row < 1 || row > len(s.Rows) {
		return Cell{}, false
	}
	r := s.Rows[row-1]
	if col < 1 || col > len(r) {
		return Cell{}, false
	}
	return r[col-1], true
}

// Value returns the trimmed cell value at 1-based (row, col), or "".
func (s *Sheet) Value(row, col int) string {
	c, ok := s.Cell(row, col)
	if !ok {
		return ""
	}
	return strings.TrimSpace(c.Value)
}

// RowCount returns the number of rows the sheet carries.
func (s *Sheet) RowCount() int {
	return len(s.Rows)
}

// Empty reports whether the sheet has no data rows at all.
func (s *Sheet) Empty() bool {
	for _, row := range s.Rows {
		for _, c := range row {
			if strings.TrimSpace(c.Value) != "" {
				return false
			}
		}
	}
	return true
}
