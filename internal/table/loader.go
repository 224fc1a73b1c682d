// Package table loads a tabular document into the format-independent
// workbook model. Values, formula flags and style handles come through
// verbatim; formula cells carry their last computed result as value.
package table

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"rfpdesk/internal/model"
)

// Load reads the workbook at path into the table model.
func Load(path string) (*model.Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableDocument, err)
	}
	defer f.Close()

	return buildWorkbook(f, filepath.Base(path))
}

// LoadReader reads a workbook from a stream (uploads). name is the
// original file name kept for reporting.
func LoadReader(r io.Reader, name string) (*model.Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableDocument, err)
	}
	defer f.Close()

	return buildWorkbook(f, name)
}

func buildWorkbook(f *excelize.File, name string) (*model.Workbook, error) {
	wb := &model.Workbook{File: name}

	for _, sheetName := range f.GetSheetList() {
		sheet, err := buildSheet(f, sheetName)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheetName, err)
		}
		wb.Sheets = append(wb.Sheets, sheet)
	}

	return wb, nil
}

func buildSheet(f *excelize.File, sheetName string) (*model.Sheet, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableDocument, err)
	}

	sheet := &model.Sheet{Name: sheetName}
	for ri, row := range rows {
		cells := make([]model.Cell, len(row))
		for ci, val := range row {
			cell := model.Cell{Value: val}

			addr, err := excelize.CoordinatesToCellName(ci+1, ri+1)
			if err != nil {
				return nil, err
			}
			if formula, err := f.GetCellFormula(sheetName, addr); err == nil && formula != "" {
				cell.IsFormula = true
			}
			if styleID, err := f.GetCellStyle(sheetName, addr); err == nil {
				cell.StyleID = styleID
			}

			cells[ci] = cell
		}
		sheet.Rows = append(sheet.Rows, cells)
	}

	return sheet, nil
}
