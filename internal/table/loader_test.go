package table_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"rfpdesk/internal/table"
)

func TestLoad(t *testing.T) {
	path := buildWorkbookFile(t)

	wb, err := table.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, want := wb.File, "questionnaire.xlsx"; got != want {
		t.Fatalf("File=%q, want %q", got, want)
	}
	if len(wb.Sheets) != 2 {
		t.Fatalf("got %d sheets, want 2", len(wb.Sheets))
	}

	sheet := wb.SheetByName("D. Functional")
	if sheet == nil {
		t.Fatal("sheet D. Functional not loaded")
	}
	if got, want := sheet.RowCount(), 3; got != want {
		t.Fatalf("RowCount=%d, want %d", got, want)
	}
	if got, want := sheet.Value(1, 2), "Requirement"; got != want {
		t.Fatalf("Value(1,2)=%q, want %q", got, want)
	}
	// Value trims surrounding whitespace.
	if got, want := sheet.Value(2, 2), "Does the system support SSO?"; got != want {
		t.Fatalf("Value(2,2)=%q, want %q", got, want)
	}

	cell, ok := sheet.Cell(3, 4)
	if !ok {
		t.Fatal("Cell(3,4) not present")
	}
	if !cell.IsFormula {
		t.Fatal("formula cell not flagged")
	}
	if c, ok := sheet.Cell(2, 3); !ok || c.IsFormula {
		t.Fatalf("Cell(2,3)=%+v ok=%v, want plain cell", c, ok)
	}
}

func TestLoadReader(t *testing.T) {
	raw, err := os.ReadFile(buildWorkbookFile(t))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	wb, err := table.LoadReader(bytes.NewReader(raw), "upload.xlsx")
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	if got, want := wb.File, "upload.xlsx"; got != want {
		t.Fatalf("File=%q, want %q", got, want)
	}
	if len(wb.Sheets) != 2 {
		t.Fatalf("got %d sheets, want 2", len(wb.Sheets))
	}
}

func TestLoadUnreadable(t *testing.T) {
	if _, err := table.Load(filepath.Join(t.TempDir(), "missing.xlsx")); !errors.Is(err, table.ErrUnreadableDocument) {
		t.Fatalf("err=%v, want ErrUnreadableDocument", err)
	}

	junk := filepath.Join(t.TempDir(), "junk.xlsx")
	if err := os.WriteFile(junk, []byte("this is not a spreadsheet"), 0644); err != nil {
		t.Fatalf("write junk: %v", err)
	}
	if _, err := table.Load(junk); !errors.Is(err, table.ErrUnreadableDocument) {
		t.Fatalf("err=%v, want ErrUnreadableDocument", err)
	}
}

func buildWorkbookFile(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	main := "D. Functional"
	if err := f.SetSheetName("Sheet1", main); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}
	rows := [][]interface{}{
		{"#", "Requirement", "Response", "Score"},
		{"1", "  Does the system support SSO?  ", "Yes", "5"},
		{"2", "Describe your backup process.", "", ""},
	}
	for i, row := range rows {
		addr, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(main, addr, &row); err != nil {
			t.Fatalf("set row %d: %v", i+1, err)
		}
	}
	if err := f.SetCellFormula(main, "D3", "AVERAGE(D2:D2)"); err != nil {
		t.Fatalf("set formula: %v", err)
	}

	if _, err := f.NewSheet("Instructions"); err != nil {
		t.Fatalf("add sheet: %v", err)
	}
	if err := f.SetCellValue("Instructions", "A1", "Read before responding."); err != nil {
		t.Fatalf("set cell: %v", err)
	}

	path := filepath.Join(t.TempDir(), "questionnaire.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save fixture: %v", err)
	}
	return path
}
