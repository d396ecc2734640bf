package ingest_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"pitcount/internal/ingest"
	"pitcount/internal/services"
)

func writeCSV(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "upload.csv")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestReadCSV(t *testing.T) {
	path := writeCSV(t, "First Name , Age,Sex\nJohn,34,Male\n,,\nMary,29\n")

	table, err := ingest.Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(table.Headers) != 3 || table.Headers[0] != "First Name" {
		t.Fatalf("unexpected headers: %v", table.Headers)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("row count = %d, want 2 (blank row skipped)", len(table.Rows))
	}
	if table.Value(0, "First Name") != "John" || table.Value(0, "Age") != "34" {
		t.Fatalf("unexpected first row: %v", table.Rows[0])
	}
	// Short row tolerated; missing trailing cell reads empty.
	if table.Value(1, "Sex") != "" {
		t.Fatalf("expected empty cell for short row, got %q", table.Value(1, "Sex"))
	}
}

func TestReadCSVEmptyFile(t *testing.T) {
	path := writeCSV(t, "")
	if _, err := ingest.Read(path); !errors.Is(err, services.ErrIngest) {
		t.Fatalf("expected ingest error, got %v", err)
	}
}

func TestReadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "upload.xlsx")
	book := excelize.NewFile()
	sheet := book.GetSheetName(0)
	rows := [][]any{
		{"First Name", "Age"},
		{"John", 34},
		{},
		{"Mary", 29},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := book.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	if err := book.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	book.Close()

	table, err := ingest.Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("row count = %d, want 2", len(table.Rows))
	}
	if table.Value(0, "Age") != "34" {
		t.Fatalf("expected formatted numeric cell, got %q", table.Value(0, "Age"))
	}
}

func TestReadRejectsUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "upload.ods")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := ingest.Read(path); !errors.Is(err, services.ErrIngest) {
		t.Fatalf("expected ingest error, got %v", err)
	}
}
