package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"pitcount/internal/services"
)

// Table is one upload in row-per-household form: every row maps trimmed
// header names to cell values.
type Table struct {
	Headers []string
	Rows    []map[string]string
}

// Read loads an upload, dispatching on file extension. Supported formats are
// .csv and .xlsx.
func Read(path string) (*Table, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return ReadCSV(path)
	case ".xlsx":
		return ReadXLSX(path)
	default:
		return nil, services.Wrap(services.ErrIngest, "ingest", "read",
			fmt.Sprintf("unsupported file type %q (expected .csv or .xlsx)", ext), nil)
	}
}

// ReadCSV loads a comma-separated upload. Rows shorter or longer than the
// header are tolerated; extra cells are dropped and missing cells read as
// empty.
func ReadCSV(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, services.Wrap(services.ErrIngest, "ingest", "read csv", "open file", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	headerRow, err := reader.Read()
	if err == io.EOF {
		return nil, services.Wrap(services.ErrIngest, "ingest", "read csv", "file is empty", nil)
	}
	if err != nil {
		return nil, services.Wrap(services.ErrIngest, "ingest", "read csv", "read header row", err)
	}

	table := newTable(headerRow)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, services.Wrap(services.ErrIngest, "ingest", "read csv", "read data row", err)
		}
		table.appendRow(row)
	}
	return table, nil
}

// ReadXLSX loads the first sheet of a workbook using formatted cell values,
// so dates and numbers arrive the way the spreadsheet displays them.
func ReadXLSX(path string) (*Table, error) {
	book, err := excelize.OpenFile(path)
	if err != nil {
		return nil, services.Wrap(services.ErrIngest, "ingest", "read xlsx", "open workbook", err)
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, services.Wrap(services.ErrIngest, "ingest", "read xlsx", "workbook has no sheets", nil)
	}

	rows, err := book.GetRows(sheets[0])
	if err != nil {
		return nil, services.Wrap(services.ErrIngest, "ingest", "read xlsx", "read sheet rows", err)
	}
	if len(rows) == 0 {
		return nil, services.Wrap(services.ErrIngest, "ingest", "read xlsx", "sheet is empty", nil)
	}

	table := newTable(rows[0])
	for _, row := range rows[1:] {
		table.appendRow(row)
	}
	return table, nil
}

func newTable(headerRow []string) *Table {
	headers := make([]string, 0, len(headerRow))
	for _, header := range headerRow {
		headers = append(headers, strings.TrimSpace(header))
	}
	return &Table{Headers: headers}
}

// appendRow keys cells by header, skipping rows with no content at all.
func (t *Table) appendRow(cells []string) {
	row := make(map[string]string, len(t.Headers))
	empty := true
	for i, header := range t.Headers {
		if header == "" || i >= len(cells) {
			continue
		}
		value := strings.TrimSpace(cells[i])
		if value == "" {
			continue
		}
		row[header] = value
		empty = false
	}
	if empty {
		return
	}
	t.Rows = append(t.Rows, row)
}

// Value returns the cell under a header for one row, or "".
func (t *Table) Value(row int, header string) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	return t.Rows[row][header]
}
