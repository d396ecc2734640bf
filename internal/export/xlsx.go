package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"pitcount/internal/services"
)

const sheetName = "Deduplicated"

// WriteXLSX renders the sheet as a styled workbook: bold header row on the
// configured fill, per-row fills by annotation label, and content-sized
// column widths.
func WriteXLSX(path string, sheet *Sheet, opts Options) error {
	book := excelize.NewFile()
	defer book.Close()

	if err := book.SetSheetName(book.GetSheetName(0), sheetName); err != nil {
		return wrapXLSX("rename sheet", err)
	}

	headerStyle, err := book.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{opts.HeaderColor}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return wrapXLSX("build header style", err)
	}

	labelStyles := make(map[string]int, len(opts.LabelColors))
	for label, color := range opts.LabelColors {
		style, err := book.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
		})
		if err != nil {
			return wrapXLSX("build label style", err)
		}
		labelStyles[label] = style
	}

	headerCells := make([]any, len(sheet.Headers))
	for i, header := range sheet.Headers {
		headerCells[i] = header
	}
	if err := book.SetSheetRow(sheetName, "A1", &headerCells); err != nil {
		return wrapXLSX("write header row", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(sheet.Headers))
	if err != nil {
		return wrapXLSX("resolve last column", err)
	}
	if err := book.SetCellStyle(sheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return wrapXLSX("style header row", err)
	}

	for i, row := range sheet.Rows {
		rowNum := i + 2
		cells := make([]any, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell
		}
		if err := book.SetSheetRow(sheetName, fmt.Sprintf("A%d", rowNum), &cells); err != nil {
			return wrapXLSX("write data row", err)
		}
		if style, ok := labelStyles[row.Label]; ok {
			start := fmt.Sprintf("A%d", rowNum)
			end := fmt.Sprintf("%s%d", lastCol, rowNum)
			if err := book.SetCellStyle(sheetName, start, end, style); err != nil {
				return wrapXLSX("style data row", err)
			}
		}
	}

	if err := sizeColumns(book, sheet, opts.MaxColumnWidth); err != nil {
		return err
	}

	if err := book.SaveAs(path); err != nil {
		return wrapXLSX("save workbook", err)
	}
	return nil
}

// sizeColumns widens each column to its longest cell, capped so a verbose
// reason cannot blow out the layout.
func sizeColumns(book *excelize.File, sheet *Sheet, maxWidth int) error {
	for col := range sheet.Headers {
		width := len(sheet.Headers[col])
		for _, row := range sheet.Rows {
			if col < len(row.Cells) && len(row.Cells[col]) > width {
				width = len(row.Cells[col])
			}
		}
		width += 2
		if maxWidth > 0 && width > maxWidth {
			width = maxWidth
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return wrapXLSX("resolve column name", err)
		}
		if err := book.SetColWidth(sheetName, name, name, float64(width)); err != nil {
			return wrapXLSX("set column width", err)
		}
	}
	return nil
}

func wrapXLSX(message string, err error) error {
	return services.Wrap(services.ErrExport, "export", "write xlsx", message, err)
}
