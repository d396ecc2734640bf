package export

import (
	"encoding/csv"
	"os"

	"pitcount/internal/services"
)

// WriteCSV renders the sheet as a comma-separated file. Labels carry no
// styling in CSV form; the label column itself preserves the outcome.
func WriteCSV(path string, sheet *Sheet) error {
	file, err := os.Create(path)
	if err != nil {
		return services.Wrap(services.ErrExport, "export", "write csv", "create file", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(sheet.Headers); err != nil {
		return services.Wrap(services.ErrExport, "export", "write csv", "write header", err)
	}
	for _, row := range sheet.Rows {
		if err := writer.Write(row.Cells); err != nil {
			return services.Wrap(services.ErrExport, "export", "write csv", "write row", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return services.Wrap(services.ErrExport, "export", "write csv", "flush", err)
	}
	return nil
}
