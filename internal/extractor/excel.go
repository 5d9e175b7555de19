package extractor

import (
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// maxColumns caps how many cells of a row are joined into one line.
const maxColumns = 1000

// ExcelScanner implements scanning for Excel files. Each sheet row is one line,
// its cells joined by tabs.
type ExcelScanner struct{}

func (s *ExcelScanner) Scan(reader io.Reader, visit func(line string) bool) error {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return err
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		// Use streaming row iterator for memory efficiency
		rows, err := f.Rows(sheet)
		if err != nil {
			return err
		}

		for rows.Next() {
			row, err := rows.Columns()
			if err != nil {
				rows.Close()
				return err
			}
			if len(row) > maxColumns {
				row = row[:maxColumns]
			}
			if !visit(strings.Join(row, "\t")) {
				rows.Close()
				return nil
			}
		}
		if err := rows.Close(); err != nil {
			return err
		}
	}
	return nil
}
