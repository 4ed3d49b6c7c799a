package roster

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// LoadXLSX reads names from one column of an XLSX sheet. An empty
// sheet name selects the first sheet; column is 0-based; headerRows
// gives the number of leading rows to skip.
func LoadXLSX(path, sheet string, column, headerRows int) (*Roster, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open roster workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	var names []string
	for i, row := range rows {
		if i < headerRows {
			continue
		}
		if column >= len(row) {
			continue
		}
		names = append(names, row[column])
	}
	return New(names), nil
}
