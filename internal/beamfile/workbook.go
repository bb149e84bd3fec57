package beamfile

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadWorkbook tokenizes a beam described in a spreadsheet, one row per beam
// file line and one cell per field. An empty sheet name selects the first sheet.
func ReadWorkbook(path, sheet string) (*File, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening beam workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	return fromRows(rows)
}

// fromRows drops empty rows and trailing empty cells, keeping the sheet row
// number of each remaining record.
func fromRows(rows [][]string) (*File, error) {
	var records [][]string
	var numbers []int
	for i, row := range rows {
		end := len(row)
		for end > 0 && strings.TrimSpace(row[end-1]) == "" {
			end--
		}
		if end == 0 || strings.HasPrefix(strings.TrimSpace(row[0]), "#") {
			continue
		}
		records = append(records, row[:end])
		numbers = append(numbers, i+1)
	}
	return Tokenize(records, numbers)
}
