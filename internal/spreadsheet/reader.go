// Package spreadsheet converts the first sheet of an Excel workbook into a
// list of records keyed by the header row.
package spreadsheet

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"discountocr/internal/logger"
	"discountocr/pkg/models"
)

// ErrNoSheets is returned for a workbook without worksheets.
var ErrNoSheets = errors.New("workbook has no sheets")

// ReadFile reads the first sheet of the workbook at path. The first row
// holds the column names. Numeric cells become numbers, boolean cells
// booleans, empty cells nil. Rows with no values are skipped.
func ReadFile(path string) ([]models.SheetRecord, error) {
	log := logger.WithDocument("spreadsheet", path)

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("Failed to close workbook")
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return []models.SheetRecord{}, nil
	}

	keys := columnNames(rows[0])
	records := make([]models.SheetRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rowNum := i + 2
		record := models.SheetRecord{Keys: keys, Values: make(map[string]any, len(keys))}
		empty := true
		for col, key := range keys {
			var raw string
			if col < len(row) {
				raw = row[col]
			}
			value, err := cellValue(f, sheet, col+1, rowNum, raw)
			if err != nil {
				return nil, err
			}
			if value != nil {
				empty = false
			}
			record.Values[key] = value
		}
		if empty {
			continue
		}
		records = append(records, record)
	}

	log.Debug().Str("sheet", sheet).Int("records", len(records)).Msg("Workbook read")
	return records, nil
}

// columnNames turns the header row into unique keys. Blank headers become
// "Unnamed: <index>" and repeats get a ".<n>" suffix.
func columnNames(header []string) []string {
	seen := make(map[string]int, len(header))
	names := make([]string, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		if n, ok := seen[name]; ok {
			seen[name] = n + 1
			name = name + "." + strconv.Itoa(n+1)
		} else {
			seen[name] = 0
		}
		names[i] = name
	}
	return names
}

func cellValue(f *excelize.File, sheet string, col, row int, raw string) (any, error) {
	if raw == "" {
		return nil, nil
	}

	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return nil, err
	}
	cellType, err := f.GetCellType(sheet, cell)
	if err != nil {
		return nil, fmt.Errorf("cell %s: %w", cell, err)
	}

	switch cellType {
	case excelize.CellTypeBool:
		return raw == "1" || strings.EqualFold(raw, "true"), nil
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			return n, nil
		}
	}
	return raw, nil
}
