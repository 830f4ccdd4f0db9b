// Package spreadsheet reads and writes the task workbooks exchanged by import and export.
package spreadsheet

import (
	"bytes"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Record is one data row keyed by its column header.
type Record map[string]string

// ReadRecords parses the first sheet of a workbook, or a CSV file when filename ends in .csv.
// The first row holds the headers. Rows with no non-empty cell are skipped.
func ReadRecords(filename string, data []byte) ([]Record, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("file is empty")
	}

	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		return readCSV(data)
	}
	return readWorkbook(data)
}

func readWorkbook(data []byte) ([]Record, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("not a valid workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	raw, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	normalizeSerialCells(f, sheets[0], rows, raw)
	return toRecords(rows), nil
}

// cellKind tells how a numeric cell is rendered once its serial value is decoded
type cellKind int

const (
	kindPlain cellKind = iota
	kindDate
	kindClock
	kindDuration
)

var (
	builtinDateFormats  = map[int]bool{14: true, 15: true, 16: true, 17: true, 22: true}
	builtinClockFormats = map[int]bool{18: true, 19: true, 20: true, 21: true, 45: true, 46: true, 47: true}
)

// normalizeSerialCells replaces the display text of date and time cells stored as Excel
// serial numbers with the MM/DD/YYYY and HH:MM forms the importer parses. The display
// text depends on the cell format ("01-02-24" for the default date format).
func normalizeSerialCells(f *excelize.File, sheet string, rows, raw [][]string) {
	kinds := make(map[int]cellKind)
	for r := 1; r < len(rows) && r < len(raw); r++ {
		for c := 0; c < len(rows[r]) && c < len(raw[r]); c++ {
			serial, err := strconv.ParseFloat(strings.TrimSpace(raw[r][c]), 64)
			if err != nil {
				continue
			}
			axis, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				continue
			}
			styleID, err := f.GetCellStyle(sheet, axis)
			if err != nil || styleID == 0 {
				continue
			}
			kind, ok := kinds[styleID]
			if !ok {
				kind = styleKind(f, styleID)
				kinds[styleID] = kind
			}
			if text, ok := renderSerial(serial, kind); ok {
				rows[r][c] = text
			}
		}
	}
}

func styleKind(f *excelize.File, styleID int) cellKind {
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil {
		return kindPlain
	}
	if style.CustomNumFmt != nil {
		return customFormatKind(*style.CustomNumFmt)
	}
	switch {
	case builtinDateFormats[style.NumFmt]:
		return kindDate
	case builtinClockFormats[style.NumFmt]:
		return kindClock
	}
	return kindPlain
}

// customFormatKind classifies a custom number format by its date and time tokens, ignoring
// quoted literals and colour or locale sections in brackets other than elapsed hours.
func customFormatKind(format string) cellKind {
	format = strings.ToLower(format)
	if strings.Contains(format, "[h") {
		return kindDuration
	}

	var b strings.Builder
	inQuote, inBracket := false, false
	for _, r := range format {
		switch {
		case r == '"':
			inQuote = !inQuote
		case inQuote:
		case r == '[':
			inBracket = true
		case r == ']':
			inBracket = false
		case !inBracket:
			b.WriteRune(r)
		}
	}
	tokens := b.String()

	switch {
	case strings.ContainsAny(tokens, "yd"):
		return kindDate
	case strings.Contains(tokens, "h"):
		return kindClock
	}
	return kindPlain
}

func renderSerial(serial float64, kind cellKind) (string, bool) {
	switch kind {
	case kindDate:
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return "", false
		}
		return t.Format("01/02/2006"), true
	case kindClock:
		minutes := int(math.Round(math.Mod(serial, 1) * 24 * 60))
		return fmt.Sprintf("%02d:%02d", (minutes/60)%24, minutes%60), true
	case kindDuration:
		if serial < 0 {
			return "", false
		}
		minutes := int(math.Round(serial * 24 * 60))
		return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60), true
	}
	return "", false
}

// toRecords maps rows onto the header row. Cells beyond the header are dropped, missing
// trailing cells are left out of the record, and duplicate headers keep the first column.
func toRecords(rows [][]string) []Record {
	if len(rows) == 0 {
		return nil
	}

	headers := make([]string, len(rows[0]))
	seen := make(map[string]bool, len(rows[0]))
	for i, h := range rows[0] {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if h == "" || seen[h] {
			continue
		}
		seen[h] = true
		headers[i] = h
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(Record, len(headers))
		blank := true
		for i, cell := range row {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			record[headers[i]] = cell
			if strings.TrimSpace(cell) != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		records = append(records, record)
	}
	return records
}
