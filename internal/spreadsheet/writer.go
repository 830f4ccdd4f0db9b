package spreadsheet

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

const (
	maxSheetNameLength = 31
	defaultSheetName   = "Sheet1"
	columnWidth        = 18
)

// Sheet is a named grid of cell values. The first row is rendered as a bold header.
type Sheet struct {
	Name string
	Rows [][]any
}

// Workbook collects sheets in order and serialises them in one pass.
type Workbook struct {
	sheets []Sheet
	names  map[string]bool
}

// NewWorkbook creates an empty workbook.
func NewWorkbook() *Workbook {
	return &Workbook{names: make(map[string]bool)}
}

// AddSheet appends a sheet and returns the name it was stored under. The name is made legal
// and unique within the workbook.
func (w *Workbook) AddSheet(name string, header []string, rows [][]any) string {
	name = w.uniqueName(SanitizeSheetName(name))
	w.names[strings.ToLower(name)] = true

	all := make([][]any, 0, len(rows)+1)
	if len(header) > 0 {
		cells := make([]any, len(header))
		for i, h := range header {
			cells[i] = h
		}
		all = append(all, cells)
	}
	all = append(all, rows...)

	w.sheets = append(w.sheets, Sheet{Name: name, Rows: all})
	return name
}

// SheetNames returns the sheet names in order.
func (w *Workbook) SheetNames() []string {
	names := make([]string, len(w.sheets))
	for i, s := range w.sheets {
		names[i] = s.Name
	}
	return names
}

// Bytes renders the workbook as an .xlsx file. The first sheet is active.
func (w *Workbook) Bytes() ([]byte, error) {
	if len(w.sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, sheet := range w.sheets {
		if i == 0 {
			if err := f.SetSheetName(defaultSheetName, sheet.Name); err != nil {
				return nil, fmt.Errorf("failed to name sheet %q: %w", sheet.Name, err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return nil, fmt.Errorf("failed to add sheet %q: %w", sheet.Name, err)
		}

		if err := writeRows(f, sheet, headerStyle); err != nil {
			return nil, err
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialise workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet Sheet, headerStyle int) error {
	width := 0
	for r, row := range sheet.Rows {
		if len(row) == 0 {
			continue
		}
		if len(row) > width {
			width = len(row)
		}
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(sheet.Name, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d of %q: %w", r+1, sheet.Name, err)
		}
	}
	if width == 0 {
		return nil
	}

	last, err := excelize.ColumnNumberToName(width)
	if err != nil {
		return err
	}
	if err := f.SetColWidth(sheet.Name, "A", last, columnWidth); err != nil {
		return err
	}
	if len(sheet.Rows[0]) > 0 {
		end, err := excelize.CoordinatesToCellName(len(sheet.Rows[0]), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet.Name, "A1", end, headerStyle); err != nil {
			return err
		}
	}
	return nil
}

// SanitizeSheetName replaces the characters a sheet name may not contain, strips enclosing
// apostrophes and truncates to 31 characters.
func SanitizeSheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '[', ']', ':', '*', '?', '/', '\\':
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	name = strings.Trim(name, "'")

	if utf8.RuneCountInString(name) > maxSheetNameLength {
		name = string([]rune(name)[:maxSheetNameLength])
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return defaultSheetName
	}
	return name
}

func (w *Workbook) uniqueName(name string) string {
	if !w.names[strings.ToLower(name)] {
		return name
	}
	for n := 2; ; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		base := []rune(name)
		if len(base)+utf8.RuneCountInString(suffix) > maxSheetNameLength {
			base = base[:maxSheetNameLength-utf8.RuneCountInString(suffix)]
		}
		candidate := string(base) + suffix
		if !w.names[strings.ToLower(candidate)] {
			return candidate
		}
	}
}
