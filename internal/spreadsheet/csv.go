package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

func readCSV(data []byte) ([]Record, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("not a valid CSV file: %w", err)
	}
	return toRecords(rows), nil
}
