package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// DecodeCSV decodes UTF-8 CSV bytes with a header row.
func DecodeCSV(data []byte) (*Table, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty CSV")
	}
	return FromRecords(rows[0], rows[1:]), nil
}

// EncodeCSV serializes the table as UTF-8 CSV with a header row and no
// index column.
func EncodeCSV(t *Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(t.ColumnNames()); err != nil {
		return nil, &ExportError{Format: FormatCSV, Err: err}
	}
	for _, row := range t.Records(0) {
		if err := w.Write(row); err != nil {
			return nil, &ExportError{Format: FormatCSV, Err: err}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, &ExportError{Format: FormatCSV, Err: err}
	}
	return buf.Bytes(), nil
}
