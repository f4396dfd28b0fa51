package dataset

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Sheet1"

// DecodeExcel decodes the first sheet of an xlsx workbook.
func DecodeExcel(data []byte) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty workbook")
	}
	return FromRecords(rows[0], rows[1:]), nil
}

// EncodeExcel serializes the table as a single-sheet xlsx workbook. Numeric
// cells are written as numbers so spreadsheet tooling treats them as such.
func EncodeExcel(t *Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]interface{}, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c.Name
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, &ExportError{Format: FormatExcel, Err: err}
	}

	for r := 0; r < t.NumRows(); r++ {
		row := make([]interface{}, len(t.Columns))
		for i, c := range t.Columns {
			if !c.Valid[r] {
				row[i] = nil
				continue
			}
			if c.Type == TypeNumeric {
				row[i] = c.Nums[r]
			} else {
				row[i] = c.Text[r]
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return nil, &ExportError{Format: FormatExcel, Err: err}
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, &ExportError{Format: FormatExcel, Err: err}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, &ExportError{Format: FormatExcel, Err: err}
	}
	return buf.Bytes(), nil
}
