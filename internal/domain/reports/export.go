package reports

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExportXLSX renders an executed report as an .xlsx workbook: a header row
// with the column names, one sheet row per result row.
func ExportXLSX(rep *Report, res *Result) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := make([]interface{}, len(res.Columns))
	for i, c := range res.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("export report %d header: %w", rep.ID, err)
	}

	row := 2
	for _, vals := range res.Rows {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, fmt.Errorf("export report %d cells: %w", rep.ID, err)
		}
		excelRow := make([]interface{}, len(vals))
		copy(excelRow, vals)
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			return nil, fmt.Errorf("export report %d rows: %w", rep.ID, err)
		}
		row++
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("export report %d: %w", rep.ID, err)
	}
	return buf.Bytes(), nil
}
