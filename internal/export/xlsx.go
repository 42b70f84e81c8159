// Package export renders derived rows to an XLSX workbook so a user can
// keep a local copy of exactly what was (or would be) sent to the sheet.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/chirag14252/challan-app/internal/model"
)

// WriteXLSX writes a workbook with the sheet's 13-column header row
// followed by one line per output row, in order.
func WriteXLSX(rows []model.OutputRow, w io.Writer) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, h := range model.RowHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("set header: %w", err)
		}
	}

	for r, row := range rows {
		for c, value := range row.Columns() {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return fmt.Errorf("row cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("set cell: %w", err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return f.Close()
}
