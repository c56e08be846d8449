package report

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// writeXLSX writes the flattened weekly rows to a single-sheet workbook.
// Numeric values stay numeric so spreadsheet formulas work; nulls become
// empty cells.
func writeXLSX(path string, header []string, rows [][]any) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("weekly_metrics")
	if err != nil {
		return eris.Wrap(err, "report: add xlsx sheet")
	}

	headerRow := sheet.AddRow()
	for _, h := range header {
		headerRow.AddCell().Value = h
	}

	for _, row := range rows {
		xr := sheet.AddRow()
		for _, v := range row {
			cell := xr.AddCell()
			switch t := v.(type) {
			case nil:
				// empty cell
			case float64:
				cell.SetFloat(t)
			case int:
				cell.SetInt(t)
			case string:
				cell.Value = t
			}
		}
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "report: save xlsx %s", path)
	}
	return nil
}
