package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// WriteXLSX renders rows as a single-sheet spreadsheet.
func WriteXLSX(w io.Writer, rows []Row) error {
	file := excelize.NewFile()
	sheet := file.GetSheetName(file.GetActiveSheetIndex())

	for i, h := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := file.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for i, r := range rows {
		n := i + 2
		_ = file.SetCellValue(sheet, fmt.Sprintf("A%d", n), r.RegisterNumber)
		_ = file.SetCellValue(sheet, fmt.Sprintf("B%d", n), r.Name)
		_ = file.SetCellValue(sheet, fmt.Sprintf("C%d", n), r.Date)
		_ = file.SetCellValue(sheet, fmt.Sprintf("D%d", n), r.Status)
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return err
	}
	_, err = w.Write(buf.Bytes())
	return err
}
