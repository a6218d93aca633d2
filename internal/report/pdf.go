package report

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

// WritePDF renders the report as a titled line-per-row document.
func WritePDF(w io.Writer, title string, rows []Row) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "U", 12)
	pdf.CellFormat(0, 8, "Attendance Details:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, r := range rows {
		line := fmt.Sprintf("Register: %s, Name: %s, Date: %s, Status: %s",
			orNA(r.RegisterNumber), orNA(r.Name), orNA(r.Date), r.Status)
		pdf.CellFormat(0, 7, line, "", 1, "L", false, 0, "")
	}

	return pdf.Output(w)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
