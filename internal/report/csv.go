package report

import (
	"encoding/csv"
	"io"
)

// WriteCSV renders rows as CSV with a header line.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.RegisterNumber, r.Name, r.Date, r.Status}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
