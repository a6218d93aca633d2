// Package report renders per-student-per-day detail rows for download.
// The row query is the reporting surface of the ledger; the formatters are
// a downstream concern and know nothing about storage.
package report

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Row is one detail line: a student on a day. Students with no row in the
// window still appear, with an empty date and status ABSENT.
type Row struct {
	RegisterNumber string
	Name           string
	Date           string
	Status         string
}

var header = []string{"Register Number", "Name", "Date", "Status"}

// Repository reads report rows from Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Rows returns the detail rows for [start, end], ordered by date then
// register number.
func (r *Repository) Rows(ctx context.Context, start, end time.Time) ([]Row, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT s.register_number, s.name,
			COALESCE(to_char(a.date, 'YYYY-MM-DD'), ''),
			COALESCE(a.status, 'ABSENT')
		FROM students s
		LEFT JOIN attendance_records a
			ON a.student_id = s.id AND a.date BETWEEN $1 AND $2
		ORDER BY a.date NULLS LAST, s.register_number
	`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []Row
	for rows.Next() {
		var row Row
		if err := rows.Scan(&row.RegisterNumber, &row.Name, &row.Date, &row.Status); err != nil {
			return nil, err
		}
		res = append(res, row)
	}
	return res, rows.Err()
}

// Formats the exporter can render.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
	FormatDOCX = "docx"
)

// ValidFormat reports whether the exporter can render the format.
func ValidFormat(format string) bool {
	switch format {
	case FormatCSV, FormatXLSX, FormatPDF, FormatDOCX:
		return true
	}
	return false
}

// ContentType returns the MIME type for a format.
func ContentType(format string) string {
	switch format {
	case FormatCSV:
		return "text/csv"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	case FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	}
	return "application/octet-stream"
}

// Filename returns the attachment filename for a window and format.
func Filename(start, end time.Time, format string) string {
	return fmt.Sprintf("attendance_%s_to_%s.%s",
		start.Format("2006-01-02"), end.Format("2006-01-02"), format)
}

// Title returns the report heading for a window.
func Title(start, end time.Time) string {
	return fmt.Sprintf("Attendance Report (%s to %s)",
		start.Format("2006-01-02"), end.Format("2006-01-02"))
}
