package httpapi

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"attendtrack/internal/report"
)

// downloadReport streams the detail rows for a window in the requested
// format. The window is required here, unlike the aggregate endpoints: a
// report without explicit bounds is almost always a mistake.
func (h *Handler) downloadReport(c *gin.Context) {
	startStr, endStr := c.Query("startDate"), c.Query("endDate")
	if startStr == "" || endStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "startDate and endDate are required"})
		return
	}
	start, err := parseDay(startStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid startDate, want YYYY-MM-DD"})
		return
	}
	end, err := parseDay(endStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid endDate, want YYYY-MM-DD"})
		return
	}
	format := c.DefaultQuery("format", report.FormatCSV)
	if !report.ValidFormat(format) {
		c.JSON(http.StatusBadRequest, gin.H{"error": `invalid format, want "csv", "xlsx", "pdf" or "docx"`})
		return
	}

	rows, err := h.reports.Rows(c.Request.Context(), start, end)
	if err != nil {
		storageError(c, err)
		return
	}
	if len(rows) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "No attendance data found for the specified date range", "data": []report.Row{}})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", report.Filename(start, end, format)))
	c.Header("Content-Type", report.ContentType(format))

	switch format {
	case report.FormatCSV:
		err = report.WriteCSV(c.Writer, rows)
	case report.FormatXLSX:
		err = report.WriteXLSX(c.Writer, rows)
	case report.FormatPDF:
		err = report.WritePDF(c.Writer, report.Title(start, end), rows)
	case report.FormatDOCX:
		err = report.WriteDOCX(c.Writer, report.Title(start, end), rows)
	}
	if err != nil {
		// headers are already out; all we can do is log
		log.Printf("report render failed: %v", err)
	}
}
