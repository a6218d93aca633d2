// Package httpapi exposes the directory, ledger, aggregation and report
// services over REST.
package httpapi

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"attendtrack/internal/aggregate"
	"attendtrack/internal/attendance"
	"attendtrack/internal/report"
	"attendtrack/internal/student"
)

// RecordReader lists stored ledger rows.
type RecordReader interface {
	ListAll(ctx context.Context) ([]attendance.Joined, error)
	ListByDate(ctx context.Context, day time.Time) ([]attendance.Joined, error)
}

// ReportSource produces report detail rows.
type ReportSource interface {
	Rows(ctx context.Context, start, end time.Time) ([]report.Row, error)
}

// Handler carries the services behind the API.
type Handler struct {
	students   *student.Service
	reconciler *attendance.Service
	records    RecordReader
	aggregates *aggregate.Service
	reports    ReportSource
}

// New creates a handler.
func New(students *student.Service, reconciler *attendance.Service, records RecordReader,
	aggregates *aggregate.Service, reports ReportSource) *Handler {
	return &Handler{
		students:   students,
		reconciler: reconciler,
		records:    records,
		aggregates: aggregates,
		reports:    reports,
	}
}

// Register wires the routes.
func (h *Handler) Register(r gin.IRouter) {
	r.POST("/students", h.createStudent)
	r.GET("/students", h.listStudents)
	r.GET("/students/:registerNumber", h.getStudent)
	r.DELETE("/students/:registerNumber", h.deleteStudent)

	r.POST("/attendance", h.submitAttendance)
	r.GET("/attendance", h.listAttendance)
	r.GET("/attendance/by-date/:date", h.attendanceByDate)
	r.GET("/attendance/summary", h.dailySummary)
	r.GET("/attendance/trends", h.trends)
	r.GET("/attendance/branches", h.branches)

	r.GET("/reports", h.downloadReport)
}

// storageError logs the driver error and returns a generic 500. Driver text
// never reaches the client.
func storageError(c *gin.Context, err error) {
	log.Printf("storage error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
}

func fail(c *gin.Context, err error) {
	var vErr *student.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
	case errors.Is(err, student.ErrDuplicateRegister):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, student.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		storageError(c, err)
	}
}

func parseDay(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// window resolves startDate/endDate query params, defaulting to the last 30
// days, matching the dashboard's default trend range.
func window(c *gin.Context) (start, end time.Time, ok bool) {
	now := time.Now().UTC().Truncate(24 * time.Hour)
	start, end = now.AddDate(0, 0, -29), now

	var err error
	if v := c.Query("startDate"); v != "" {
		if start, err = parseDay(v); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid startDate, want YYYY-MM-DD"})
			return start, end, false
		}
	}
	if v := c.Query("endDate"); v != "" {
		if end, err = parseDay(v); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid endDate, want YYYY-MM-DD"})
			return start, end, false
		}
	}
	return start, end, true
}
