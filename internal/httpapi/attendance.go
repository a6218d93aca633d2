package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"attendtrack/internal/aggregate"
	"attendtrack/internal/attendance"
)

type submitAttendanceRequest struct {
	Attendance []attendance.Entry `json:"attendance" binding:"required"`
}

// submitAttendance applies a marking batch. Per-entry failures come back in
// the body with a 200; only a malformed payload or an unreachable store turn
// the whole call into an error.
func (h *Handler) submitAttendance(c *gin.Context) {
	var req submitAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid attendance data"})
		return
	}

	result, err := h.reconciler.Reconcile(c.Request.Context(), req.Attendance)
	if err != nil {
		storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Attendance submitted/updated successfully",
		"inserted": result.Inserted,
		"updated":  result.Updated,
		"rejected": result.Rejected,
		"errors":   result.Errors,
	})
}

func (h *Handler) listAttendance(c *gin.Context) {
	rows, err := h.records.ListAll(c.Request.Context())
	if err != nil {
		storageError(c, err)
		return
	}
	if rows == nil {
		rows = []attendance.Joined{}
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) attendanceByDate(c *gin.Context) {
	day, err := parseDay(c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, want YYYY-MM-DD"})
		return
	}
	rows, err := h.records.ListByDate(c.Request.Context(), day)
	if err != nil {
		storageError(c, err)
		return
	}
	if rows == nil {
		rows = []attendance.Joined{}
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) dailySummary(c *gin.Context) {
	day := time.Now().UTC().Truncate(24 * time.Hour)
	if v := c.Query("date"); v != "" {
		var err error
		if day, err = parseDay(v); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, want YYYY-MM-DD"})
			return
		}
	}
	mode, ok := aggregate.ParseMode(c.Query("mode"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mode, want ledger-only or roster-complete"})
		return
	}

	daily, err := h.aggregates.Daily(c.Request.Context(), day, mode)
	if err != nil {
		storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, daily)
}

func (h *Handler) trends(c *gin.Context) {
	start, end, ok := window(c)
	if !ok {
		return
	}
	order, valid := aggregate.ParseOrder(c.Query("order"))
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order, want asc or desc"})
		return
	}

	days, err := h.aggregates.Range(c.Request.Context(), start, end, order)
	if err != nil {
		storageError(c, err)
		return
	}
	stats, err := h.aggregates.Overall(c.Request.Context(), start, end)
	if err != nil {
		storageError(c, err)
		return
	}
	if days == nil {
		days = []aggregate.Daily{}
	}
	c.JSON(http.StatusOK, gin.H{"days": days, "stats": stats})
}

func (h *Handler) branches(c *gin.Context) {
	start, end, ok := window(c)
	if !ok {
		return
	}
	rollup, err := h.aggregates.Branches(c.Request.Context(), start, end)
	if err != nil {
		storageError(c, err)
		return
	}
	if rollup == nil {
		rollup = []aggregate.Branch{}
	}
	c.JSON(http.StatusOK, rollup)
}
