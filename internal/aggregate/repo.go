package aggregate

import (
	"context"
	"database/sql"
	"time"
)

// Repository runs the aggregation queries against Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// DayCounts tallies present marks and total rows for one day.
func (r *Repository) DayCounts(ctx context.Context, day time.Time) (present, total int, err error) {
	err = r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FILTER (WHERE status = 'PRESENT'), COUNT(*)
		FROM attendance_records
		WHERE date = $1
	`, day).Scan(&present, &total)
	return present, total, err
}

// RangeCounts tallies per day across a window, ascending by date. Days with
// no rows do not appear.
func (r *Repository) RangeCounts(ctx context.Context, start, end time.Time) ([]DayCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT date, COUNT(*) FILTER (WHERE status = 'PRESENT'), COUNT(*)
		FROM attendance_records
		WHERE date BETWEEN $1 AND $2
		GROUP BY date
		ORDER BY date
	`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []DayCount
	for rows.Next() {
		var dc DayCount
		if err := rows.Scan(&dc.Day, &dc.Present, &dc.Total); err != nil {
			return nil, err
		}
		res = append(res, dc)
	}
	return res, rows.Err()
}

// BranchCounts tallies enrolled students and windowed present marks per branch.
func (r *Repository) BranchCounts(ctx context.Context, start, end time.Time) ([]BranchCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT s.branch,
			COUNT(DISTINCT s.id),
			COUNT(a.id) FILTER (WHERE a.status = 'PRESENT')
		FROM students s
		LEFT JOIN attendance_records a
			ON a.student_id = s.id AND a.date BETWEEN $1 AND $2
		GROUP BY s.branch
		ORDER BY s.branch
	`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []BranchCount
	for rows.Next() {
		var bc BranchCount
		if err := rows.Scan(&bc.Branch, &bc.Students, &bc.Present); err != nil {
			return nil, err
		}
		res = append(res, bc)
	}
	return res, rows.Err()
}

// DaysInWindow counts the distinct dates carrying at least one row.
func (r *Repository) DaysInWindow(ctx context.Context, start, end time.Time) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT date)
		FROM attendance_records
		WHERE date BETWEEN $1 AND $2
	`, start, end).Scan(&n)
	return n, err
}
