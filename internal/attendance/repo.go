package attendance

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Repository persists the attendance ledger in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Upsert writes the status for (student, day). The composite unique
// constraint makes the insert-or-update race-free: a concurrent insert for
// the same pair falls through to the update arm. Returns whether a new row
// was created (xmax = 0 only on freshly inserted rows).
func (r *Repository) Upsert(ctx context.Context, studentID string, day time.Time, status string) (bool, error) {
	var inserted bool
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO attendance_records (id, student_id, date, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (student_id, date) DO UPDATE SET
			status = EXCLUDED.status,
			updated_at = NOW()
		RETURNING (xmax = 0)
	`, uuid.NewString(), studentID, day, status).Scan(&inserted)
	return inserted, err
}

const joinedSelect = `
	SELECT a.id, a.student_id, s.register_number, s.name,
		to_char(a.date, 'YYYY-MM-DD'), a.status
	FROM attendance_records a
	LEFT JOIN students s ON s.id = a.student_id`

// ListAll returns every ledger row joined with student identity fields,
// most recent day first.
func (r *Repository) ListAll(ctx context.Context) ([]Joined, error) {
	rows, err := r.db.QueryContext(ctx, joinedSelect+`
		ORDER BY a.date DESC, s.register_number`)
	if err != nil {
		return nil, err
	}
	return scanJoined(rows)
}

// ListByDate returns the rows for one calendar day.
func (r *Repository) ListByDate(ctx context.Context, day time.Time) ([]Joined, error) {
	rows, err := r.db.QueryContext(ctx, joinedSelect+`
		WHERE a.date = $1
		ORDER BY s.register_number`, day)
	if err != nil {
		return nil, err
	}
	return scanJoined(rows)
}

func scanJoined(rows *sql.Rows) ([]Joined, error) {
	defer rows.Close()
	var res []Joined
	for rows.Next() {
		var j Joined
		if err := rows.Scan(&j.ID, &j.StudentID, &j.RegisterNumber, &j.Name, &j.Date, &j.Status); err != nil {
			return nil, err
		}
		res = append(res, j)
	}
	return res, rows.Err()
}
