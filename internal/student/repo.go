package student

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Repository persists the student directory in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Insert writes a new student. A register-number collision surfaces as
// ErrDuplicateRegister.
func (r *Repository) Insert(ctx context.Context, s Student) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO students (id, register_number, name, year_of_study, branch, dob, gender,
			community, minority, blood_group, aadhar, mobile, email)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`, s.ID, s.RegisterNumber, s.Name, s.YearOfStudy, s.Branch, s.DOB, s.Gender,
		s.Community, s.Minority, s.BloodGroup, s.Aadhar, s.Mobile, s.Email)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateRegister
	}
	return err
}

// FindByRegister returns a single student, or nil when absent.
func (r *Repository) FindByRegister(ctx context.Context, registerNumber string) (*Student, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, register_number, name, year_of_study, branch, dob, gender,
			community, minority, blood_group, aadhar, mobile, email, created_at
		FROM students WHERE register_number = $1
	`, registerNumber)
	var s Student
	err := row.Scan(&s.ID, &s.RegisterNumber, &s.Name, &s.YearOfStudy, &s.Branch, &s.DOB,
		&s.Gender, &s.Community, &s.Minority, &s.BloodGroup, &s.Aadhar, &s.Mobile,
		&s.Email, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// List returns every student joined with their most recent attendance row.
func (r *Repository) List(ctx context.Context) ([]WithAttendance, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT s.id, s.register_number, s.name, s.year_of_study, s.branch, s.dob, s.gender,
			s.community, s.minority, s.blood_group, s.aadhar, s.mobile, s.email, s.created_at,
			to_char(a.date, 'YYYY-MM-DD'), a.status
		FROM students s
		LEFT JOIN (
			SELECT DISTINCT ON (student_id) student_id, date, status
			FROM attendance_records
			ORDER BY student_id, date DESC
		) a ON a.student_id = s.id
		ORDER BY s.register_number
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []WithAttendance
	for rows.Next() {
		var w WithAttendance
		err := rows.Scan(&w.ID, &w.RegisterNumber, &w.Name, &w.YearOfStudy, &w.Branch, &w.DOB,
			&w.Gender, &w.Community, &w.Minority, &w.BloodGroup, &w.Aadhar, &w.Mobile,
			&w.Email, &w.CreatedAt, &w.LastAttendance, &w.LastStatus)
		if err != nil {
			return nil, err
		}
		res = append(res, w)
	}
	return res, rows.Err()
}

// Delete removes a student; the ledger rows go with it via the FK cascade.
// Returns false when no student matched.
func (r *Repository) Delete(ctx context.Context, registerNumber string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM students WHERE register_number = $1`, registerNumber)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}

// Count returns the enrolled-student total.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM students`).Scan(&n)
	return n, err
}
