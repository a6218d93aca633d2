package store

import (
	"database/sql"
	"log"
)

// EnsureSchema creates the tables the service needs if they do not exist.
// The unique constraint on (student_id, date) is what makes reconciliation's
// insert-or-update safe under concurrent batches; the FK cascade keeps the
// ledger free of orphaned rows when a student is removed.
func EnsureSchema(db *sql.DB) error {
	log.Println("ensuring database schema...")

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS students (
			id UUID PRIMARY KEY,
			register_number TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			year_of_study INT NOT NULL,
			branch TEXT NOT NULL,
			dob DATE NOT NULL,
			gender TEXT NOT NULL,
			community TEXT,
			minority TEXT NOT NULL DEFAULT 'No',
			blood_group TEXT,
			aadhar TEXT,
			mobile TEXT NOT NULL,
			email TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS attendance_records (
			id UUID PRIMARY KEY,
			student_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			date DATE NOT NULL,
			status TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (student_id, date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_attendance_records_date ON attendance_records (date)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	log.Println("database schema ready")
	return nil
}
