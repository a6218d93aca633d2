package attendance

import (
	"strings"
	"time"
)

// Canonical status values. Submissions arrive in whatever case the client
// felt like; the service normalizes once and everything downstream compares
// against these.
const (
	StatusPresent = "PRESENT"
	StatusAbsent  = "ABSENT"
)

// Record is one ledger row: one status per student per calendar day.
type Record struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id"`
	Date      time.Time `json:"date"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Joined is a ledger row carrying the student's identity fields, as served
// by the listing endpoints. Date is rendered as YYYY-MM-DD.
type Joined struct {
	ID             string  `json:"id"`
	StudentID      string  `json:"student_id"`
	RegisterNumber *string `json:"register_number,omitempty"`
	Name           *string `json:"name,omitempty"`
	Date           string  `json:"date"`
	Status         string  `json:"status"`
}

// Entry is one submission triple from a marking session.
type Entry struct {
	RegisterNumber string `json:"registerNumber"`
	Date           string `json:"date"`
	Status         string `json:"status"`
}

// Rejection reasons for batch entries.
const (
	ReasonInvalidDate    = "invalid_date"
	ReasonInvalidStatus  = "invalid_status"
	ReasonUnknownStudent = "unknown_student"
)

// EntryError describes why one batch entry was rejected.
type EntryError struct {
	Index          int    `json:"index"`
	RegisterNumber string `json:"registerNumber"`
	Reason         string `json:"reason"`
	Message        string `json:"message"`
}

// BatchResult summarizes a reconciliation run. Rejected entries never abort
// the rest of the batch; they are reported here.
type BatchResult struct {
	Inserted int          `json:"inserted"`
	Updated  int          `json:"updated"`
	Rejected int          `json:"rejected"`
	Errors   []EntryError `json:"errors,omitempty"`
}

// NormalizeStatus folds a submitted status to its canonical form. The second
// return is false for anything that is not present/absent.
func NormalizeStatus(s string) (string, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case StatusPresent:
		return StatusPresent, true
	case StatusAbsent:
		return StatusAbsent, true
	}
	return "", false
}

// NormalizeDate parses a submitted date down to its calendar day, discarding
// any time-of-day component ("2024-01-05", "2024-01-05 10:00:00" and
// "2024-01-05T10:00:00" all land on the same day).
func NormalizeDate(s string) (time.Time, error) {
	day := strings.TrimSpace(s)
	if i := strings.IndexAny(day, " T"); i >= 0 {
		day = day[:i]
	}
	return time.Parse("2006-01-02", day)
}
