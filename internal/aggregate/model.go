package aggregate

import "time"

// Mode selects the denominator for a daily percentage.
//
// ModeLedgerOnly counts only the rows recorded for the day. ModeRosterComplete
// measures against the full enrolled roster, defaulting students without a
// row to absent — the convention the dashboard uses for "today".
type Mode string

const (
	ModeLedgerOnly     Mode = "ledger-only"
	ModeRosterComplete Mode = "roster-complete"
)

// ParseMode validates a caller-supplied mode, defaulting to ledger-only.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case "", ModeLedgerOnly:
		return ModeLedgerOnly, true
	case ModeRosterComplete:
		return ModeRosterComplete, true
	}
	return "", false
}

// Order is the date direction of a range aggregate: ascending for trend
// charts, descending for recent-records views.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// ParseOrder validates a caller-supplied order, defaulting to ascending.
func ParseOrder(s string) (Order, bool) {
	switch Order(s) {
	case "", OrderAsc:
		return OrderAsc, true
	case OrderDesc:
		return OrderDesc, true
	}
	return "", false
}

// Daily is the derived aggregate for one calendar day. Never persisted, so
// it is always consistent with the ledger at query time.
type Daily struct {
	Date       string `json:"date"`
	Present    int    `json:"present"`
	Absent     int    `json:"absent"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
}

// Branch is the windowed rollup for one branch. Percentage measures present
// marks against total_students x days-with-records in the window, the
// dashboard's historical definition; it only reads meaningfully when daily
// coverage is complete.
type Branch struct {
	Branch        string `json:"branch"`
	TotalStudents int    `json:"total_students"`
	Present       int    `json:"present_count"`
	Percentage    int    `json:"percentage"`
}

// Overall is the window-level stats card.
type Overall struct {
	TotalRecords      int    `json:"total_records"`
	Present           int    `json:"present_count"`
	Absent            int    `json:"absent_count"`
	OverallPercentage int    `json:"overall_percentage"`
	AverageDaily      int    `json:"average_daily_percentage"`
	BestDay           *Daily `json:"best_day,omitempty"`
	WorstDay          *Daily `json:"worst_day,omitempty"`
}

// DayCount is a raw per-day tally from the ledger.
type DayCount struct {
	Day     time.Time
	Present int
	Total   int
}

// BranchCount is a raw per-branch tally: enrolled students and present marks
// in the window.
type BranchCount struct {
	Branch   string
	Students int
	Present  int
}
