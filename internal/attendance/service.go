package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"attendtrack/internal/student"
)

var reconcileEntries = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "attendtrack_reconcile_entries_total",
	Help: "Batch reconciliation entries by outcome.",
}, []string{"outcome"})

// Ledger is the write surface reconciliation needs.
type Ledger interface {
	Upsert(ctx context.Context, studentID string, day time.Time, status string) (bool, error)
}

// Roster resolves register numbers to students.
type Roster interface {
	FindByRegister(ctx context.Context, registerNumber string) (*student.Student, error)
}

// Cache is notified of days whose stored rows changed, so derived aggregates
// can be dropped. May be nil.
type Cache interface {
	InvalidateDay(ctx context.Context, day time.Time)
}

// Service reconciles submission batches against the ledger.
type Service struct {
	ledger Ledger
	roster Roster
	cache  Cache
}

// NewService creates a reconciliation service. cache may be nil.
func NewService(ledger Ledger, roster Roster, cache Cache) *Service {
	return &Service{ledger: ledger, roster: roster, cache: cache}
}

// Reconcile applies a submission batch to the ledger, one entry at a time.
// Entries are independent: a rejected entry is recorded in the result and the
// rest of the batch still runs, and successful writes are never rolled back.
// A storage failure aborts the remainder and is returned alongside the
// partial result.
func (s *Service) Reconcile(ctx context.Context, entries []Entry) (BatchResult, error) {
	var res BatchResult
	touched := map[time.Time]struct{}{}

	for i, e := range entries {
		day, err := NormalizeDate(e.Date)
		if err != nil {
			res.reject(i, e.RegisterNumber, ReasonInvalidDate,
				fmt.Sprintf("invalid date %q for register_number %s", e.Date, e.RegisterNumber))
			continue
		}
		status, ok := NormalizeStatus(e.Status)
		if !ok {
			res.reject(i, e.RegisterNumber, ReasonInvalidStatus,
				fmt.Sprintf("invalid status %q for register_number %s", e.Status, e.RegisterNumber))
			continue
		}

		st, err := s.roster.FindByRegister(ctx, e.RegisterNumber)
		if err != nil {
			return res, err
		}
		if st == nil {
			res.reject(i, e.RegisterNumber, ReasonUnknownStudent,
				fmt.Sprintf("student with register_number %s not found", e.RegisterNumber))
			continue
		}

		inserted, err := s.ledger.Upsert(ctx, st.ID, day, status)
		if err != nil {
			return res, err
		}
		if inserted {
			res.Inserted++
			reconcileEntries.WithLabelValues("inserted").Inc()
		} else {
			res.Updated++
			reconcileEntries.WithLabelValues("updated").Inc()
		}
		touched[day] = struct{}{}
	}

	if s.cache != nil {
		for day := range touched {
			s.cache.InvalidateDay(ctx, day)
		}
	}
	return res, nil
}

func (r *BatchResult) reject(index int, registerNumber, reason, msg string) {
	r.Rejected++
	reconcileEntries.WithLabelValues("rejected").Inc()
	r.Errors = append(r.Errors, EntryError{
		Index:          index,
		RegisterNumber: registerNumber,
		Reason:         reason,
		Message:        msg,
	})
}
