package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"attendtrack/internal/student"
)

type fakeLedger struct {
	rows    map[string]string // studentID|day -> status
	failErr error
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{rows: map[string]string{}}
}

func (f *fakeLedger) Upsert(_ context.Context, studentID string, day time.Time, status string) (bool, error) {
	if f.failErr != nil {
		return false, f.failErr
	}
	key := studentID + "|" + day.Format("2006-01-02")
	_, exists := f.rows[key]
	f.rows[key] = status
	return !exists, nil
}

type fakeRoster struct {
	students map[string]*student.Student
	failErr  error
}

func (f *fakeRoster) FindByRegister(_ context.Context, registerNumber string) (*student.Student, error) {
	if f.failErr != nil {
		return nil, f.failErr
	}
	return f.students[registerNumber], nil
}

type fakeCache struct {
	invalidated []string
}

func (f *fakeCache) InvalidateDay(_ context.Context, day time.Time) {
	f.invalidated = append(f.invalidated, day.Format("2006-01-02"))
}

func roster(registers ...string) *fakeRoster {
	r := &fakeRoster{students: map[string]*student.Student{}}
	for _, reg := range registers {
		r.students[reg] = &student.Student{ID: "id-" + reg, RegisterNumber: reg}
	}
	return r
}

func TestReconcileInsertThenUpdate(t *testing.T) {
	ledger := newFakeLedger()
	svc := NewService(ledger, roster("2023CSE001"), nil)

	res, err := svc.Reconcile(context.Background(), []Entry{
		{RegisterNumber: "2023CSE001", Date: "2024-01-05", Status: "present"},
	})
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if res.Inserted != 1 || res.Updated != 0 || res.Rejected != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
	if got := ledger.rows["id-2023CSE001|2024-01-05"]; got != StatusPresent {
		t.Fatalf("stored status = %q, want %q", got, StatusPresent)
	}

	// resubmit with the opposite status: same row, last write wins
	res, err = svc.Reconcile(context.Background(), []Entry{
		{RegisterNumber: "2023CSE001", Date: "2024-01-05", Status: "absent"},
	})
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if res.Inserted != 0 || res.Updated != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(ledger.rows) != 1 {
		t.Fatalf("row count = %d, want 1", len(ledger.rows))
	}
	if got := ledger.rows["id-2023CSE001|2024-01-05"]; got != StatusAbsent {
		t.Fatalf("stored status = %q, want %q", got, StatusAbsent)
	}
}

func TestReconcileIdempotent(t *testing.T) {
	ledger := newFakeLedger()
	svc := NewService(ledger, roster("r1", "r2"), nil)
	batch := []Entry{
		{RegisterNumber: "r1", Date: "2024-03-01", Status: "PRESENT"},
		{RegisterNumber: "r2", Date: "2024-03-01", Status: "Absent"},
	}

	if _, err := svc.Reconcile(context.Background(), batch); err != nil {
		t.Fatalf("first reconcile: %v", err)
	}
	first := map[string]string{}
	for k, v := range ledger.rows {
		first[k] = v
	}

	if _, err := svc.Reconcile(context.Background(), batch); err != nil {
		t.Fatalf("second reconcile: %v", err)
	}
	if len(ledger.rows) != len(first) {
		t.Fatalf("row count changed: %d -> %d", len(first), len(ledger.rows))
	}
	for k, v := range first {
		if ledger.rows[k] != v {
			t.Fatalf("row %s changed: %q -> %q", k, v, ledger.rows[k])
		}
	}
}

func TestReconcilePartialBatch(t *testing.T) {
	ledger := newFakeLedger()
	svc := NewService(ledger, roster("r1", "r3"), nil)

	res, err := svc.Reconcile(context.Background(), []Entry{
		{RegisterNumber: "r1", Date: "2024-03-01", Status: "present"},
		{RegisterNumber: "ghost", Date: "2024-03-01", Status: "present"},
		{RegisterNumber: "r3", Date: "2024-03-01", Status: "absent"},
	})
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if res.Inserted != 2 || res.Rejected != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(res.Errors) != 1 {
		t.Fatalf("errors = %d, want 1", len(res.Errors))
	}
	e := res.Errors[0]
	if e.Index != 1 || e.Reason != ReasonUnknownStudent || e.RegisterNumber != "ghost" {
		t.Fatalf("unexpected entry error %+v", e)
	}
	if len(ledger.rows) != 2 {
		t.Fatalf("row count = %d, want 2", len(ledger.rows))
	}
}

func TestReconcileRejections(t *testing.T) {
	tests := []struct {
		name   string
		entry  Entry
		reason string
	}{
		{"bad date", Entry{RegisterNumber: "r1", Date: "05-01-2024", Status: "present"}, ReasonInvalidDate},
		{"empty date", Entry{RegisterNumber: "r1", Date: "", Status: "present"}, ReasonInvalidDate},
		{"bad status", Entry{RegisterNumber: "r1", Date: "2024-01-05", Status: "late"}, ReasonInvalidStatus},
		{"unknown student", Entry{RegisterNumber: "nope", Date: "2024-01-05", Status: "present"}, ReasonUnknownStudent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := newFakeLedger()
			svc := NewService(ledger, roster("r1"), nil)
			res, err := svc.Reconcile(context.Background(), []Entry{tt.entry})
			if err != nil {
				t.Fatalf("reconcile: %v", err)
			}
			if res.Rejected != 1 || len(res.Errors) != 1 {
				t.Fatalf("unexpected result %+v", res)
			}
			if res.Errors[0].Reason != tt.reason {
				t.Fatalf("reason = %q, want %q", res.Errors[0].Reason, tt.reason)
			}
			if len(ledger.rows) != 0 {
				t.Fatalf("rejected entry reached the ledger")
			}
		})
	}
}

func TestReconcileCollapsesTimeOfDay(t *testing.T) {
	ledger := newFakeLedger()
	svc := NewService(ledger, roster("r1"), nil)

	res, err := svc.Reconcile(context.Background(), []Entry{
		{RegisterNumber: "r1", Date: "2024-01-05T00:00:00", Status: "present"},
		{RegisterNumber: "r1", Date: "2024-01-05 10:00:00", Status: "absent"},
	})
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if res.Inserted != 1 || res.Updated != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(ledger.rows) != 1 {
		t.Fatalf("row count = %d, want 1", len(ledger.rows))
	}
	if got := ledger.rows["id-r1|2024-01-05"]; got != StatusAbsent {
		t.Fatalf("stored status = %q, want %q", got, StatusAbsent)
	}
}

func TestReconcileStorageFailureAbortsBatch(t *testing.T) {
	ledger := newFakeLedger()
	boom := errors.New("connection refused")
	svc := NewService(ledger, roster("r1", "r2"), nil)

	// first entry lands, then the store goes away
	res, err := svc.Reconcile(context.Background(), []Entry{
		{RegisterNumber: "r1", Date: "2024-01-05", Status: "present"},
	})
	if err != nil || res.Inserted != 1 {
		t.Fatalf("setup reconcile failed: %v %+v", err, res)
	}

	ledger.failErr = boom
	res, err = svc.Reconcile(context.Background(), []Entry{
		{RegisterNumber: "r2", Date: "2024-01-05", Status: "present"},
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	if res.Inserted != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestReconcileInvalidatesTouchedDays(t *testing.T) {
	ledger := newFakeLedger()
	cache := &fakeCache{}
	svc := NewService(ledger, roster("r1", "r2"), cache)

	_, err := svc.Reconcile(context.Background(), []Entry{
		{RegisterNumber: "r1", Date: "2024-01-05", Status: "present"},
		{RegisterNumber: "r2", Date: "2024-01-05", Status: "present"},
		{RegisterNumber: "r1", Date: "2024-01-06", Status: "absent"},
	})
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if len(cache.invalidated) != 2 {
		t.Fatalf("invalidated %v, want the two touched days", cache.invalidated)
	}
	seen := map[string]bool{}
	for _, day := range cache.invalidated {
		seen[day] = true
	}
	if !seen["2024-01-05"] || !seen["2024-01-06"] {
		t.Fatalf("invalidated %v, want 2024-01-05 and 2024-01-06", cache.invalidated)
	}
}
