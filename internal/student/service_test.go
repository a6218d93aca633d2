package student

import (
	"context"
	"errors"
	"testing"
)

// fakeStore keeps students and a toy ledger so cascade behavior is visible.
type fakeStore struct {
	students map[string]Student  // by register number
	ledger   map[string][]string // studentID -> dates
}

func newFakeStore() *fakeStore {
	return &fakeStore{students: map[string]Student{}, ledger: map[string][]string{}}
}

func (f *fakeStore) Insert(_ context.Context, s Student) error {
	if _, exists := f.students[s.RegisterNumber]; exists {
		return ErrDuplicateRegister
	}
	f.students[s.RegisterNumber] = s
	return nil
}

func (f *fakeStore) FindByRegister(_ context.Context, registerNumber string) (*Student, error) {
	s, ok := f.students[registerNumber]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (f *fakeStore) List(_ context.Context) ([]WithAttendance, error) {
	var res []WithAttendance
	for _, s := range f.students {
		res = append(res, WithAttendance{Student: s})
	}
	return res, nil
}

func (f *fakeStore) Delete(_ context.Context, registerNumber string) (bool, error) {
	s, ok := f.students[registerNumber]
	if !ok {
		return false, nil
	}
	delete(f.students, registerNumber)
	delete(f.ledger, s.ID) // the FK cascade in the real store
	return true, nil
}

func validProfile() Profile {
	return Profile{
		Name:           "Asha K",
		RegisterNumber: "2023CSE001",
		Year:           "2",
		Branch:         "CSE",
		DOB:            "2004-06-15",
		Gender:         "F",
		Mobile:         "9876543210",
		Email:          "asha@example.edu",
	}
}

func TestAdd(t *testing.T) {
	svc := NewService(newFakeStore())
	st, err := svc.Add(context.Background(), validProfile())
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if st.ID == "" {
		t.Fatal("no id assigned")
	}
	if st.YearOfStudy != 2 {
		t.Fatalf("year = %d, want 2", st.YearOfStudy)
	}
	if st.Minority != "No" {
		t.Fatalf("minority = %q, want default No", st.Minority)
	}
	if st.Community != nil || st.BloodGroup != nil || st.Aadhar != nil {
		t.Fatal("empty optional fields should stay nil")
	}
}

func TestAddValidation(t *testing.T) {
	mutations := map[string]func(*Profile){
		"missing name":     func(p *Profile) { p.Name = "" },
		"missing register": func(p *Profile) { p.RegisterNumber = "" },
		"missing mobile":   func(p *Profile) { p.Mobile = "" },
		"missing email":    func(p *Profile) { p.Email = "" },
		"year zero":        func(p *Profile) { p.Year = "0" },
		"year five":        func(p *Profile) { p.Year = "5" },
		"year garbage":     func(p *Profile) { p.Year = "second" },
		"bad dob":          func(p *Profile) { p.DOB = "15/06/2004" },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			p := validProfile()
			mutate(&p)
			_, err := NewService(newFakeStore()).Add(context.Background(), p)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
		})
	}
}

func TestAddDuplicateRegister(t *testing.T) {
	svc := NewService(newFakeStore())
	if _, err := svc.Add(context.Background(), validProfile()); err != nil {
		t.Fatalf("first add: %v", err)
	}
	_, err := svc.Add(context.Background(), validProfile())
	if !errors.Is(err, ErrDuplicateRegister) {
		t.Fatalf("err = %v, want ErrDuplicateRegister", err)
	}
}

func TestFind(t *testing.T) {
	svc := NewService(newFakeStore())
	if _, err := svc.Find(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	added, _ := svc.Add(context.Background(), validProfile())
	found, err := svc.Find(context.Background(), added.RegisterNumber)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.ID != added.ID {
		t.Fatalf("found %q, want %q", found.ID, added.ID)
	}
}

func TestRemoveCascades(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	added, _ := svc.Add(context.Background(), validProfile())
	store.ledger[added.ID] = []string{"2024-01-05", "2024-01-06"}

	if err := svc.Remove(context.Background(), added.RegisterNumber); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok := store.ledger[added.ID]; ok {
		t.Fatal("ledger rows survived the student's removal")
	}
	if err := svc.Remove(context.Background(), added.RegisterNumber); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second remove err = %v, want ErrNotFound", err)
	}
}
