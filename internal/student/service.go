package student

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound means no student carries the requested register number.
	ErrNotFound = errors.New("student not found")
	// ErrDuplicateRegister means the register number is already taken.
	ErrDuplicateRegister = errors.New("register number already exists")
)

// ValidationError reports a malformed or missing profile field.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func invalidf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// Store is the persistence surface the directory needs.
type Store interface {
	Insert(ctx context.Context, s Student) error
	FindByRegister(ctx context.Context, registerNumber string) (*Student, error)
	List(ctx context.Context) ([]WithAttendance, error)
	Delete(ctx context.Context, registerNumber string) (bool, error)
}

// Service manages the student directory.
type Service struct {
	store Store
}

// NewService creates a directory service backed by a store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Add validates a profile and creates the student.
func (s *Service) Add(ctx context.Context, p Profile) (Student, error) {
	if p.Name == "" || p.RegisterNumber == "" || p.Year == "" || p.Branch == "" ||
		p.DOB == "" || p.Gender == "" || p.Mobile == "" || p.Email == "" {
		return Student{}, invalidf("missing required fields: name, registerNumber, year, branch, dob, gender, mobile, email")
	}

	year, err := strconv.Atoi(p.Year)
	if err != nil || year < 1 || year > 4 {
		return Student{}, invalidf("year of study must be between 1 and 4")
	}
	dob, err := time.Parse("2006-01-02", p.DOB)
	if err != nil {
		return Student{}, invalidf("invalid date of birth %q", p.DOB)
	}

	minority := p.Minority
	if minority == "" {
		minority = "No"
	}

	st := Student{
		ID:             uuid.NewString(),
		RegisterNumber: p.RegisterNumber,
		Name:           p.Name,
		YearOfStudy:    year,
		Branch:         p.Branch,
		DOB:            dob,
		Gender:         p.Gender,
		Community:      optional(p.Community),
		Minority:       minority,
		BloodGroup:     optional(p.BloodGroup),
		Aadhar:         optional(p.Aadhar),
		Mobile:         p.Mobile,
		Email:          p.Email,
	}
	if err := s.store.Insert(ctx, st); err != nil {
		return Student{}, err
	}
	return st, nil
}

// Find resolves a register number.
func (s *Service) Find(ctx context.Context, registerNumber string) (*Student, error) {
	st, err := s.store.FindByRegister(ctx, registerNumber)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, ErrNotFound
	}
	return st, nil
}

// List returns the roster with each student's most recent attendance.
func (s *Service) List(ctx context.Context) ([]WithAttendance, error) {
	return s.store.List(ctx)
}

// Remove deletes a student and, through the store's cascade, every ledger
// row that references them.
func (s *Service) Remove(ctx context.Context, registerNumber string) error {
	deleted, err := s.store.Delete(ctx, registerNumber)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
