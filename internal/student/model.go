package student

import "time"

// Student is a member of the roster. RegisterNumber is the human-assigned
// business key and never changes after creation.
type Student struct {
	ID             string    `json:"id"`
	RegisterNumber string    `json:"register_number"`
	Name           string    `json:"name"`
	YearOfStudy    int       `json:"year_of_study"`
	Branch         string    `json:"branch"`
	DOB            time.Time `json:"dob"`
	Gender         string    `json:"gender"`
	Community      *string   `json:"community,omitempty"`
	Minority       string    `json:"minority"`
	BloodGroup     *string   `json:"blood_group,omitempty"`
	Aadhar         *string   `json:"aadhar,omitempty"`
	Mobile         string    `json:"mobile"`
	Email          string    `json:"email"`
	CreatedAt      time.Time `json:"created_at"`
}

// WithAttendance is a student joined with their most recent ledger row,
// as served by the directory listing.
type WithAttendance struct {
	Student
	LastAttendance *string `json:"lastAttendance,omitempty"`
	LastStatus     *string `json:"status,omitempty"`
}

// Profile carries the raw fields of a directory-add request. Year and DOB
// arrive as strings and are validated by the service.
type Profile struct {
	Name           string
	RegisterNumber string
	Year           string
	Branch         string
	DOB            string
	Gender         string
	Community      string
	Minority       string
	BloodGroup     string
	Aadhar         string
	Mobile         string
	Email          string
}
