package models

import "time"

// Exam is a scheduled exam. Price is in paise; zero means a free exam.
type Exam struct {
	ID              string
	Code            string
	Name            string
	CategoryID      string
	Price           int64
	ExamDate        time.Time
	StartAt         time.Time
	EndAt           time.Time
	Venue           string
	DurationMinutes int
	Instructions    []string
}

// Free reports whether registration needs no payment.
func (e *Exam) Free() bool { return e.Price == 0 }

// Candidate is a registered person. Identifier is the phone number or email
// used for the identity check.
type Candidate struct {
	ID          string
	Identifier  string
	Name        string
	FatherName  string
	DateOfBirth time.Time
	Email       string
	Phone       string
	Address     string
	PhotoKey    string
	CreatedAt   time.Time
}

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "PENDING"
	ApplicationSelected ApplicationStatus = "SELECTED"
	ApplicationRejected ApplicationStatus = "REJECTED"
)

// Valid reports whether s is one of the known statuses.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationPending, ApplicationSelected, ApplicationRejected:
		return true
	}
	return false
}

// Application is a candidate's registration for an exam.
type Application struct {
	ID            string
	ApplicationNo string
	CandidateID   string
	ExamID        string
	Status        ApplicationStatus
	PaymentID     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ApplicationRow is an application joined with the names shown on the
// admin dashboard.
type ApplicationRow struct {
	Application
	CandidateName string
	ExamCode      string
	ExamName      string
}
