package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

type AttendanceStatus string

const (
	Present AttendanceStatus = "present"
	Absent  AttendanceStatus = "absent"
)

// RosterEntry is one registered candidate for an exam with the stored mark,
// if any.
type RosterEntry struct {
	CandidateID   string
	CandidateName string
	ApplicationNo string
	Status        AttendanceStatus
}

// AttendanceMark is one row of an attendance save.
type AttendanceMark struct {
	CandidateID string
	Status      AttendanceStatus
}

type Admin struct {
	ID           string
	UserName     string
	PasswordHash []byte
}

// CheckPassword compares password with the stored bcrypt hash.
func (a *Admin) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword(a.PasswordHash, []byte(password)) == nil
}

// HashPassword returns a bcrypt hash for password.
func HashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

type Question struct {
	ID            string
	ExamID        string
	Ordinal       int
	Text          string
	ImageURL      string
	Options       []string
	CorrectOption int
}

// Document kinds stored in the documents table.
const (
	DocumentInvoice       = "invoice"
	DocumentHallTicket    = "hall_ticket"
	DocumentQuestionPaper = "question_paper"
)

// Document is a generated PDF kept in object storage.
type Document struct {
	ID         string
	Kind       string
	OwnerRef   string
	Filename   string
	StorageKey string
	CreatedAt  time.Time
}
