package wizard

import "time"

// Draft is the candidate form. Tags drive the required-field gate.
type Draft struct {
	Identifier  string `json:"identifier" validate:"required,identifier"`
	Name        string `json:"name" validate:"required,max=120"`
	FatherName  string `json:"father_name" validate:"max=120"`
	DateOfBirth string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone" validate:"required,phone"`
	Address     string `json:"address" validate:"max=500"`
	PhotoKey    string `json:"photo_key,omitempty"`
}

// Item is the exam or catalog item the session is for.
type Item struct {
	ID    string `json:"id"`
	Kind  string `json:"kind"`
	Title string `json:"title"`
	Price int64  `json:"price"`
}

// Session is the transient wizard state kept between calls.
type Session struct {
	ID    string `json:"id"`
	Flow  Flow   `json:"flow"`
	State State  `json:"state"`

	CandidateID string `json:"candidate_id,omitempty"`
	Draft       Draft  `json:"draft"`
	Item        Item   `json:"item"`

	PaymentID     string `json:"payment_id,omitempty"`
	OrderID       string `json:"order_id,omitempty"`
	BypassReason  string `json:"bypass_reason,omitempty"`
	ApplicationID string `json:"application_id,omitempty"`
	PurchaseID    string `json:"purchase_id,omitempty"`
	DocumentID    string `json:"document_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession starts a session in IdentityCheck.
func NewSession(id string, flow Flow, identifier string, now time.Time) *Session {
	return &Session{
		ID:        id,
		Flow:      flow,
		State:     IdentityCheck,
		Draft:     Draft{Identifier: identifier},
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
}

// IsFree reports whether the selected item costs nothing.
func (s *Session) IsFree() bool {
	return s.Item.Price == 0
}
