// Package wizard is the state machine behind exam registration and catalog
// purchases. It holds no I/O: callers load a Session, Fire events at it and
// persist the result.
package wizard

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/examdesk/internal/common"
)

type State string

const (
	IdentityCheck        State = "identity_check"
	EditOrProceed        State = "edit_or_proceed"
	NewRegistration      State = "new_registration"
	FormEntry            State = "form_entry"
	PurchaseConfirmation State = "purchase_confirmation"
	PaymentPending       State = "payment_pending"
	PaymentCompleted     State = "payment_completed"
	DocumentDelivered    State = "document_delivered"
)

type Event string

const (
	IdentityFound    Event = "identity_found"
	IdentityNotFound Event = "identity_not_found"
	FormSubmitted    Event = "form_submitted"
	FormValid        Event = "form_valid"
	BypassGranted    Event = "bypass_granted"
	OrderCreated     Event = "order_created"
	PaymentVerified  Event = "payment_verified"
	PaymentFailed    Event = "payment_failed"
	PaymentDismissed Event = "payment_dismissed"
	DocumentIssued   Event = "document_issued"
)

// Flow says what the session is buying.
type Flow string

const (
	FlowExamRegistration Flow = "exam_registration"
	FlowPurchase         Flow = "purchase"
)

type transitions map[State]map[Event]State

var defaultTable = transitions{
	IdentityCheck: {
		IdentityFound:    EditOrProceed,
		IdentityNotFound: NewRegistration,
	},
	EditOrProceed: {
		FormSubmitted: FormEntry,
	},
	NewRegistration: {
		FormSubmitted: FormEntry,
	},
	FormEntry: {
		FormSubmitted: FormEntry,
		FormValid:     PurchaseConfirmation,
	},
	PurchaseConfirmation: {
		FormSubmitted: FormEntry,
		BypassGranted: PaymentCompleted,
		OrderCreated:  PaymentPending,
	},
	PaymentPending: {
		PaymentVerified:  PaymentCompleted,
		PaymentFailed:    PurchaseConfirmation,
		PaymentDismissed: PurchaseConfirmation,
	},
	PaymentCompleted: {
		DocumentIssued: DocumentDelivered,
	},
	DocumentDelivered: {
		DocumentIssued: DocumentDelivered,
	},
}

// Machine validates events against the transition table.
type Machine struct {
	table transitions
	now   func() time.Time
}

func New() *Machine {
	return &Machine{table: defaultTable, now: time.Now}
}

// Can reports whether e is accepted in state s.
func (m *Machine) Can(s State, e Event) bool {
	_, ok := m.table[s][e]
	return ok
}

// Fire moves the session to the next state. An event not accepted in the
// current state leaves the session untouched and returns an error wrapping
// common.ErrInvalidTransition.
func (m *Machine) Fire(s *Session, e Event) (State, error) {
	next, ok := m.table[s.State][e]
	if !ok {
		return s.State, fmt.Errorf("%w: %s in %s", common.ErrInvalidTransition, e, s.State)
	}
	s.State = next
	s.UpdatedAt = m.now().UTC()
	return next, nil
}

// Terminal reports whether no further payment events apply to s.
func Terminal(s State) bool {
	return s == PaymentCompleted || s == DocumentDelivered
}
