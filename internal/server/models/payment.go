package models

import "time"

type PaymentStatus string

const (
	PaymentCreated PaymentStatus = "created"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// Bypass reasons recorded on zero-amount payments.
const (
	BypassFree      = "free"
	BypassSuperUser = "superuser"
)

// What a payment settles into.
const (
	FlowExamRegistration = "exam_registration"
	FlowPurchase         = "purchase"
)

// Payment is one attempt to pay for an exam or catalog item. Bypassed
// payments have Amount 0 and a BypassReason.
//
// CandidateID, ItemID and Flow name what the payment buys, so a captured
// payment can be settled without the wizard session that created it.
// ItemID is an exam id for FlowExamRegistration and a catalog item id
// otherwise.
type Payment struct {
	ID           string
	OrderID      string
	PaymentID    string
	Signature    string
	Amount       int64
	Currency     string
	Status       PaymentStatus
	BypassReason string
	SessionID    string
	CandidateID  string
	ItemID       string
	Flow         string
	CreatedAt    time.Time
}

// Catalog item kinds. KindExamRegistration is not sold through the catalog;
// it names exam registration in super user rules.
const (
	KindExamRegistration = "exam_registration"
	KindPracticeTest     = "practice_test"
	KindSyllabusPDF      = "syllabus_pdf"
	KindVideoSyllabus    = "video_syllabus"
	KindSubscription     = "subscription"
)

// CatalogItem is something a candidate can buy.
type CatalogItem struct {
	ID           string
	Kind         string
	Title        string
	Price        int64
	DurationDays int
	AssetKey     string
}

// Purchase records a bought catalog item. ExpiresAt is computed once when the
// purchase is stored.
type Purchase struct {
	ID          string
	CandidateID string
	ItemID      string
	PaymentID   string
	Amount      int64
	PurchasedAt time.Time
	ExpiresAt   time.Time
}

// Active reports whether the purchase has not expired at now.
func (p *Purchase) Active(now time.Time) bool {
	return now.Before(p.ExpiresAt)
}

// PurchaseRow is a purchase joined with its item.
type PurchaseRow struct {
	Purchase
	ItemKind  string
	ItemTitle string
}

// Subscription is a super user subscription.
type Subscription struct {
	SubscriberID string
	Name         string
	ExpiresAt    time.Time
}

// Valid reports whether the subscription is still running at now.
func (s *Subscription) Valid(now time.Time) bool {
	return s.ExpiresAt.After(now)
}
