// Package services contains server-side business logic: the registration
// and purchase wizard, document issuing, exam listing and progress, and
// the admin dashboard.
package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/examdesk/internal/server/gateway"
	"github.com/dmitrijs2005/examdesk/internal/server/kv"
	"github.com/dmitrijs2005/examdesk/internal/wizard"
)

// SessionStore keeps wizard sessions between calls.
type SessionStore interface {
	Save(ctx context.Context, s *wizard.Session) error
	Load(ctx context.Context, id string) (*wizard.Session, error)
	Delete(ctx context.Context, id string) error
}

type ProgressStore interface {
	Save(ctx context.Context, examName, candidateID string, p kv.Progress, ttl time.Duration) error
	Load(ctx context.Context, examName, candidateID string) (kv.Progress, error)
	Clear(ctx context.Context, examName, candidateID string) error
}

type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// PaymentGateway is the hosted checkout provider.
type PaymentGateway interface {
	KeyID() string
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*gateway.Order, error)
	VerifySignature(orderID, paymentID, signature string) error
	VerifyWebhook(body []byte, signature string) error
}

// ImageFetcher downloads a remote image referenced by a question.
type ImageFetcher func(ctx context.Context, url string) ([]byte, error)
