package payments

import (
	"context"

	"github.com/dmitrijs2005/examdesk/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, p *models.Payment) (*models.Payment, error)
	Get(ctx context.Context, id string) (*models.Payment, error)
	GetByOrderID(ctx context.Context, orderID string) (*models.Payment, error)
	GetBypass(ctx context.Context, sessionID string) (*models.Payment, error)
	MarkPaid(ctx context.Context, orderID, paymentID, signature string) (*models.Payment, error)
	MarkFailed(ctx context.Context, orderID, paymentID string) error
}
