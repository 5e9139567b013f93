package purchases

import (
	"context"

	"github.com/dmitrijs2005/examdesk/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, p *models.Purchase) (*models.Purchase, error)
	Get(ctx context.Context, id string) (*models.Purchase, error)
	GetByPaymentID(ctx context.Context, paymentID string) (*models.Purchase, error)
	ListByCandidate(ctx context.Context, candidateID string) ([]*models.PurchaseRow, error)
}
