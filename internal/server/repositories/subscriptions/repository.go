package subscriptions

import (
	"context"

	"github.com/dmitrijs2005/examdesk/internal/server/models"
)

type Repository interface {
	Get(ctx context.Context, subscriberID string) (*models.Subscription, error)
}
