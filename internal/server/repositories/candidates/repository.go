package candidates

import (
	"context"

	"github.com/dmitrijs2005/examdesk/internal/server/models"
)

type Repository interface {
	Get(ctx context.Context, id string) (*models.Candidate, error)
	GetByIdentifier(ctx context.Context, identifier string) (*models.Candidate, error)
	Create(ctx context.Context, c *models.Candidate) (*models.Candidate, error)
	Update(ctx context.Context, c *models.Candidate) error
}
