package categories

import (
	"context"

	"github.com/dmitrijs2005/examdesk/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]*models.Category, error)
	Create(ctx context.Context, name string) (*models.Category, error)
	Rename(ctx context.Context, id, name string) (*models.Category, error)
	Delete(ctx context.Context, id string) error
}
