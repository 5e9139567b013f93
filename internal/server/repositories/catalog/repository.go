package catalog

import (
	"context"

	"github.com/dmitrijs2005/examdesk/internal/server/models"
)

type Repository interface {
	List(ctx context.Context, kind string) ([]*models.CatalogItem, error)
	Get(ctx context.Context, id string) (*models.CatalogItem, error)
}
