package admins

import (
	"context"

	"github.com/dmitrijs2005/examdesk/internal/server/models"
)

type Repository interface {
	GetByUserName(ctx context.Context, userName string) (*models.Admin, error)
	Upsert(ctx context.Context, admin *models.Admin) (*models.Admin, error)
}
