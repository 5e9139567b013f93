package exams

import (
	"context"
	"time"

	"github.com/dmitrijs2005/examdesk/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]*models.Exam, error)
	ListByDate(ctx context.Context, day time.Time) ([]*models.Exam, error)
	Get(ctx context.Context, id string) (*models.Exam, error)
	GetByCode(ctx context.Context, code string) (*models.Exam, error)
}
