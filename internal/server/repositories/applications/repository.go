package applications

import (
	"context"

	"github.com/dmitrijs2005/examdesk/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, a *models.Application) (*models.Application, error)
	Get(ctx context.Context, id string) (*models.Application, error)
	GetByPaymentID(ctx context.Context, paymentID string) (*models.Application, error)
	GetByCandidateExam(ctx context.Context, candidateID, examID string) (*models.Application, error)
	List(ctx context.Context, status models.ApplicationStatus) ([]*models.ApplicationRow, error)
	SetStatus(ctx context.Context, id string, status models.ApplicationStatus) (*models.Application, error)
	Delete(ctx context.Context, id string) error
}
