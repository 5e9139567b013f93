package questions

import (
	"context"

	"github.com/dmitrijs2005/examdesk/internal/server/models"
)

type Repository interface {
	ListByExam(ctx context.Context, examID string) ([]*models.Question, error)
	ReplaceForExam(ctx context.Context, examID string, qs []*models.Question) error
}
