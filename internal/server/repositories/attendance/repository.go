package attendance

import (
	"context"

	"github.com/dmitrijs2005/examdesk/internal/server/models"
)

type Repository interface {
	Roster(ctx context.Context, examID string) ([]models.RosterEntry, error)
	Save(ctx context.Context, examID string, marks []models.AttendanceMark) error
}
