package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/examdesk/internal/logging"
	"github.com/dmitrijs2005/examdesk/internal/server/config"
	"github.com/dmitrijs2005/examdesk/internal/server/models"
	"github.com/dmitrijs2005/examdesk/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/examdesk/internal/timex"
)

// ExamView is an exam with the time left until it starts, computed when the
// list is built. StartsIn is zero once the exam has started.
type ExamView struct {
	*models.Exam
	StartsIn time.Duration
}

type ExamService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	interval    time.Duration
	log         logging.Logger
	now         timex.Clock
}

func NewExamService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, log logging.Logger) *ExamService {
	return &ExamService{
		db:          db,
		repomanager: m,
		interval:    cfg.ExamRefreshInterval,
		log:         log.With("module", "exams"),
		now:         timex.UTC,
	}
}

// List returns all exams, or only today's when today is set.
func (s *ExamService) List(ctx context.Context, today bool) ([]ExamView, error) {
	now := s.now()
	repo := s.repomanager.Exams(s.db)

	var (
		exams []*models.Exam
		err   error
	)
	if today {
		exams, err = repo.ListByDate(ctx, now)
	} else {
		exams, err = repo.List(ctx)
	}
	if err != nil {
		return nil, err
	}

	out := make([]ExamView, 0, len(exams))
	for _, e := range exams {
		v := ExamView{Exam: e}
		if d := e.StartAt.Sub(now); d > 0 {
			v.StartsIn = d
		}
		out = append(out, v)
	}
	return out, nil
}

// Watch sends the list immediately and then on every refresh interval
// until ctx is done or send fails.
func (s *ExamService) Watch(ctx context.Context, today bool, send func([]ExamView) error) error {
	push := func() error {
		list, err := s.List(ctx, today)
		if err != nil {
			return err
		}
		return send(list)
	}

	if err := push(); err != nil {
		return err
	}

	interval := s.interval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Debug(ctx, "exam watch closed", "today", today)
			return nil
		case <-ticker.C:
			if err := push(); err != nil {
				return err
			}
		}
	}
}
