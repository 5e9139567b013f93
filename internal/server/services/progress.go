package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/examdesk/internal/common"
	"github.com/dmitrijs2005/examdesk/internal/logging"
	"github.com/dmitrijs2005/examdesk/internal/server/config"
	"github.com/dmitrijs2005/examdesk/internal/server/kv"
	"github.com/dmitrijs2005/examdesk/internal/server/models"
	"github.com/dmitrijs2005/examdesk/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/examdesk/internal/timex"
	"github.com/dmitrijs2005/examdesk/internal/validation"
)

// ExamResult is the score of a submitted attempt.
type ExamResult struct {
	Total    int
	Answered int
	Correct  int
	Skipped  int
}

// ProgressService keeps in-flight answers of a running exam.
type ProgressService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       ProgressStore
	grace       time.Duration
	log         logging.Logger
	now         timex.Clock
}

func NewProgressService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config,
	store ProgressStore, log logging.Logger) *ProgressService {
	return &ProgressService{
		db:          db,
		repomanager: m,
		store:       store,
		grace:       cfg.ProgressGrace,
		log:         log.With("module", "progress"),
		now:         timex.UTC,
	}
}

// Save stores answers until the exam end plus the grace period.
func (s *ProgressService) Save(ctx context.Context, examID, candidateID string, p kv.Progress) error {
	exam, err := s.attempt(ctx, examID, candidateID)
	if err != nil {
		return err
	}
	if err := checkProgress(p); err != nil {
		return err
	}

	ttl := exam.EndAt.Add(s.grace).Sub(s.now())
	if ttl <= 0 {
		return fmt.Errorf("%w: exam has ended", common.ErrInvalidTransition)
	}
	return s.store.Save(ctx, exam.Name, candidateID, p, ttl)
}

func (s *ProgressService) Load(ctx context.Context, examID, candidateID string) (kv.Progress, error) {
	exam, err := s.attempt(ctx, examID, candidateID)
	if err != nil {
		return kv.Progress{}, err
	}
	return s.store.Load(ctx, exam.Name, candidateID)
}

// Submit scores the final answers against the stored key and clears the
// saved progress.
func (s *ProgressService) Submit(ctx context.Context, examID, candidateID string, p kv.Progress) (*ExamResult, error) {
	exam, err := s.attempt(ctx, examID, candidateID)
	if err != nil {
		return nil, err
	}
	if err := checkProgress(p); err != nil {
		return nil, err
	}

	qs, err := s.repomanager.Questions(s.db).ListByExam(ctx, examID)
	if err != nil {
		return nil, err
	}

	res := &ExamResult{Total: len(qs), Skipped: len(p.Skipped)}
	for _, q := range qs {
		a, ok := p.Answers[q.Ordinal]
		if !ok {
			continue
		}
		res.Answered++
		if a == q.CorrectOption {
			res.Correct++
		}
	}

	if err := s.store.Clear(ctx, exam.Name, candidateID); err != nil {
		s.log.Warn(ctx, "clear progress failed", "exam", exam.Code, "candidate_id", candidateID, "error", err)
	}
	s.log.Info(ctx, "exam submitted", "exam", exam.Code, "candidate_id", candidateID,
		"answered", res.Answered, "correct", res.Correct)
	return res, nil
}

// attempt checks that the candidate is registered and the exam has started.
func (s *ProgressService) attempt(ctx context.Context, examID, candidateID string) (*models.Exam, error) {
	exam, err := s.repomanager.Exams(s.db).Get(ctx, examID)
	if err != nil {
		return nil, err
	}
	if _, err := s.repomanager.Applications(s.db).GetByCandidateExam(ctx, candidateID, examID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: not registered for this exam", common.ErrorUnauthorized)
		}
		return nil, err
	}
	if s.now().Before(exam.StartAt) {
		return nil, fmt.Errorf("%w: exam has not started", common.ErrInvalidTransition)
	}
	return exam, nil
}

func checkProgress(p kv.Progress) error {
	for q, a := range p.Answers {
		if q <= 0 || a < 0 {
			return validation.Fieldf("answers", "answers must map question numbers to option indexes")
		}
	}
	for _, q := range p.Skipped {
		if q <= 0 {
			return validation.Fieldf("skipped", "skipped must hold question numbers")
		}
	}
	return nil
}
