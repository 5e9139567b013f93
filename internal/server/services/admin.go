package services

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/dmitrijs2005/examdesk/internal/common"
	"github.com/dmitrijs2005/examdesk/internal/logging"
	"github.com/dmitrijs2005/examdesk/internal/netx"
	"github.com/dmitrijs2005/examdesk/internal/server/auth"
	"github.com/dmitrijs2005/examdesk/internal/server/config"
	"github.com/dmitrijs2005/examdesk/internal/server/models"
	"github.com/dmitrijs2005/examdesk/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/examdesk/internal/validation"
)

// AdminService backs the admin dashboard.
type AdminService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	documents                   *DocumentService
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	log                         logging.Logger
}

func NewAdminService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config,
	docs *DocumentService, log logging.Logger) *AdminService {
	return &AdminService{
		db:                          db,
		repomanager:                 m,
		documents:                   docs,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		log:                         log.With("module", "admin"),
	}
}

// Login checks admin credentials and returns an access token.
func (s *AdminService) Login(ctx context.Context, userName, password string) (string, error) {
	a, err := s.repomanager.Admins(s.db).GetByUserName(ctx, common.CleanString(userName))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", err
	}
	if !a.CheckPassword(password) {
		s.log.Warn(ctx, "admin login rejected", "username", a.UserName)
		return "", common.ErrorUnauthorized
	}
	return auth.GenerateToken(a.ID, a.UserName, s.jwtSecret, s.accessTokenValidityDuration)
}

// EnsureAdmin creates the admin or resets its password.
func (s *AdminService) EnsureAdmin(ctx context.Context, userName, password string) error {
	userName = common.CleanString(userName)
	if userName == "" || password == "" {
		return validation.Fieldf("username", "username and password are required")
	}
	hash, err := models.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = s.repomanager.Admins(s.db).Upsert(ctx, &models.Admin{UserName: userName, PasswordHash: hash})
	return err
}

// ListApplications filters by status and by a case-insensitive substring
// of the candidate name or the application number.
func (s *AdminService) ListApplications(ctx context.Context, search string, status models.ApplicationStatus) ([]*models.ApplicationRow, error) {
	if status != "" && !status.Valid() {
		return nil, validation.Fieldf("status", "status must be PENDING, SELECTED or REJECTED")
	}
	rows, err := s.repomanager.Applications(s.db).List(ctx, status)
	if err != nil {
		return nil, err
	}

	search = strings.TrimSpace(search)
	out := make([]*models.ApplicationRow, 0, len(rows))
	for _, r := range rows {
		if common.ContainsFold(r.CandidateName, search) || common.ContainsFold(r.ApplicationNo, search) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *AdminService) SetApplicationStatus(ctx context.Context, id string, status models.ApplicationStatus) (*models.Application, error) {
	if !status.Valid() {
		return nil, validation.Fieldf("status", "status must be PENDING, SELECTED or REJECTED")
	}
	return s.repomanager.Applications(s.db).SetStatus(ctx, id, status)
}

func (s *AdminService) DeleteApplication(ctx context.Context, id string) error {
	return s.repomanager.Applications(s.db).Delete(ctx, id)
}

func (s *AdminService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return s.repomanager.Categories(s.db).List(ctx)
}

func (s *AdminService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	name, err := categoryName(name)
	if err != nil {
		return nil, err
	}
	return s.repomanager.Categories(s.db).Create(ctx, name)
}

// RenameCategory stores the trimmed name and returns the updated row.
func (s *AdminService) RenameCategory(ctx context.Context, id, name string) (*models.Category, error) {
	name, err := categoryName(name)
	if err != nil {
		return nil, err
	}
	return s.repomanager.Categories(s.db).Rename(ctx, id, name)
}

func (s *AdminService) DeleteCategory(ctx context.Context, id string) error {
	return s.repomanager.Categories(s.db).Delete(ctx, id)
}

func (s *AdminService) Roster(ctx context.Context, examID string) ([]models.RosterEntry, error) {
	return s.repomanager.Attendance(s.db).Roster(ctx, examID)
}

// SaveAttendance saves one mark per roster row. Rows without a mark are
// saved as absent; marks for candidates not on the roster are rejected.
func (s *AdminService) SaveAttendance(ctx context.Context, examID string, marks []models.AttendanceMark) ([]models.AttendanceMark, error) {
	roster, err := s.repomanager.Attendance(s.db).Roster(ctx, examID)
	if err != nil {
		return nil, err
	}

	given := make(map[string]models.AttendanceStatus, len(marks))
	for _, m := range marks {
		if m.Status != models.Present && m.Status != models.Absent {
			return nil, validation.Fieldf("status", "status must be present or absent")
		}
		given[m.CandidateID] = m.Status
	}

	payload := make([]models.AttendanceMark, 0, len(roster))
	for _, r := range roster {
		st, ok := given[r.CandidateID]
		if !ok {
			st = models.Absent
		}
		delete(given, r.CandidateID)
		payload = append(payload, models.AttendanceMark{CandidateID: r.CandidateID, Status: st})
	}
	if len(given) > 0 {
		unknown := make([]string, 0, len(given))
		for id := range given {
			unknown = append(unknown, id)
		}
		sort.Strings(unknown)
		return nil, validation.Fieldf("candidate_id", "candidates not registered for this exam: %s", strings.Join(unknown, ", "))
	}

	if err := s.repomanager.Attendance(s.db).Save(ctx, examID, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// UpsertQuestions replaces the question set of an exam.
func (s *AdminService) UpsertQuestions(ctx context.Context, examID string, qs []*models.Question) error {
	if _, err := s.repomanager.Exams(s.db).Get(ctx, examID); err != nil {
		return err
	}
	for i, q := range qs {
		q.Text = strings.TrimSpace(q.Text)
		switch {
		case q.Text == "":
			return validation.Fieldf("questions", "question %d has no text", i+1)
		case len(q.Options) < 2:
			return validation.Fieldf("questions", "question %d needs at least two options", i+1)
		case q.CorrectOption < 0 || q.CorrectOption >= len(q.Options):
			return validation.Fieldf("questions", "question %d has no valid correct option", i+1)
		}
		if q.ImageURL != "" {
			if err := netx.CheckHTTPURL(q.ImageURL); err != nil {
				return validation.Fieldf("questions", "question %d image: %v", i+1, err)
			}
		}
	}
	if err := s.repomanager.Questions(s.db).ReplaceForExam(ctx, examID, qs); err != nil {
		return err
	}
	s.log.Info(ctx, "questions replaced", "exam_id", examID, "count", len(qs))
	return nil
}

func (s *AdminService) QuestionPaper(ctx context.Context, examID string, showAnswers bool) (*IssuedDocument, error) {
	return s.documents.QuestionPaper(ctx, examID, showAnswers)
}

const maxCategoryName = 80

func categoryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", validation.Fieldf("name", "name is required")
	}
	if len(name) > maxCategoryName {
		return "", validation.Fieldf("name", "name must be at most %d characters", maxCategoryName)
	}
	return name, nil
}
