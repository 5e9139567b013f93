package grpc

import (
	"context"

	"github.com/dmitrijs2005/examdesk/internal/server/kv"
	"github.com/dmitrijs2005/examdesk/internal/server/models"
	"github.com/dmitrijs2005/examdesk/internal/server/services"
	"github.com/dmitrijs2005/examdesk/internal/wizard"
)

type RegistrationService interface {
	CheckIdentity(ctx context.Context, flow wizard.Flow, itemID, identifier string) (*wizard.Session, error)
	SubmitForm(ctx context.Context, sessionID string, d wizard.Draft) (*wizard.Session, error)
	ConfirmPurchase(ctx context.Context, sessionID, superUserID string) (*services.Confirmation, error)
	CompletePayment(ctx context.Context, sessionID, orderID, paymentID, signature string) (*wizard.Session, error)
	CancelPayment(ctx context.Context, sessionID string) (*wizard.Session, error)
	IssueDocument(ctx context.Context, sessionID string) (*services.IssuedDocument, error)
	PresignPhotoUpload(ctx context.Context, sessionID, contentType string) (string, string, error)
}

type ExamService interface {
	List(ctx context.Context, today bool) ([]services.ExamView, error)
	Watch(ctx context.Context, today bool, send func([]services.ExamView) error) error
}

type ProgressService interface {
	Save(ctx context.Context, examID, candidateID string, p kv.Progress) error
	Load(ctx context.Context, examID, candidateID string) (kv.Progress, error)
	Submit(ctx context.Context, examID, candidateID string, p kv.Progress) (*services.ExamResult, error)
}

type CatalogService interface {
	ListCatalog(ctx context.Context, kind string) ([]*models.CatalogItem, error)
	ListPurchases(ctx context.Context, identifier string) ([]services.PurchaseView, error)
}

type AdminService interface {
	Login(ctx context.Context, userName, password string) (string, error)
	ListApplications(ctx context.Context, search string, status models.ApplicationStatus) ([]*models.ApplicationRow, error)
	SetApplicationStatus(ctx context.Context, id string, status models.ApplicationStatus) (*models.Application, error)
	DeleteApplication(ctx context.Context, id string) error
	ListCategories(ctx context.Context) ([]*models.Category, error)
	CreateCategory(ctx context.Context, name string) (*models.Category, error)
	RenameCategory(ctx context.Context, id, name string) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	Roster(ctx context.Context, examID string) ([]models.RosterEntry, error)
	SaveAttendance(ctx context.Context, examID string, marks []models.AttendanceMark) ([]models.AttendanceMark, error)
	UpsertQuestions(ctx context.Context, examID string, qs []*models.Question) error
	QuestionPaper(ctx context.Context, examID string, showAnswers bool) (*services.IssuedDocument, error)
}

// Services bundles what the transport serves.
type Services struct {
	Registration RegistrationService
	Exams        ExamService
	Progress     ProgressService
	Catalog      CatalogService
	Admin        AdminService
}
