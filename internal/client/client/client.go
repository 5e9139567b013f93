package client

import (
	"context"

	"github.com/dmitrijs2005/examdesk/internal/rpc"
)

// Client is what the CLI needs from the server.
type Client interface {
	Close() error
	Ping(ctx context.Context) error

	ListExams(ctx context.Context, today bool) ([]rpc.Exam, error)
	CheckIdentity(ctx context.Context, flow, itemID, identifier string) (*rpc.Session, error)
	SubmitForm(ctx context.Context, sessionID string, d rpc.Draft) (*rpc.Session, error)
	ConfirmPurchase(ctx context.Context, sessionID, superUserID string) (*rpc.ConfirmPurchaseResponse, error)
	CompletePayment(ctx context.Context, in *rpc.CompletePaymentRequest) (*rpc.Session, error)
	CancelPayment(ctx context.Context, sessionID string) (*rpc.Session, error)
	IssueDocument(ctx context.Context, sessionID string) (*rpc.DocumentResponse, error)
	PresignPhotoUpload(ctx context.Context, sessionID, contentType string) (*rpc.PresignPhotoUploadResponse, error)

	ListCatalog(ctx context.Context, kind string) ([]rpc.CatalogItem, error)
	ListPurchases(ctx context.Context, identifier string) ([]rpc.Purchase, error)

	SaveProgress(ctx context.Context, in *rpc.ProgressRequest) error
	LoadProgress(ctx context.Context, examID, candidateID string) (*rpc.ProgressResponse, error)
	SubmitExam(ctx context.Context, in *rpc.ProgressRequest) (*rpc.SubmitExamResponse, error)

	AdminLogin(ctx context.Context, userName, password string) error
	AdminLogout()
	IsAdmin() bool
	ListApplications(ctx context.Context, search, status string) ([]rpc.Application, error)
	SetApplicationStatus(ctx context.Context, id, status string) (*rpc.Application, error)
	DeleteApplication(ctx context.Context, id string) error
	ListCategories(ctx context.Context) ([]rpc.Category, error)
	CreateCategory(ctx context.Context, name string) (*rpc.Category, error)
	RenameCategory(ctx context.Context, id, name string) (*rpc.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	Roster(ctx context.Context, examID string) ([]rpc.RosterEntry, error)
	SaveAttendance(ctx context.Context, examID string, marks []rpc.AttendanceMark) ([]rpc.AttendanceMark, error)
	UpsertQuestions(ctx context.Context, examID string, qs []rpc.Question) error
	QuestionPaper(ctx context.Context, examID string, showAnswers bool) (*rpc.DocumentResponse, error)
}

var _ Client = (*GRPCClient)(nil)
